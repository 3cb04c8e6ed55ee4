package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()

	enumsMu sync.RWMutex
	enums   = map[string][]string{}
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names, which is what users put in payload files.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f)
	})
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return v
}

// RegisterEnum registers tag as a closed set of allowed string values.
// Call it from package init; it panics on an invalid tag.
func RegisterEnum(tag string, values ...string) {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return allowed[fl.Field().String()]
	}); err != nil {
		panic(fmt.Sprintf("validation: register enum %q: %v", tag, err))
	}

	enumsMu.Lock()
	enums[tag] = values
	enumsMu.Unlock()
}

// Struct runs the struct's validate tags and reports every failure as ErrValidation.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	t := reflect.Indirect(reflect.ValueOf(s)).Type()
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(t, fe))
	}
	return fmt.Errorf("%w: %s", apperror.ErrValidation, strings.Join(msgs, "; "))
}

func describe(t reflect.Type, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("missing required field: %s", fe.Field())
	case "required_without":
		return fmt.Sprintf("%s or %s is required", fe.Field(), fieldJSONName(t, fe.Param()))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	}

	enumsMu.RLock()
	values, ok := enums[fe.Tag()]
	enumsMu.RUnlock()
	if ok {
		return fmt.Sprintf("%s must be one of %s, got %q", fe.Field(), strings.Join(values, "/"), fmt.Sprint(fe.Value()))
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// fieldJSONName maps a Go field name used in a tag parameter back to its JSON name.
func fieldJSONName(t reflect.Type, goName string) string {
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(goName); ok {
			if name := jsonName(f); name != "" {
				return name
			}
		}
	}
	return goName
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// StringField returns m[key] when it is a string and "" otherwise, so that
// non-string JSON values count as missing.
func StringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
