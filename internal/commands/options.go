package commands

import (
	"fmt"

	"github.com/ai8future/lcrm/internal/apperror"
)

// Options maps an option name to every value it was given, in order.
type Options map[string][]string

func (o Options) add(key, value string) {
	o[key] = append(o[key], value)
}

// Get returns the last value given for key, or "".
func (o Options) Get(key string) string {
	return o.GetOr(key, "")
}

// GetOr returns the last value given for key, or fallback when key is absent.
func (o Options) GetOr(key, fallback string) string {
	values := o[key]
	if len(values) == 0 {
		return fallback
	}
	return values[len(values)-1]
}

// All returns every value given for key in encounter order.
func (o Options) All(key string) []string {
	return o[key]
}

// Has reports whether key was given at least once.
func (o Options) Has(key string) bool {
	return len(o[key]) > 0
}

// Require returns the last value given for key, or a validation error naming
// the option when it is absent or empty.
func (o Options) Require(key string) (string, error) {
	if v := o.Get(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: missing --%s", apperror.ErrValidation, key)
}
