package cli

import (
	"encoding/json"
	"io"

	"github.com/ai8future/lcrm/internal/apperror"
)

// failure is what a command prints to stderr when it fails before or instead
// of getting a response.
type failure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// PrintResult writes v as JSON indented by two spaces.
func PrintResult(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintFailure writes the failure envelope for err.
func PrintFailure(w io.Writer, err error) error {
	return PrintResult(w, failure{OK: false, Error: err.Error()})
}

// ErrorKind names the category of err for logs.
func ErrorKind(err error) string {
	if kind := apperror.Kind(err); kind != nil {
		return kind.Error()
	}
	return "error"
}
