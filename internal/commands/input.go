package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ai8future/lcrm/internal/apperror"
)

// ReadJSON decodes inline JSON, or the JSON file at path when inline is empty.
// It returns nil when neither is given. Inline input wins when both are set.
func ReadJSON(inline, path string) (any, error) {
	var (
		data   []byte
		source string
	)
	switch {
	case inline != "":
		data, source = []byte(inline), "inline JSON"
	case path != "":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", apperror.ErrFormat, path, err)
		}
		data, source = content, path
	default:
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in %s: %v", apperror.ErrFormat, source, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: invalid JSON in %s: trailing data", apperror.ErrFormat, source)
	}
	return v, nil
}

// ReadJSONOption reads --<name> as inline JSON and --<name>-file as a JSON file path.
func ReadJSONOption(opts Options, name string) (any, error) {
	return ReadJSON(opts.Get(name), opts.Get(name+"-file"))
}
