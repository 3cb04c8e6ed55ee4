// Package apperror defines the error kinds shared by every LCRM command.
// Callers wrap a kind with fmt.Errorf("%w: ...") and test it with errors.Is.
package apperror

import (
	"context"
	"errors"
)

var (
	// ErrConfig indicates missing or unusable configuration (API key, base URL, config file)
	ErrConfig = errors.New("config error")

	// ErrFormat indicates malformed input: paths, query pairs, JSON, timestamps
	ErrFormat = errors.New("format error")

	// ErrValidation indicates a well-formed value that breaks a business rule
	ErrValidation = errors.New("validation error")

	// ErrNetwork indicates the request could not be completed by the transport
	ErrNetwork = errors.New("network error")

	// ErrTimeout indicates the request was aborted because its timeout elapsed
	ErrTimeout = errors.New("timeout")
)

// Kind returns the sentinel matching err, or nil for errors outside the known kinds.
// A context deadline that was not already classified counts as a timeout.
func Kind(err error) error {
	for _, kind := range []error{ErrConfig, ErrFormat, ErrValidation, ErrTimeout, ErrNetwork} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return nil
}
