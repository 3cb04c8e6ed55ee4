package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// MaxRequestIDLength is the maximum length of a caller supplied request ID
const MaxRequestIDLength = 128

// ErrInvalidRequestID is returned for request IDs that cannot be sent as a header value
var ErrInvalidRequestID = errors.New("invalid request ID format")

// requestIDPattern allows alphanumeric, hyphens, underscores
var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// ValidateOrGenerateRequestID validates an existing request ID or generates a new UUID
func ValidateOrGenerateRequestID(requestID string) (string, error) {
	if requestID == "" {
		return uuid.NewString(), nil
	}

	if len(requestID) > MaxRequestIDLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidRequestID, MaxRequestIDLength)
	}

	if !requestIDPattern.MatchString(requestID) {
		return "", fmt.Errorf("%w: contains invalid characters", ErrInvalidRequestID)
	}

	return requestID, nil
}
