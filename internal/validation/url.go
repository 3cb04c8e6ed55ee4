package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrEmptyURL is returned when the URL is empty
	ErrEmptyURL = errors.New("URL cannot be empty")

	// ErrInvalidURL is returned when the URL cannot be parsed or has no host
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrUnsafeProtocol is returned when the URL is neither http nor https
	ErrUnsafeProtocol = errors.New("unsafe protocol")
)

// ValidateBaseURL checks a CRM base URL before any bearer token is sent to it:
// - http:// or https://
// - a hostname must be present
// - no query string or fragment, since paths are appended to it verbatim
func ValidateBaseURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ErrEmptyURL
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("%w: only http:// and https:// are allowed", ErrUnsafeProtocol)
	}

	hostname := parsedURL.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: missing hostname", ErrInvalidURL)
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return fmt.Errorf("%w: base URL must not carry a query or fragment", ErrInvalidURL)
	}

	return nil
}
