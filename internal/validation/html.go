package validation

import (
	"regexp"
	"strings"
)

// htmlTagPattern matches anything between angle brackets, valid markup or not.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes tags from s and trims surrounding whitespace.
func StripHTML(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}
