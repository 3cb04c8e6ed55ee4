package lcrm

import (
	"net/http"
	"strconv"
	"strings"
)

// Result is the normalized outcome of one API call. Non-2xx responses are
// results too; OK tells them apart.
type Result struct {
	OK         bool   `json:"ok"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	Method     string `json:"method"`
	URL        string `json:"url"`
	Data       any    `json:"data"`
}

// WithData returns a copy of r carrying data instead of r.Data.
func (r *Result) WithData(data any) *Result {
	out := *r
	out.Data = data
	return &out
}

// statusText extracts the reason phrase from resp.Status ("404 Not Found" -> "Not Found"),
// falling back to the standard text for the code.
func statusText(resp *http.Response) string {
	if text, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)); ok {
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return http.StatusText(resp.StatusCode)
}

func isOK(code int) bool {
	return code >= 200 && code <= 299
}
