package lcrm

import (
	"net/url"
	"strings"
)

// Pair is one query parameter.
type Pair struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. Keys may repeat.
type Query []Pair

// Add appends key=value.
func (q *Query) Add(key, value string) {
	*q = append(*q, Pair{Key: key, Value: value})
}

// AddIf appends key=value only when value is non-empty.
func (q *Query) AddIf(key, value string) {
	if value != "" {
		q.Add(key, value)
	}
}

// Encode renders the query in order using form encoding, without sorting keys.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
