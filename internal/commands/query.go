package commands

import (
	"fmt"
	"strings"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/ai8future/lcrm/internal/lcrm"
)

// ParseQueryPairs converts key=value items into an ordered query, splitting on the first '='.
// Duplicate keys are kept so repeated filters reach the API as OR conditions.
func ParseQueryPairs(items []string) (lcrm.Query, error) {
	query := make(lcrm.Query, 0, len(items))
	for _, item := range items {
		idx := strings.Index(item, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("%w: invalid query parameter %q, use key=value", apperror.ErrFormat, item)
		}
		query = append(query, lcrm.Pair{Key: item[:idx], Value: item[idx+1:]})
	}
	return query, nil
}

// QueryOption parses every --<key> value of opts as a query pair.
func QueryOption(opts Options, key string) (lcrm.Query, error) {
	return ParseQueryPairs(opts.All(key))
}
