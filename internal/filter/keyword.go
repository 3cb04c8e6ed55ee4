// Package filter narrows list responses on the client for endpoints that have no
// server-side keyword search.
package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/ai8future/lcrm/internal/ctxlog"
	"github.com/ai8future/lcrm/internal/lcrm"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// listPath locates the item array inside a list response: {"data": [...], ...}.
const listPath = "data"

// UserFields are matched by Users.
var UserFields = []string{"name", "email"}

// TagFields are matched by Tags.
var TagFields = []string{"name", "description", "category"}

// Users keeps the users whose name or email contains keyword.
func Users(ctx context.Context, res *lcrm.Result, keyword string) *lcrm.Result {
	return ByKeyword(ctx, res, keyword, UserFields...)
}

// Tags keeps the tags whose name, description or category contains keyword.
func Tags(ctx context.Context, res *lcrm.Result, keyword string) *lcrm.Result {
	return ByKeyword(ctx, res, keyword, TagFields...)
}

// ByKeyword keeps the items of res.Data's "data" array in which any of fields
// contains keyword, case-insensitively. Everything else in the response is left
// as it was and res itself is not modified.
//
// A blank keyword returns res unchanged. So does a response without an item
// array (an error body, plain text); that case is logged as a warning.
func ByKeyword(ctx context.Context, res *lcrm.Result, keyword string, fields ...string) *lcrm.Result {
	q := strings.ToLower(strings.TrimSpace(keyword))
	if q == "" || res == nil {
		return res
	}
	logger := ctxlog.FromContext(ctx)

	raw, err := json.Marshal(res.Data)
	if err != nil {
		logger.Warn("keyword filter skipped: response is not JSON", "url", res.URL, "error", err)
		return res
	}

	list := gjson.GetBytes(raw, listPath)
	if !gjson.ParseBytes(raw).IsObject() || !list.IsArray() {
		logger.Warn("keyword filter skipped: response has no data array",
			"url", res.URL,
			"status", res.Status,
		)
		return res
	}

	kept := make([]string, 0)
	total := 0
	list.ForEach(func(_, item gjson.Result) bool {
		total++
		if matches(item, q, fields) {
			kept = append(kept, item.Raw)
		}
		return true
	})

	filtered, err := sjson.SetRawBytes(raw, listPath, []byte("["+strings.Join(kept, ",")+"]"))
	if err != nil {
		logger.Warn("keyword filter skipped: rebuild failed", "url", res.URL, "error", err)
		return res
	}

	dec := json.NewDecoder(bytes.NewReader(filtered))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		logger.Warn("keyword filter skipped: decode failed", "url", res.URL, "error", err)
		return res
	}

	logger.Debug("keyword filter applied", "keyword", q, "total", total, "kept", len(kept))
	return res.WithData(data)
}

// matches reports whether any field of item contains q. Missing and null
// fields count as empty; numbers and booleans match on their text.
func matches(item gjson.Result, q string, fields []string) bool {
	for _, f := range fields {
		v := item.Get(f)
		if v.Type == gjson.Null {
			continue
		}
		if strings.Contains(strings.ToLower(v.String()), q) {
			return true
		}
	}
	return false
}
