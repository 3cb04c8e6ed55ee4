package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/ai8future/lcrm/internal/ctxlog"
	"github.com/ai8future/lcrm/internal/lcrm"
	"github.com/google/go-cmp/cmp"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return v
}

func result(data any) *lcrm.Result {
	return &lcrm.Result{OK: true, Status: 200, StatusText: "OK", Method: "GET", URL: "https://x.test/api/users/sales-presales", Data: data}
}

func TestUsers(t *testing.T) {
	res := result(decode(t, `{
		"success": true,
		"data": [
			{"id": 1, "name": "张三", "email": "zhang@langcore.net"},
			{"id": 2, "name": "Li Si", "email": "LISI@example.com"},
			{"id": 3, "name": null},
			"not-an-object"
		],
		"total": 4
	}`))

	tests := []struct {
		name    string
		keyword string
		wantIDs []any
	}{
		{"name match", "张", []any{json.Number("1")}},
		{"email match is case-insensitive", "lisi@", []any{json.Number("2")}},
		{"keyword is trimmed and lowered", "  LI SI ", []any{json.Number("2")}},
		{"shared domain", "langcore", []any{json.Number("1")}},
		{"no match", "王五", []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Users(context.Background(), res, tt.keyword)
			payload := got.Data.(map[string]any)
			items := payload["data"].([]any)

			ids := make([]any, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.(map[string]any)["id"])
			}
			if diff := cmp.Diff(tt.wantIDs, ids); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}

			if payload["success"] != true || payload["total"] != json.Number("4") {
				t.Errorf("sibling fields changed: %v", payload)
			}
			if got.Status != res.Status || got.URL != res.URL || got.OK != res.OK || got.Method != res.Method {
				t.Errorf("envelope fields changed: %+v", got)
			}
		})
	}

	if len(res.Data.(map[string]any)["data"].([]any)) != 4 {
		t.Error("original result was modified")
	}
}

func TestTags(t *testing.T) {
	res := result(decode(t, `{"data":[
		{"name":"活动线索","description":"","category":"LEAD"},
		{"name":"重点客户","description":"年度活动参与","category":"CUSTOMER"},
		{"name":"其他","description":"无","category":"OPPORTUNITY"}
	]}`))

	got := Tags(context.Background(), res, "活动")
	items := got.Data.(map[string]any)["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("kept %d tags, want 2", len(items))
	}

	got = Tags(context.Background(), res, "lead")
	items = got.Data.(map[string]any)["data"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["category"] != "LEAD" {
		t.Errorf("category match = %v", items)
	}
}

func TestByKeyword_Passthrough(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	tests := []struct {
		name     string
		data     any
		keyword  string
		wantWarn bool
	}{
		{"blank keyword", decode(t, `{"data":[{"name":"a"}]}`), "   ", false},
		{"text body", "<html>forbidden</html>", "a", true},
		{"top-level array", decode(t, `[{"name":"a"}]`), "a", true},
		{"data is not an array", decode(t, `{"data":{"name":"a"}}`), "a", true},
		{"error body", decode(t, `{"error":"unauthorized"}`), "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			res := result(tt.data)
			if got := ByKeyword(ctx, res, tt.keyword, "name"); got != res {
				t.Errorf("ByKeyword() returned a new result, want the original")
			}
			if warned := strings.Contains(logs.String(), "keyword filter skipped"); warned != tt.wantWarn {
				t.Errorf("warning logged = %v, want %v (logs: %s)", warned, tt.wantWarn, logs.String())
			}
		})
	}

	if ByKeyword(ctx, nil, "a", "name") != nil {
		t.Error("nil result should pass through")
	}
}
