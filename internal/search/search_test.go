package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/ai8future/lcrm/internal/apperror"
	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/lcrm"
	"github.com/google/go-cmp/cmp"
)

type recorded struct {
	Method string
	Path   string
	Query  []string
}

// recorder is a fake CRM that remembers every request and answers from routes.
type recorder struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]func(w http.ResponseWriter)
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec.mu.Lock()
	rec.requests = append(rec.requests, recorded{Method: r.Method, Path: r.URL.EscapedPath(), Query: queryPairs(r.URL.RawQuery)})
	rec.mu.Unlock()

	if route, ok := rec.routes[r.URL.Path]; ok {
		route(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"success":true,"data":[]}`)
}

// queryPairs decodes a raw query keeping order and duplicates.
func queryPairs(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, "&") {
		k, v, _ := strings.Cut(part, "=")
		k, _ = url.QueryUnescape(k)
		v, _ = url.QueryUnescape(v)
		out = append(out, k+"="+v)
	}
	return out
}

func newFixture(t *testing.T, routes map[string]func(w http.ResponseWriter)) (*recorder, *lcrm.Client) {
	t.Helper()
	rec := &recorder{routes: routes}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	client, err := lcrm.NewClient("test-key", srv.URL)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	return rec, client
}

func jsonRoute(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}

func run(t *testing.T, client *lcrm.Client, action Action, args ...string) (*lcrm.Result, error) {
	t.Helper()
	handler, ok := Handler(action)
	if !ok {
		t.Fatalf("no handler for %s", action)
	}
	return handler(context.Background(), client, commands.Parse(args).Options)
}

func TestHandler_EveryActionHasAHandler(t *testing.T) {
	for _, a := range Actions {
		if h, ok := Handler(a); !ok || h == nil {
			t.Errorf("action %s has no handler", a)
		}
		if _, ok := usage[a]; !ok {
			t.Errorf("action %s has no usage entry", a)
		}
	}
	if _, ok := Handler("unknown"); ok {
		t.Error("unknown action should have no handler")
	}
	if got := len(Program("test").Actions); got != len(Actions) {
		t.Errorf("Program() has %d actions, want %d", got, len(Actions))
	}
}

func TestRequests(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		args   []string
		want   recorded
	}{
		{
			name:   "me",
			action: ActionMe,
			want:   recorded{Method: "GET", Path: "/api/auth/me"},
		},
		{
			name:   "customers puts --query first",
			action: ActionCustomers,
			args:   []string{"--limit", "5", "--company-name", "朗致集团", "--query", "status=active"},
			want:   recorded{Method: "GET", Path: "/api/customers", Query: []string{"status=active", "companyName=朗致集团", "limit=5"}},
		},
		{
			name:   "customer detail escapes the id",
			action: ActionCustomerDetail,
			args:   []string{"--customer-id", "a/b c"},
			want:   recorded{Method: "GET", Path: "/api/customers/a%2Fb%20c"},
		},
		{
			name:   "customer contacts reads the customer",
			action: ActionCustomerContacts,
			args:   []string{"--customer-id", "c1"},
			want:   recorded{Method: "GET", Path: "/api/customers/c1"},
		},
		{
			name:   "customer business records puts customerId first",
			action: ActionCustomerBusinessRecords,
			args:   []string{"--query", "limit=10", "--customer-id", "c1"},
			want:   recorded{Method: "GET", Path: "/api/business-records", Query: []string{"customerId=c1", "limit=10"}},
		},
		{
			name:   "business records fields then --query",
			action: ActionBusinessRecords,
			args: []string{
				"--query", "limit=10",
				"--end-date", "2026-02-12",
				"--recorder-id", "u1",
				"--start-date", "2026-02-11",
				"--customer-id", "c1",
			},
			want: recorded{Method: "GET", Path: "/api/business-records", Query: []string{
				"customerId=c1", "recorderId=u1", "startDate=2026-02-11", "endDate=2026-02-12", "limit=10",
			}},
		},
		{
			name:   "customer opportunities by id",
			action: ActionCustomerOpportunities,
			args:   []string{"--customer-id", "c1", "--customer-name", "ignored"},
			want:   recorded{Method: "GET", Path: "/api/customers/c1"},
		},
		{
			name:   "customer opportunities by name",
			action: ActionCustomerOpportunities,
			args:   []string{"--customer-name", "朗致集团", "--query", "status=需求引导,客户立项"},
			want:   recorded{Method: "GET", Path: "/api/opportunities/list", Query: []string{"customerName=朗致集团", "status=需求引导,客户立项"}},
		},
		{
			name:   "leads keeps repeated keys",
			action: ActionLeads,
			args:   []string{"--query", "keyword=AI", "--query", "keyword=ML"},
			want:   recorded{Method: "GET", Path: "/api/leads", Query: []string{"keyword=AI", "keyword=ML"}},
		},
		{
			name:   "opportunities",
			action: ActionOpportunities,
			args:   []string{"--query", "customerName=x"},
			want:   recorded{Method: "GET", Path: "/api/opportunities/list", Query: []string{"customerName=x"}},
		},
		{
			name:   "tags sends category but not search",
			action: ActionTags,
			args:   []string{"--search", "活动", "--category", "LEAD"},
			want:   recorded{Method: "GET", Path: "/api/tags", Query: []string{"category=LEAD"}},
		},
		{
			name:   "notifications",
			action: ActionNotifications,
			args:   []string{"--category", "LEAD_TIMEOUT", "--status", "active", "--query", "x=1"},
			want:   recorded{Method: "GET", Path: "/api/notifications", Query: []string{"x=1", "status=active", "category=LEAD_TIMEOUT"}},
		},
		{
			name:   "presales itineraries",
			action: ActionPresalesItineraries,
			args:   []string{"--end-date", "2026-02-16", "--start-date", "2026-02-10", "--user-id", "u1"},
			want:   recorded{Method: "GET", Path: "/api/presales-itineraries/week", Query: []string{"startDate=2026-02-10", "endDate=2026-02-16", "userId=u1"}},
		},
		{
			name:   "sales presales users sends no query",
			action: ActionSalesPresalesUsers,
			args:   []string{"--search", "张三"},
			want:   recorded{Method: "GET", Path: "/api/users/sales-presales"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, client := newFixture(t, nil)
			res, err := run(t, client, tt.action, tt.args...)
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}
			if !res.OK {
				t.Errorf("result not ok: %+v", res)
			}
			if len(rec.requests) != 1 {
				t.Fatalf("made %d requests, want 1", len(rec.requests))
			}
			if diff := cmp.Diff(tt.want, rec.requests[0]); diff != "" {
				t.Errorf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRequests_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		args   []string
		want   error
	}{
		{"customer detail needs id", ActionCustomerDetail, nil, apperror.ErrValidation},
		{"customer contacts needs id", ActionCustomerContacts, []string{"--customer-id="}, apperror.ErrValidation},
		{"customer business records needs id", ActionCustomerBusinessRecords, nil, apperror.ErrValidation},
		{"customer opportunities needs id or name", ActionCustomerOpportunities, nil, apperror.ErrValidation},
		{"malformed --query", ActionLeads, []string{"--query", "=x"}, apperror.ErrFormat},
		{"query without equals", ActionCustomers, []string{"--query", "limit"}, apperror.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, client := newFixture(t, nil)
			_, err := run(t, client, tt.action, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if len(rec.requests) != 0 {
				t.Errorf("made %d requests before failing", len(rec.requests))
			}
		})
	}
}

const directory = `{"success":true,"data":[
	{"id":"u1","name":"张三","email":"zhangsan@langcore.net"},
	{"id":"u2","name":"李四","email":"lisi@langcore.net"}
]}`

func TestUsers_Fallback(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantPaths []string
		wantOK    bool
		wantItems int
	}{
		{"allowed", http.StatusOK, []string{"/api/users"}, true, 0},
		{"unauthorized falls back", http.StatusUnauthorized, []string{"/api/users", "/api/users/sales-presales"}, true, 1},
		{"forbidden falls back", http.StatusForbidden, []string{"/api/users", "/api/users/sales-presales"}, true, 1},
		{"server error does not fall back", http.StatusInternalServerError, []string{"/api/users"}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, client := newFixture(t, map[string]func(http.ResponseWriter){
				"/api/users":                jsonRoute(tt.status, `{"success":true,"data":[]}`),
				"/api/users/sales-presales": jsonRoute(http.StatusOK, directory),
			})

			res, err := run(t, client, ActionUsers, "--search", "张三", "--limit", "20")
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}

			var paths []string
			for _, r := range rec.requests {
				paths = append(paths, r.Path)
			}
			if diff := cmp.Diff(tt.wantPaths, paths); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"search=张三", "limit=20"}, rec.requests[0].Query); diff != "" {
				t.Errorf("first query mismatch (-want +got):\n%s", diff)
			}
			if len(rec.requests) > 1 && rec.requests[1].Query != nil {
				t.Errorf("fallback should send no query, got %v", rec.requests[1].Query)
			}
			if res.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", res.OK, tt.wantOK)
			}
			if tt.wantItems > 0 {
				items := res.Data.(map[string]any)["data"].([]any)
				if len(items) != tt.wantItems || items[0].(map[string]any)["id"] != "u1" {
					t.Errorf("filtered users = %v", items)
				}
			}
		})
	}
}

func TestSalesPresalesUsers_Filter(t *testing.T) {
	tests := []struct {
		search string
		want   int
	}{
		{"", 2},
		{"LISI", 1},
		{"langcore", 2},
		{"王五", 0},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			_, client := newFixture(t, map[string]func(http.ResponseWriter){
				"/api/users/sales-presales": jsonRoute(http.StatusOK, directory),
			})
			var args []string
			if tt.search != "" {
				args = []string{"--search", tt.search}
			}
			res, err := run(t, client, ActionSalesPresalesUsers, args...)
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}
			if got := len(res.Data.(map[string]any)["data"].([]any)); got != tt.want {
				t.Errorf("kept %d users, want %d", got, tt.want)
			}
			if res.Data.(map[string]any)["success"] != true {
				t.Error("envelope field success was dropped")
			}
		})
	}
}

func TestTags_Filter(t *testing.T) {
	_, client := newFixture(t, map[string]func(http.ResponseWriter){
		"/api/tags": jsonRoute(http.StatusOK, `{"data":[
			{"name":"活动线索","description":"","category":"LEAD"},
			{"name":"重点客户","description":"","category":"CUSTOMER"}
		]}`),
	})

	res, err := run(t, client, ActionTags, "--search", "  Lead ")
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	items := res.Data.(map[string]any)["data"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["name"] != "活动线索" {
		t.Errorf("filtered tags = %v", items)
	}
}

func TestTags_ErrorBodyPassesThrough(t *testing.T) {
	_, client := newFixture(t, map[string]func(http.ResponseWriter){
		"/api/tags": jsonRoute(http.StatusUnauthorized, `{"error":"unauthorized"}`),
	})

	res, err := run(t, client, ActionTags, "--search", "lead")
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if res.OK || res.Status != http.StatusUnauthorized {
		t.Errorf("result = %+v", res)
	}
	if diff := cmp.Diff(map[string]any{"error": "unauthorized"}, res.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}
