package httpcapture

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTransport_CapturesAndRedacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"echo":` + string(body) + `}`))
	}))
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := New(logger)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/presales-itineraries/ai-parse", strings.NewReader(`{"text":"明天"}`))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer super-secret")

	resp, err := tr.Client().Do(req)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	defer resp.Body.Close()

	got, _ := io.ReadAll(resp.Body)
	if string(got) != `{"echo":{"text":"明天"}}` {
		t.Errorf("response body = %s, still readable after capture", got)
	}
	if string(tr.RequestBody) != `{"text":"明天"}` {
		t.Errorf("RequestBody = %s", tr.RequestBody)
	}
	if string(tr.ResponseBody) != string(got) {
		t.Errorf("ResponseBody = %s", tr.ResponseBody)
	}

	out := logs.String()
	if strings.Contains(out, "super-secret") {
		t.Error("bearer token leaked into logs")
	}
	if !strings.Contains(out, "httpcapture: request") || !strings.Contains(out, "httpcapture: response") {
		t.Errorf("missing request/response records in logs:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	long := bytes.Repeat([]byte("x"), maxLoggedBody+10)
	got := truncate(long)
	if !strings.HasSuffix(got, "...(truncated)") || len(got) != maxLoggedBody+len("...(truncated)") {
		t.Errorf("truncate() length = %d", len(got))
	}
	if truncate([]byte("short")) != "short" {
		t.Error("short bodies must be kept intact")
	}
}
