package observability

import (
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestObserveStatus(t *testing.T) {
	m := NewMetrics(testLogger)
	m.ObserveStatus(200)
	m.ObserveStatus(204)
	m.ObserveStatus(404)
	m.ObserveStatus(502)
	m.ObserveStatus(301)

	snap := m.Snapshot()
	if snap["responses_2xx"] != 2 {
		t.Errorf("expected 2 2xx, got %d", snap["responses_2xx"])
	}
	if snap["responses_4xx"] != 1 {
		t.Errorf("expected 1 4xx, got %d", snap["responses_4xx"])
	}
	if snap["responses_5xx"] != 1 {
		t.Errorf("expected 1 5xx, got %d", snap["responses_5xx"])
	}
}

func TestServeHTTP(t *testing.T) {
	m := NewMetrics(testLogger)
	m.AnalyzeRequests.Add(3)
	m.InFlightRequests.Add(1)

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "reviewscope_analyze_requests_total 3") {
		t.Errorf("missing analyze counter in:\n%s", body)
	}
	if !strings.Contains(body, "# TYPE reviewscope_in_flight_requests gauge") {
		t.Errorf("in-flight should be a gauge:\n%s", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type %q", ct)
	}
}
