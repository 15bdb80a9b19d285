// internal/monitoring/server_test.go
package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hwcatalog/harvester/internal/logging"
)

func TestHealthz(t *testing.T) {
	s := NewServer(":0", NewMetrics(), logging.Nop())

	rec := httptest.NewRecorder()
	s.httpSrv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestReportLifecycle(t *testing.T) {
	s := NewServer(":0", NewMetrics(), logging.Nop())

	rec := httptest.NewRecorder()
	s.httpSrv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("empty report status = %d", rec.Code)
	}

	s.SetReport(map[string]int{"records": 12})

	rec = httptest.NewRecorder()
	s.httpSrv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	var body map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("report not JSON: %v", err)
	}
	if body["records"] != 12 {
		t.Errorf("report = %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	m.RunsTotal.WithLabelValues("cpu", "done").Inc()
	m.ObserveDiff("cpu", 2, 1, 0, 5)

	s := NewServer(":0", m, logging.Nop())
	rec := httptest.NewRecorder()
	s.httpSrv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"harvester_runs_total", "harvester_diff_changes"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}
