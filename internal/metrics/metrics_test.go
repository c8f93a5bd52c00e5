package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollector_RecordRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	c.RecordRequest(http.MethodGet, http.StatusOK, 5*time.Millisecond)
	c.RecordRequest(http.MethodGet, http.StatusOK, 7*time.Millisecond)
	c.RecordRequest(http.MethodPost, http.StatusCreated, 12*time.Millisecond)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	if !found["surplus_http_requests_total"] {
		t.Error("expected surplus_http_requests_total to be registered")
	}
	if !found["surplus_http_request_duration_seconds"] {
		t.Error("expected surplus_http_request_duration_seconds to be registered")
	}
}

func TestCollector_Middleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := c.Middleware()(next)

	req := httptest.NewRequest(http.MethodGet, "/api/items/missing", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// /metrics出力にカウンタが現れることを確認する
	w := httptest.NewRecorder()
	Handler(registry).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	if !strings.Contains(body, `surplus_http_requests_total{method="GET",status_code="404"} 1`) {
		t.Errorf("metrics output missing expected counter, got:\n%s", body)
	}
}
