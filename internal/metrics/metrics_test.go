package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNew_GathersMetrics(t *testing.T) {
	m := New()

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	// Should include at least Go runtime and process collectors.
	if len(families) == 0 {
		t.Fatal("expected non-empty metric families from Gather()")
	}

	// Verify our custom metrics exist by incrementing one and gathering again.
	m.RequestsTotal.WithLabelValues("GET", "200", "/api/v1/models").Inc()

	families, err = m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "openrouter_proxy_http_requests_total" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected openrouter_proxy_http_requests_total in gathered metrics")
	}
}

func TestRecordFailure(t *testing.T) {
	m := New()
	m.RecordFailure(FailureTransport)
	m.RecordFailure(FailureTransport)
	m.RecordFailure(FailureDecode)

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	got := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "openrouter_proxy_upstream_failures_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "kind" {
					got[lp.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	if got[FailureTransport] != 2 {
		t.Errorf("transport failures = %v, want 2", got[FailureTransport])
	}
	if got[FailureDecode] != 1 {
		t.Errorf("decode failures = %v, want 1", got[FailureDecode])
	}
}

func TestRecordFailure_NilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordFailure(FailureDecode) // must not panic
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New()
	m.RecordFailure(FailureDecode)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `openrouter_proxy_upstream_failures_total{kind="decode"} 1`) {
		t.Errorf("metrics output missing failure counter:\n%s", body)
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"GET", "GET"},
		{"POST", "POST"},
		{"PUT", "PUT"},
		{"DELETE", "DELETE"},
		{"PATCH", "PATCH"},
		{"HEAD", "HEAD"},
		{"OPTIONS", "OPTIONS"},
		{"FOOBAR", "other"},
		{"get", "other"},
		{"X-CUSTOM", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got := NormalizeMethod(tt.method)
			if got != tt.want {
				t.Errorf("NormalizeMethod(%q) = %q, want %q", tt.method, got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/models", "/api/v1/models"},
		{"/api/v1/models/", "/api/v1/models"},
		{"/healthz", "/healthz"},
		{"/proxy/status", "/proxy/status"},
		{"/metrics", "/metrics"},
		{"/unknown", "other"},
		{"/", "other"},
		{"/api/v1/modelsx", "other"},
		{"/api/v1/chat/completions", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := NormalizePath(tt.path)
			if got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
