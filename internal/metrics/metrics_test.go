package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/products", http.StatusOK, 15*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/products", http.StatusOK, 5*time.Millisecond)

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/products", "200"))
	if got != 2 {
		t.Fatalf("expected request count 2, got %v", got)
	}
}

func TestRecordNotificationAndCreated(t *testing.T) {
	m := New()

	m.RecordCreated("inquiry")
	m.RecordNotification("inquiry", OutcomeFailed)

	if got := testutil.ToFloat64(m.created.WithLabelValues("inquiry")); got != 1 {
		t.Fatalf("expected created count 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.notifications.WithLabelValues("inquiry", OutcomeFailed)); got != 1 {
		t.Fatalf("expected failed notification count 1, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
	m.RecordCreated("quote")
	m.RecordNotification("quote", OutcomeSent)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from nil handler, got %d", rr.Code)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.RecordCreated("configuration")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), `storefront_records_created_total{kind="configuration"} 1`) {
		t.Fatalf("metrics output missing created counter:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Fatalf("metrics output missing go collector")
	}
}
