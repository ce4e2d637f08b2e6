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

func TestCounterIncrements(t *testing.T) {
	set := NewSet()
	set.Mutations.Increment("move", "ok")
	set.Mutations.Increment("move", "ok")
	set.Mutations.Increment("create", "error")

	if got := testutil.ToFloat64(set.Mutations.vec.WithLabelValues("move", "ok")); got != 2 {
		t.Fatalf("expected 2 successful moves, got %v", got)
	}
	if got := testutil.ToFloat64(set.Mutations.vec.WithLabelValues("create", "error")); got != 1 {
		t.Fatalf("expected 1 failed create, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	set := NewSet()
	set.Requests.Increment("GET", "/api/menus", "200")
	set.RequestDuration.Observe(15*time.Millisecond, "GET", "/api/menus")

	rec := httptest.NewRecorder()
	set.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`menutree_http_requests_total{method="GET",route="/api/menus",status="200"} 1`,
		`menutree_http_request_duration_seconds_count{method="GET",route="/api/menus"} 1`,
		`go_goroutines`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}

func TestSetsAreIndependent(t *testing.T) {
	a, b := NewSet(), NewSet()
	a.Mutations.Increment("delete", "ok")
	if got := testutil.ToFloat64(b.Mutations.vec.WithLabelValues("delete", "ok")); got != 0 {
		t.Fatalf("expected separate registries, got %v", got)
	}
}
