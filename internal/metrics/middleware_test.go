package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Delete("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := newTestRouter()

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodDelete, "/items/"+id, http.NoBody)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodDelete, "/items/{id}", "204"))
	if got < 3 {
		t.Errorf("requests for /items/{id} = %f, want >= 3", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
		route  string
		status string
	}{
		{http.MethodPost, "/search", "/search", "200"},
		{http.MethodDelete, "/items/missing", "/items/{id}", "404"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, http.NoBody))

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status))
			if val < 1 {
				t.Errorf("requests_total{%s %s %s} = %f, want >= 1", tc.method, tc.route, tc.status, val)
			}
		})
	}
}

func TestMiddleware_SkipsProbes(t *testing.T) {
	r := newTestRouter()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200")); got != 0 {
		t.Errorf("health probe recorded %f times", got)
	}
	if got := testutil.ToFloat64(httpInFlight); got != 0 {
		t.Errorf("in flight = %f after completion, want 0", got)
	}
}

func TestRouteLabel(t *testing.T) {
	if got := routeLabel(nil); got != "unknown" {
		t.Errorf("routeLabel(nil) = %q", got)
	}
	if got := routeLabel(chi.NewRouteContext()); got != "unknown" {
		t.Errorf("routeLabel(empty) = %q", got)
	}
}

func TestHandler_ServesRegistry(t *testing.T) {
	RegisterSearchMetrics()
	ContentItems.Set(7)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "stash_content_items 7") {
		t.Error("expected stash_content_items in scrape output")
	}
}
