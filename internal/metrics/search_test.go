package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSearchRecorder_ObserveSearch(t *testing.T) {
	rec := NewSearchRecorder()
	before := testutil.ToFloat64(SearchesTotal.WithLabelValues("results"))

	rec.ObserveSearch("results", 3*time.Millisecond, 12)

	after := testutil.ToFloat64(SearchesTotal.WithLabelValues("results"))
	if after-before != 1 {
		t.Errorf("searches_total delta = %f, want 1", after-before)
	}
	if testutil.CollectAndCount(SearchDuration) == 0 {
		t.Error("expected search_duration_seconds observations")
	}
}

func TestSearchRecorder_SetContentSize(t *testing.T) {
	rec := NewSearchRecorder()
	rec.SetContentSize(42)

	if got := testutil.ToFloat64(ContentItems); got != 42 {
		t.Errorf("content_items = %f, want 42", got)
	}
}

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()
}
