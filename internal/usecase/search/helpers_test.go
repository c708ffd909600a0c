package search

import (
	"testing"
	"time"

	"github.com/kailas-cloud/stash/internal/domain/item"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() Clock {
	return ClockFunc(func() time.Time { return testNow })
}

func tags(names ...string) []item.Tag {
	out := make([]item.Tag, 0, len(names))
	for i, n := range names {
		out = append(out, item.Tag{ID: string(rune('a' + i)), Name: n})
	}
	return out
}

func mustItem(t *testing.T, id, title, desc, url string, tagNames []string, created time.Time) item.Item {
	t.Helper()
	it, err := item.New(id, title, desc, url, tags(tagNames...), created, item.TypeURL)
	if err != nil {
		t.Fatalf("item.New(%q): %v", id, err)
	}
	return it
}

// oldDate is well outside the recency window.
var oldDate = testNow.AddDate(0, -2, 0)
