package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/stash/internal/config"
	"github.com/kailas-cloud/stash/internal/domain/item"
	"github.com/kailas-cloud/stash/internal/domain/search/filter"
	"github.com/kailas-cloud/stash/internal/domain/search/request"
	searchuc "github.com/kailas-cloud/stash/internal/usecase/search"
)

func defaultSearchConfig() config.SearchConfig {
	var cfg config.Config
	cfg.ApplyDefaults()
	return cfg.Search
}

func TestScoring_MatchesDefaults(t *testing.T) {
	got := Scoring(defaultSearchConfig())
	want := searchuc.DefaultScoringConfig()
	if got != want {
		t.Errorf("scoring from default config:\n got %+v\nwant %+v", got, want)
	}
}

func TestScoring_CustomWeights(t *testing.T) {
	cfg := defaultSearchConfig()
	cfg.Weights.Title = 7
	cfg.RecencyWindowHours = 24

	got := Scoring(cfg)
	if got.Weights.Title != 7 {
		t.Errorf("title weight: got %v, want 7", got.Weights.Title)
	}
	if got.RecencyWindow != 24*time.Hour {
		t.Errorf("recency window: got %v", got.RecencyWindow)
	}
}

func TestSearchOptions_Applied(t *testing.T) {
	cfg := defaultSearchConfig()
	cfg.DefaultPageSize = 1
	cfg.MaxPageSize = 1

	svc := searchuc.New(SearchOptions(cfg)...)
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var items []item.Item
	for _, id := range []string{"a", "b", "c"} {
		it, err := item.New(id, "go tutorials "+id, "", "", nil, created, item.TypeNote)
		if err != nil {
			t.Fatalf("item.New: %v", err)
		}
		items = append(items, it)
	}
	svc.SetContent(items)

	req, err := request.New("tutorials", filter.Filters{}, false, request.Pagination{})
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	page, err := svc.Search(context.Background(), &req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Items()) != 1 || !page.HasMore() || page.Total() != 3 {
		t.Errorf("expected page size 1 of 3, got len=%d total=%d", len(page.Items()), page.Total())
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	if _, err := OpenStore(config.DatabaseConfig{Driver: "memcached", Addrs: []string{"x:1"}}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenStore_MissingAddrs(t *testing.T) {
	if _, err := OpenStore(config.DatabaseConfig{Driver: "valkey"}); err == nil {
		t.Fatal("expected error without addrs")
	}
}
