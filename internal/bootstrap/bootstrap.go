// Package bootstrap turns configuration into wired components shared by the
// server and the CLI.
package bootstrap

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/stash/internal/config"
	"github.com/kailas-cloud/stash/internal/db"
	dbRedis "github.com/kailas-cloud/stash/internal/db/redis"
	searchuc "github.com/kailas-cloud/stash/internal/usecase/search"
)

// OpenStore connects to the configured item store. Valkey and Redis share one
// client since only core hash and keyspace commands are used.
func OpenStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "valkey", "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Scoring maps search config onto the scorer settings.
func Scoring(cfg config.SearchConfig) searchuc.ScoringConfig {
	w := cfg.Weights
	return searchuc.ScoringConfig{
		Weights: searchuc.Weights{
			Title:            w.Title,
			TitleExact:       w.TitleExact,
			Description:      w.Description,
			DescriptionExact: w.DescriptionExact,
			Tag:              w.Tag,
			TagExact:         w.TagExact,
			URL:              w.URL,
			URLExact:         w.URLExact,
		},
		RecencyWindow:   time.Duration(cfg.RecencyWindowHours) * time.Hour,
		RecencyBonus:    cfg.RecencyBonus,
		FuzzyFloor:      cfg.FuzzyFloor,
		MaxEditDistance: cfg.MaxEditDistance,
	}
}

// SearchOptions builds orchestrator options from config. Extra options are
// appended last so callers can override clock, logger or recorder.
func SearchOptions(cfg config.SearchConfig, extra ...searchuc.Option) []searchuc.Option {
	opts := []searchuc.Option{
		searchuc.WithScoring(Scoring(cfg)),
		searchuc.WithSuggester(searchuc.NewSuggester(
			cfg.SuggestionPrefixLen, cfg.MaxSuggestions, cfg.PopularQueries,
		)),
		searchuc.WithPagination(cfg.DefaultPageSize, cfg.MaxPageSize),
		searchuc.WithDefer(time.Duration(cfg.DeferMs) * time.Millisecond),
	}
	return append(opts, extra...)
}
