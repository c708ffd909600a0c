package search

import (
	"strings"
	"time"

	"github.com/kailas-cloud/stash/internal/domain/item"
)

// Weights holds per-field points. The *Exact weights apply when the whole
// field equals the term; the others when the field contains it.
type Weights struct {
	Title            float64
	TitleExact       float64
	Description      float64
	DescriptionExact float64
	Tag              float64
	TagExact         float64
	URL              float64
	URLExact         float64
}

// DefaultWeights returns the standard field weighting.
func DefaultWeights() Weights {
	return Weights{
		Title:            50,
		TitleExact:       100,
		Description:      25,
		DescriptionExact: 25,
		Tag:              20,
		TagExact:         40,
		URL:              10,
		URLExact:         10,
	}
}

// ScoringConfig tunes the relevance scorer.
type ScoringConfig struct {
	Weights         Weights
	RecencyWindow   time.Duration
	RecencyBonus    float64
	FuzzyFloor      float64 // score for fuzzy-only matches; 0 drops them
	MaxEditDistance int
}

// DefaultScoringConfig returns the standard scoring setup.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights:         DefaultWeights(),
		RecencyWindow:   7 * 24 * time.Hour,
		RecencyBonus:    5,
		MaxEditDistance: DefaultMaxEditDistance,
	}
}

// Scorer assigns additive, non-negative relevance scores.
type Scorer struct {
	cfg     ScoringConfig
	matcher Matcher
}

// NewScorer creates a Scorer.
func NewScorer(cfg ScoringConfig) Scorer {
	return Scorer{cfg: cfg, matcher: NewMatcher(cfg.MaxEditDistance)}
}

// Score sums the field weights earned by term against the item and adds the
// recency bonus when at least one field matched. An empty term scores 0.
func (s Scorer) Score(it *item.Item, term string, caseSensitive bool, now time.Time) float64 {
	term = normalizeTerm(term, caseSensitive)
	if term == "" {
		return 0
	}
	score := s.fieldScore(it, term, caseSensitive)
	if score > 0 {
		score += s.recency(it, now)
	}
	return score
}

// Rank decides whether the item answers term and with which score.
// Items rejected by the fuzzy matcher are excluded. Accepted items that
// earn no field points get the fuzzy floor, and are excluded when it is 0.
func (s Scorer) Rank(it *item.Item, term string, caseSensitive bool, now time.Time) (float64, bool) {
	t := normalizeTerm(term, caseSensitive)
	if t == "" {
		return 0, false
	}
	if !s.matcher.Match(Normalize(it, caseSensitive), t) {
		return 0, false
	}

	score := s.fieldScore(it, t, caseSensitive)
	if score == 0 {
		score = s.cfg.FuzzyFloor
	}
	if score <= 0 {
		return 0, false
	}
	return score + s.recency(it, now), true
}

// fieldScore expects term already case-normalized.
func (s Scorer) fieldScore(it *item.Item, term string, caseSensitive bool) float64 {
	w := s.cfg.Weights
	var score float64

	score += fieldPoints(normalizeTerm(it.Title(), caseSensitive), term, w.Title, w.TitleExact)
	score += fieldPoints(normalizeTerm(it.Description(), caseSensitive), term, w.Description, w.DescriptionExact)
	score += s.tagPoints(it, term, caseSensitive)
	score += fieldPoints(normalizeTerm(it.URL(), caseSensitive), term, w.URL, w.URLExact)

	return score
}

// tagPoints counts the best tag once: exact beats substring.
func (s Scorer) tagPoints(it *item.Item, term string, caseSensitive bool) float64 {
	var best float64
	for _, t := range it.Tags() {
		p := fieldPoints(normalizeTerm(t.Name, caseSensitive), term, s.cfg.Weights.Tag, s.cfg.Weights.TagExact)
		if p > best {
			best = p
		}
	}
	return best
}

func (s Scorer) recency(it *item.Item, now time.Time) float64 {
	if s.cfg.RecencyBonus <= 0 || s.cfg.RecencyWindow <= 0 {
		return 0
	}
	if now.Sub(it.CreatedAt()) <= s.cfg.RecencyWindow {
		return s.cfg.RecencyBonus
	}
	return 0
}

func fieldPoints(field, term string, substring, exact float64) float64 {
	switch {
	case field == "":
		return 0
	case field == term:
		return exact
	case strings.Contains(field, term):
		return substring
	default:
		return 0
	}
}
