package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stash/internal/domain/item"
)

// Suggestion defaults.
const (
	DefaultSuggestionPrefixLen = 3
	DefaultMaxSuggestions      = 5
	maxContentSuggestions      = 3
)

// DefaultPopularQueries is the fallback list offered when content yields
// too few alternatives.
var DefaultPopularQueries = []string{
	"productivity tips",
	"recipes",
	"design inspiration",
	"tutorials",
	"reading list",
}

// Suggester proposes alternative queries.
type Suggester struct {
	prefixLen int
	max       int
	popular   []string
}

// NewSuggester creates a Suggester. Non-positive sizes fall back to defaults;
// a nil popular list uses DefaultPopularQueries.
func NewSuggester(prefixLen, maxSuggestions int, popular []string) Suggester {
	if prefixLen <= 0 {
		prefixLen = DefaultSuggestionPrefixLen
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	if popular == nil {
		popular = DefaultPopularQueries
	}
	return Suggester{
		prefixLen: prefixLen,
		max:       maxSuggestions,
		popular:   append([]string(nil), popular...),
	}
}

// Suggest returns at most max suggestions. With noResults set and a
// non-empty query it first offers content words sharing the query prefix,
// then pads with popular queries while fewer than three were found.
func (s Suggester) Suggest(query string, items []item.Item, noResults bool) []string {
	out := make([]string, 0, s.max)

	query = strings.ToLower(strings.TrimSpace(query))
	if noResults && query != "" {
		for _, w := range s.contentWords(query, items) {
			out = append(out, fmt.Sprintf("Try %q", w))
		}
	}

	if len(out) >= maxContentSuggestions {
		return out
	}
	for _, p := range s.popular {
		if len(out) >= s.max {
			break
		}
		out = append(out, p)
	}
	return out
}

func (s Suggester) contentWords(query string, items []item.Item) []string {
	prefix := runePrefix(query, s.prefixLen)
	limit := min(maxContentSuggestions, s.max)

	seen := make(map[string]struct{})
	var words []string
	for i := range items {
		text := strings.ToLower(items[i].Title() + " " + items[i].Description())
		for _, w := range strings.Fields(text) {
			if utf8.RuneCountInString(w) <= s.prefixLen || !strings.HasPrefix(w, prefix) {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
			if len(words) == limit {
				return words
			}
		}
	}
	return words
}

func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
