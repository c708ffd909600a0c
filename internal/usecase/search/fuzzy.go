package search

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// DefaultMaxEditDistance is the Levenshtein tolerance between a query word and a text word.
const DefaultMaxEditDistance = 2

// Matcher decides whether a query term matches a text, tolerating small typos.
type Matcher struct {
	maxDistance int
}

// NewMatcher creates a Matcher. A negative distance falls back to the default.
func NewMatcher(maxDistance int) Matcher {
	if maxDistance < 0 {
		maxDistance = DefaultMaxEditDistance
	}
	return Matcher{maxDistance: maxDistance}
}

// FuzzyMatch reports whether term matches text with the default tolerance.
func FuzzyMatch(text, term string) bool {
	return NewMatcher(DefaultMaxEditDistance).Match(text, term)
}

// Match reports whether term matches text.
// A plain substring hit succeeds immediately. Otherwise every whitespace
// separated term word must find a text word that contains it, is contained
// by it, or lies within maxDistance edits. An empty term always matches.
func (m Matcher) Match(text, term string) bool {
	if strings.Contains(text, term) {
		return true
	}

	textWords := strings.Fields(text)
	for _, tw := range strings.Fields(term) {
		if !m.matchWord(textWords, tw) {
			return false
		}
	}
	return true
}

func (m Matcher) matchWord(textWords []string, word string) bool {
	wl := utf8.RuneCountInString(word)
	for _, w := range textWords {
		if strings.Contains(w, word) || strings.Contains(word, w) {
			return true
		}
		// Length gap alone already exceeds the tolerance.
		if abs(utf8.RuneCountInString(w)-wl) > m.maxDistance {
			continue
		}
		if edlib.LevenshteinDistance(w, word) <= m.maxDistance {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
