package search

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// Highlight returns the byte offsets of title characters matched by term,
// for UI emphasis. Matching ignores case unless caseSensitive is set.
// Returns nil when nothing matches.
func Highlight(title, term string, caseSensitive bool) []int {
	term = strings.TrimSpace(term)
	if term == "" || title == "" {
		return nil
	}
	if caseSensitive {
		if at := strings.Index(title, term); at >= 0 {
			return runeOffsets(term, at)
		}
	}

	matches := fuzzy.Find(term, []string{title})
	if len(matches) == 0 {
		return nil
	}
	idx := matches[0].MatchedIndexes
	if caseSensitive && !sameRunes(title, term, idx) {
		return nil
	}
	return idx
}

// runeOffsets returns the byte offset in the title of each rune of a
// substring found at position at.
func runeOffsets(sub string, at int) []int {
	out := make([]int, 0, utf8.RuneCountInString(sub))
	for i := range sub {
		out = append(out, at+i)
	}
	return out
}

// sameRunes reports whether the title runes at idx spell term exactly.
func sameRunes(title, term string, idx []int) bool {
	if len(idx) != utf8.RuneCountInString(term) {
		return false
	}
	k := 0
	for _, want := range term {
		if idx[k] < 0 || idx[k] >= len(title) {
			return false
		}
		got, _ := utf8.DecodeRuneInString(title[idx[k]:])
		if got != want {
			return false
		}
		k++
	}
	return true
}
