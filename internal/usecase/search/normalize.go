package search

import (
	"strings"

	"github.com/kailas-cloud/stash/internal/domain/item"
)

// Normalize builds the searchable text of an item: title, description,
// tag names and URL joined by single spaces. The text is lower-cased unless
// caseSensitive is set. No stemming or punctuation stripping is applied.
func Normalize(it *item.Item, caseSensitive bool) string {
	text := strings.Join([]string{
		it.Title(),
		it.Description(),
		strings.Join(it.TagNames(), " "),
		it.URL(),
	}, " ")
	if caseSensitive {
		return text
	}
	return strings.ToLower(text)
}

// normalizeTerm applies the same case rule to a query term.
func normalizeTerm(term string, caseSensitive bool) string {
	if caseSensitive {
		return term
	}
	return strings.ToLower(term)
}
