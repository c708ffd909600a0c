package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stash/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in characters.
	MaxQueryLength = 1024
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Pagination is a limit/offset window over a ranked result list.
type Pagination struct {
	limit  int
	offset int
}

// NewPagination validates a pagination window.
// A zero limit means "use the default"; offset must not be negative.
func NewPagination(limit, offset int) (Pagination, error) {
	if limit < 0 {
		return Pagination{}, fmt.Errorf("limit must not be negative, got %d", limit)
	}
	if offset < 0 {
		return Pagination{}, fmt.Errorf("offset must not be negative, got %d", offset)
	}
	return Pagination{limit: limit, offset: offset}, nil
}

// Limit returns the page size (0 when unset).
func (p Pagination) Limit() int { return p.limit }

// Offset returns the number of ranked results to skip.
func (p Pagination) Offset() int { return p.offset }

// Resolve fills an unset limit with defaultLimit and clamps it to maxLimit.
func (p Pagination) Resolve(defaultLimit, maxLimit int) Pagination {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	limit := p.limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{limit: limit, offset: p.offset}
}

// Request is a validated search query.
type Request struct {
	text          string
	filters       filter.Filters
	caseSensitive bool
	page          Pagination
}

// New validates and normalizes search parameters.
// Surrounding whitespace is trimmed; an empty text is a valid "no text" query.
func New(text string, filters filter.Filters, caseSensitive bool, page Pagination) (Request, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	return Request{
		text:          text,
		filters:       filters,
		caseSensitive: caseSensitive,
		page:          page,
	}, nil
}

// Text returns the query text (possibly empty).
func (r *Request) Text() string { return r.text }

// Filters returns the structured filters.
func (r *Request) Filters() filter.Filters { return r.filters }

// CaseSensitive reports whether normalization is skipped.
func (r *Request) CaseSensitive() bool { return r.caseSensitive }

// Page returns the requested pagination window.
func (r *Request) Page() Pagination { return r.page }

// HasText reports whether the query carries free text.
func (r *Request) HasText() bool { return r.text != "" }

// IsIdle reports whether the query has neither text nor filters.
func (r *Request) IsIdle() bool { return r.text == "" && r.filters.IsEmpty() }
