package result

import (
	"github.com/kailas-cloud/stash/internal/domain/item"
	"github.com/kailas-cloud/stash/internal/domain/search/request"
	"github.com/kailas-cloud/stash/internal/domain/search/state"
)

// Result is a single search hit. The item is shared with the collection, never copied for mutation.
type Result struct {
	item       item.Item
	score      float64
	scored     bool
	highlights []int
}

// New creates a scored result. highlights are byte offsets of the query match in the title.
func New(it item.Item, score float64, highlights []int) Result {
	return Result{item: it, score: score, scored: true, highlights: highlights}
}

// Unscored creates a result for a pure filter query (no text to score against).
func Unscored(it item.Item) Result {
	return Result{item: it}
}

// Item returns the matched saved item.
func (r *Result) Item() item.Item { return r.item }

// Score returns the relevance score (0 for unscored results).
func (r *Result) Score() float64 { return r.score }

// HasScore reports whether the result was produced by a text query.
func (r *Result) HasScore() bool { return r.scored }

// Highlights returns title byte offsets matched by the query.
func (r *Result) Highlights() []int { return r.highlights }

// Page is one paginated view over a ranked result list.
type Page struct {
	items       []Result
	total       int
	hasMore     bool
	suggestions []string
	state       state.State
}

// Paginate slices a ranked list. An offset past the end yields an empty page with hasMore=false.
func Paginate(all []Result, p request.Pagination) Page {
	total := len(all)
	offset := p.Offset()
	if offset >= total {
		return Page{items: []Result{}, total: total}
	}
	end := offset + p.Limit()
	if end > total {
		end = total
	}
	return Page{
		items:   all[offset:end],
		total:   total,
		hasMore: offset+p.Limit() < total,
	}
}

// IdlePage is the empty view exposed while no query is active.
func IdlePage() Page {
	return Page{items: []Result{}, state: state.Idle}
}

// Items returns the results on this page.
func (p *Page) Items() []Result { return p.items }

// Total returns the number of results across all pages.
func (p *Page) Total() int { return p.total }

// HasMore reports whether results exist beyond this page.
func (p *Page) HasMore() bool { return p.hasMore }

// Suggestions returns alternative queries (set only for empty outcomes).
func (p *Page) Suggestions() []string { return p.suggestions }

// State returns the orchestrator state this page was published in.
func (p *Page) State() state.State { return p.state }

// WithState returns a copy tagged with the given state.
func (p Page) WithState(s state.State) Page {
	p.state = s
	return p
}

// WithSuggestions returns a copy carrying the given suggestions.
func (p Page) WithSuggestions(s []string) Page {
	p.suggestions = s
	return p
}
