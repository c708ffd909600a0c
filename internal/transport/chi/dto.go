package chi

import (
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/stash/internal/domain/item"
	"github.com/kailas-cloud/stash/internal/domain/search/filter"
	"github.com/kailas-cloud/stash/internal/domain/search/request"
	"github.com/kailas-cloud/stash/internal/domain/search/result"
	libraryuc "github.com/kailas-cloud/stash/internal/usecase/library"
)

// TagDTO is a tag on the wire.
type TagDTO struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// ItemDTO is a saved item on the wire.
type ItemDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Tags        []TagDTO  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ContentType string    `json:"content_type,omitempty"`
}

// SaveItemRequest is the POST /items body. ID and CreatedAt are optional.
type SaveItemRequest struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	Tags        []TagDTO   `json:"tags,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
}

// ItemListResponse is a page of stored items.
type ItemListResponse struct {
	Items   []ItemDTO `json:"items"`
	Total   int       `json:"total"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
	HasMore bool      `json:"has_more"`
}

// CountResponse reports how many items an operation touched.
type CountResponse struct {
	Items int `json:"items"`
}

// DateRangeDTO bounds item creation time, both ends inclusive.
type DateRangeDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FiltersDTO is the structured filter set on the wire.
type FiltersDTO struct {
	Type      string        `json:"type,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
	DateRange *DateRangeDTO `json:"date_range,omitempty"`
	Source    string        `json:"source,omitempty"`
}

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Query         string      `json:"query"`
	Filters       *FiltersDTO `json:"filters,omitempty"`
	CaseSensitive bool        `json:"case_sensitive,omitempty"`
	Limit         *int        `json:"limit,omitempty"`
	Offset        *int        `json:"offset,omitempty"`
}

// FilterRequest is the POST /filter body.
type FilterRequest struct {
	Filters FiltersDTO `json:"filters"`
}

// ResultDTO is one ranked search result.
type ResultDTO struct {
	Item       ItemDTO  `json:"item"`
	Score      *float64 `json:"score,omitempty"`
	Highlights []int    `json:"highlights,omitempty"`
}

// PageResponse is a published search outcome.
type PageResponse struct {
	State       string      `json:"state"`
	Items       []ResultDTO `json:"items"`
	Total       int         `json:"total"`
	HasMore     bool        `json:"has_more"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

// CurrentSearchResponse is the GET /search body: the published page and the
// query behind it (absent when idle).
type CurrentSearchResponse struct {
	PageResponse
	Query   *SearchRequest `json:"query,omitempty"`
}

// SuggestionsResponse is the GET /suggestions body.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Items  int               `json:"items"`
}

func itemToDTO(it *item.Item) ItemDTO {
	var tags []TagDTO
	if len(it.Tags()) > 0 {
		tags = make([]TagDTO, len(it.Tags()))
		for i, t := range it.Tags() {
			tags[i] = TagDTO{ID: t.ID, Name: t.Name}
		}
	}
	return ItemDTO{
		ID:          it.ID(),
		Title:       it.Title(),
		Description: it.Description(),
		URL:         it.URL(),
		Tags:        tags,
		CreatedAt:   it.CreatedAt().UTC(),
		ContentType: string(it.ContentType()),
	}
}

func itemsToDTO(items []item.Item) []ItemDTO {
	out := make([]ItemDTO, len(items))
	for i := range items {
		out[i] = itemToDTO(&items[i])
	}
	return out
}

func draftFromRequest(req *SaveItemRequest) libraryuc.Draft {
	tags := make([]item.Tag, len(req.Tags))
	for i, t := range req.Tags {
		tags[i] = item.Tag{ID: t.ID, Name: t.Name}
	}
	d := libraryuc.Draft{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Tags:        tags,
		ContentType: item.ContentType(req.ContentType),
	}
	if req.CreatedAt != nil {
		d.CreatedAt = *req.CreatedAt
	}
	return d
}

func filtersFromDTO(f *FiltersDTO) (filter.Filters, error) {
	if f == nil {
		return filter.Filters{}, nil
	}
	if f.Type != "" && !item.ContentType(f.Type).IsValid() {
		return filter.Filters{}, fmt.Errorf("unknown content type %q", f.Type)
	}

	var dr *filter.DateRange
	if f.DateRange != nil {
		r, err := filter.NewDateRange(f.DateRange.Start, f.DateRange.End)
		if err != nil {
			return filter.Filters{}, fmt.Errorf("date range: %w", err)
		}
		dr = &r
	}

	out, err := filter.New(f.Type, f.Tags, dr, f.Source)
	if err != nil {
		return filter.Filters{}, fmt.Errorf("filters: %w", err)
	}
	return out, nil
}

func filtersToDTO(f filter.Filters) *FiltersDTO {
	if f.IsEmpty() {
		return nil
	}
	out := &FiltersDTO{
		Type:   f.ContentType(),
		Tags:   f.Tags(),
		Source: f.Source(),
	}
	if dr := f.DateRange(); dr != nil {
		out.DateRange = &DateRangeDTO{Start: dr.Start(), End: dr.End()}
	}
	return out
}

func searchRequestFromDTO(req *SearchRequest) (request.Request, error) {
	filters, err := filtersFromDTO(req.Filters)
	if err != nil {
		return request.Request{}, err
	}

	limit, offset := derefInt(req.Limit), derefInt(req.Offset)
	if req.Limit != nil && *req.Limit <= 0 {
		return request.Request{}, errors.New("limit must be positive")
	}
	page, err := request.NewPagination(limit, offset)
	if err != nil {
		return request.Request{}, fmt.Errorf("pagination: %w", err)
	}

	r, err := request.New(req.Query, filters, req.CaseSensitive, page)
	if err != nil {
		return request.Request{}, fmt.Errorf("build search request: %w", err)
	}
	return r, nil
}

func searchRequestToDTO(r *request.Request) *SearchRequest {
	out := &SearchRequest{
		Query:         r.Text(),
		Filters:       filtersToDTO(r.Filters()),
		CaseSensitive: r.CaseSensitive(),
	}
	if p := r.Page(); p.Limit() > 0 {
		l := p.Limit()
		out.Limit = &l
	}
	if p := r.Page(); p.Offset() > 0 {
		o := p.Offset()
		out.Offset = &o
	}
	return out
}

func pageToDTO(p *result.Page) PageResponse {
	items := make([]ResultDTO, len(p.Items()))
	for i, r := range p.Items() {
		it := r.Item()
		dto := ResultDTO{
			Item:       itemToDTO(&it),
			Highlights: r.Highlights(),
		}
		if r.HasScore() {
			s := r.Score()
			dto.Score = &s
		}
		items[i] = dto
	}
	return PageResponse{
		State:       string(p.State()),
		Items:       items,
		Total:       p.Total(),
		HasMore:     p.HasMore(),
		Suggestions: p.Suggestions(),
	}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
