package filter

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/stash/internal/domain/item"
)

// MaxTags is the maximum number of tag values in one filter.
const MaxTags = 32

// Filters narrows a candidate set by type, tags, creation date and source domain.
// All present dimensions are ANDed; absent dimensions impose no constraint.
type Filters struct {
	contentType string
	tags        []string
	dateRange   *DateRange
	source      string
}

// New validates and creates Filters. Values are trimmed and lower-cased;
// blank tag values are dropped.
func New(contentType string, tags []string, dateRange *DateRange, source string) (Filters, error) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) > MaxTags {
		return Filters{}, fmt.Errorf("too many tag filters (max %d)", MaxTags)
	}
	if len(cleaned) == 0 {
		cleaned = nil
	}

	return Filters{
		contentType: strings.ToLower(strings.TrimSpace(contentType)),
		tags:        cleaned,
		dateRange:   dateRange,
		source:      strings.ToLower(strings.TrimSpace(source)),
	}, nil
}

// ContentType returns the type filter (empty when absent).
func (f Filters) ContentType() string { return f.contentType }

// Tags returns the tag filter values (nil when absent).
func (f Filters) Tags() []string { return f.tags }

// DateRange returns the creation date range (nil when absent).
func (f Filters) DateRange() *DateRange { return f.dateRange }

// Source returns the source domain filter (empty when absent).
func (f Filters) Source() string { return f.source }

// IsEmpty reports whether no filter dimension is set.
func (f Filters) IsEmpty() bool {
	return f.contentType == "" && len(f.tags) == 0 && f.dateRange == nil && f.source == ""
}

// Apply returns the items that pass every present dimension, in their original order.
// When no dimension is set the input slice is returned as is.
func (f Filters) Apply(items []item.Item) []item.Item {
	if f.IsEmpty() {
		return items
	}
	out := make([]item.Item, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// Matches reports whether a single item passes the filters.
func (f Filters) Matches(it *item.Item) bool {
	if f.contentType != "" && !matchType(it, f.contentType) {
		return false
	}
	if len(f.tags) > 0 && !matchTags(it, f.tags) {
		return false
	}
	if f.dateRange != nil && !f.dateRange.Contains(it.CreatedAt()) {
		return false
	}
	if f.source != "" && !matchSource(it, f.source) {
		return false
	}
	return true
}

// matchType compares case-insensitively; items without a type never match.
func matchType(it *item.Item, want string) bool {
	if it.ContentType() == "" {
		return false
	}
	return strings.ToLower(string(it.ContentType())) == want
}

// matchTags passes when any item tag name contains any requested tag.
func matchTags(it *item.Item, want []string) bool {
	for _, t := range it.Tags() {
		name := strings.ToLower(t.Name)
		for _, w := range want {
			if strings.Contains(name, w) {
				return true
			}
		}
	}
	return false
}

// matchSource checks the URL hostname. Unparseable or host-less URLs never match.
func matchSource(it *item.Item, want string) bool {
	if !it.HasURL() {
		return false
	}
	u, err := url.Parse(it.URL())
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	return strings.Contains(host, want)
}

// DateRange is an inclusive creation time window.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange validates and creates a DateRange. Both bounds are inclusive.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("date range requires both start and end")
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("date range end %s is before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return DateRange{start: start, end: end}, nil
}

// Start returns the lower inclusive bound.
func (r DateRange) Start() time.Time { return r.start }

// End returns the upper inclusive bound.
func (r DateRange) End() time.Time { return r.end }

// Contains reports whether t falls within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && !t.After(r.end)
}
