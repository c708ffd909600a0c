package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/stash/internal/domain/item"
	"github.com/kailas-cloud/stash/internal/domain/search/filter"
	"github.com/kailas-cloud/stash/internal/domain/search/request"
)

type searchFlags struct {
	contentType   string
	tags          []string
	since         string
	until         string
	source        string
	caseSensitive bool
	limit         int
	offset        int
}

func newSearchCmd(a *app) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Rank saved items against a query and filters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}
			req, err := f.request(query)
			if err != nil {
				return err
			}

			svc, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			page, err := svc.Search(cmd.Context(), &req)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			renderPage(a.out, &page, req.Text(), req.Page().Offset())
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.contentType, "type", "", "content type: url, file or note")
	fl.StringSliceVar(&f.tags, "tags", nil, "tag names, any of (comma separated)")
	fl.StringVar(&f.since, "since", "", "created on or after (YYYY-MM-DD or RFC3339)")
	fl.StringVar(&f.until, "until", "", "created on or before (YYYY-MM-DD or RFC3339)")
	fl.StringVar(&f.source, "source", "", "source domain substring, e.g. example.com")
	fl.BoolVar(&f.caseSensitive, "case-sensitive", false, "match query case exactly")
	fl.IntVar(&f.limit, "limit", 0, "page size (default from config)")
	fl.IntVar(&f.offset, "offset", 0, "results to skip")
	return cmd
}

func (f *searchFlags) request(query string) (request.Request, error) {
	if f.contentType != "" && !item.ContentType(f.contentType).IsValid() {
		return request.Request{}, fmt.Errorf("unknown content type %q", f.contentType)
	}

	dr, err := f.dateRange()
	if err != nil {
		return request.Request{}, err
	}
	filters, err := filter.New(f.contentType, f.tags, dr, f.source)
	if err != nil {
		return request.Request{}, fmt.Errorf("filters: %w", err)
	}
	page, err := request.NewPagination(f.limit, f.offset)
	if err != nil {
		return request.Request{}, fmt.Errorf("pagination: %w", err)
	}
	req, err := request.New(query, filters, f.caseSensitive, page)
	if err != nil {
		return request.Request{}, fmt.Errorf("query: %w", err)
	}
	return req, nil
}

func (f *searchFlags) dateRange() (*filter.DateRange, error) {
	if f.since == "" && f.until == "" {
		return nil, nil
	}
	if f.since == "" || f.until == "" {
		return nil, fmt.Errorf("--since and --until must be given together")
	}
	start, err := parseDay(f.since, false)
	if err != nil {
		return nil, fmt.Errorf("--since: %w", err)
	}
	end, err := parseDay(f.until, true)
	if err != nil {
		return nil, fmt.Errorf("--until: %w", err)
	}
	dr, err := filter.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return &dr, nil
}

// parseDay accepts RFC3339 or a bare date. A bare end date covers the whole day.
func parseDay(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
