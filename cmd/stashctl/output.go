package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/kailas-cloud/stash/internal/domain/item"
	"github.com/kailas-cloud/stash/internal/domain/search/result"
	"github.com/kailas-cloud/stash/internal/domain/search/state"
)

const dateLayout = "2006-01-02"

var (
	matchColor   = color.New(color.FgYellow, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	mutedColor   = color.New(color.Faint)
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func renderPage(w io.Writer, p *result.Page, query string, offset int) {
	switch p.State() {
	case state.Idle:
		_, _ = mutedColor.Fprintln(w, "Nothing to search: give a query or a filter.")
		return
	case state.Empty:
		if query != "" {
			_, _ = color.New(color.FgYellow).Fprintf(w, "No results for %q\n", query)
		} else {
			_, _ = color.New(color.FgYellow).Fprintln(w, "No items match the filters")
		}
		if len(p.Suggestions()) > 0 {
			_, _ = headingColor.Fprintln(w, "Suggestions:")
			for _, s := range p.Suggestions() {
				_, _ = fmt.Fprintf(w, "  %s\n", s)
			}
		}
		return
	}

	table := newTable(w, []string{"#", "Score", "Title", "Type", "Tags", "Created"})
	for i, r := range p.Items() {
		it := r.Item()
		score := "-"
		if r.HasScore() {
			score = strconv.FormatFloat(r.Score(), 'f', -1, 64)
		}
		table.Append([]string{
			strconv.Itoa(offset + i + 1),
			score,
			highlightTitle(it.Title(), r.Highlights()),
			string(it.ContentType()),
			strings.Join(it.TagNames(), ", "),
			it.CreatedAt().Format(dateLayout),
		})
	}
	table.Render()

	more := ""
	if p.HasMore() {
		more = ", more available"
	}
	_, _ = mutedColor.Fprintf(w, "%d of %d results%s\n", len(p.Items()), p.Total(), more)
}

func renderItems(w io.Writer, items []item.Item, total int) {
	if len(items) == 0 {
		_, _ = mutedColor.Fprintln(w, "No items found.")
		return
	}
	table := newTable(w, []string{"ID", "Title", "Type", "Tags", "URL", "Created"})
	for i := range items {
		it := &items[i]
		table.Append([]string{
			it.ID(),
			it.Title(),
			string(it.ContentType()),
			strings.Join(it.TagNames(), ", "),
			it.URL(),
			it.CreatedAt().Format(dateLayout),
		})
	}
	table.Render()
	_, _ = mutedColor.Fprintf(w, "%d of %d items\n", len(items), total)
}

// highlightTitle colors the runes starting at the given byte offsets.
func highlightTitle(title string, offsets []int) string {
	if len(offsets) == 0 {
		return title
	}
	marked := make(map[int]struct{}, len(offsets))
	for _, o := range offsets {
		marked[o] = struct{}{}
	}

	var b strings.Builder
	for i := 0; i < len(title); {
		_, size := utf8.DecodeRuneInString(title[i:])
		chunk := title[i : i+size]
		if _, ok := marked[i]; ok {
			chunk = matchColor.Sprint(chunk)
		}
		b.WriteString(chunk)
		i += size
	}
	return b.String()
}
