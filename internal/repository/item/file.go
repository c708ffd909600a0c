package item

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	domitem "github.com/kailas-cloud/stash/internal/domain/item"
)

// exportJSON is one saved item in a JSON export file.
type exportJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Tags        []tagJSON `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ContentType string    `json:"contentType,omitempty"`
}

// ReadFile loads items from a JSON export file (an array of items).
func ReadFile(path string) ([]domitem.Item, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	items, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}
	return items, nil
}

// Decode parses a JSON export. Every entry is validated; the first invalid
// entry aborts decoding with its index in the error.
func Decode(r io.Reader) ([]domitem.Item, error) {
	var raw []exportJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]domitem.Item, 0, len(raw))
	for i, e := range raw {
		it, err := domitem.New(
			e.ID, e.Title, e.Description, e.URL,
			fromTagJSON(e.Tags), e.CreatedAt, domitem.ContentType(e.ContentType),
		)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// Encode writes items in the export format.
func Encode(w io.Writer, items []domitem.Item) error {
	out := make([]exportJSON, len(items))
	for i := range items {
		it := &items[i]
		out[i] = exportJSON{
			ID:          it.ID(),
			Title:       it.Title(),
			Description: it.Description(),
			URL:         it.URL(),
			Tags:        toTagJSON(it.Tags()),
			CreatedAt:   it.CreatedAt(),
			ContentType: string(it.ContentType()),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return nil
}
