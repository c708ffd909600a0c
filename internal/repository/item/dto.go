package item

import (
	"encoding/json"
	"fmt"
	"time"

	domitem "github.com/kailas-cloud/stash/internal/domain/item"
)

// Hash field names.
const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldURL         = "url"
	fieldType        = "type"
	fieldCreatedAt   = "created_at"
	fieldTags        = "tags"
)

type tagJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// buildHashFields converts a domain Item into a flat map[string]string for HSET.
// Tags are stored as a JSON array to keep their order.
func buildHashFields(it *domitem.Item) (map[string]string, error) {
	tags, err := json.Marshal(toTagJSON(it.Tags()))
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return map[string]string{
		fieldID:          it.ID(),
		fieldTitle:       it.Title(),
		fieldDescription: it.Description(),
		fieldURL:         it.URL(),
		fieldType:        string(it.ContentType()),
		fieldCreatedAt:   it.CreatedAt().UTC().Format(time.RFC3339Nano),
		fieldTags:        string(tags),
	}, nil
}

// parseHashFields converts a flat hash map back into a domain Item.
func parseHashFields(m map[string]string) (domitem.Item, error) {
	id := m[fieldID]
	if id == "" {
		return domitem.Item{}, fmt.Errorf("hash has no %s field", fieldID)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, m[fieldCreatedAt])
	if err != nil {
		return domitem.Item{}, fmt.Errorf("item %s: parse %s: %w", id, fieldCreatedAt, err)
	}

	var tags []tagJSON
	if raw := m[fieldTags]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return domitem.Item{}, fmt.Errorf("item %s: parse %s: %w", id, fieldTags, err)
		}
	}

	return domitem.Reconstruct(
		id, m[fieldTitle], m[fieldDescription], m[fieldURL],
		fromTagJSON(tags), createdAt, domitem.ContentType(m[fieldType]),
	), nil
}

func toTagJSON(tags []domitem.Tag) []tagJSON {
	out := make([]tagJSON, len(tags))
	for i, t := range tags {
		out[i] = tagJSON{ID: t.ID, Name: t.Name}
	}
	return out
}

func fromTagJSON(tags []tagJSON) []domitem.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]domitem.Tag, len(tags))
	for i, t := range tags {
		out[i] = domitem.Tag{ID: t.ID, Name: t.Name}
	}
	return out
}
