package item

import (
	"fmt"
	"strings"
	"time"
)

// MaxIDLength is the maximum saved item identifier length.
const MaxIDLength = 256

// ContentType is the kind of a saved item.
type ContentType string

// Content type constants.
const (
	TypeURL  ContentType = "url"
	TypeFile ContentType = "file"
	TypeNote ContentType = "note"
)

// IsValid checks if the content type is one of the supported values.
func (t ContentType) IsValid() bool {
	return t == TypeURL || t == TypeFile || t == TypeNote
}

// Tag is a label attached to a saved item. Names compare case-insensitively.
type Tag struct {
	ID   string
	Name string
}

// Item is a saved URL, file or note (immutable value object).
// The search engine only reads items; it never mutates them.
type Item struct {
	id          string
	title       string
	description string
	url         string
	tags        []Tag
	createdAt   time.Time
	contentType ContentType
}

// New validates and creates an Item.
// ID is required. An empty content type is allowed and never matches a type filter.
func New(
	id, title, description, url string,
	tags []Tag, createdAt time.Time, contentType ContentType,
) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, fmt.Errorf("item ID is required")
	}
	if len(id) > MaxIDLength {
		return Item{}, fmt.Errorf("item ID too long (max %d)", MaxIDLength)
	}
	if contentType != "" && !contentType.IsValid() {
		return Item{}, fmt.Errorf("invalid content type: %q", contentType)
	}
	for i, t := range tags {
		if strings.TrimSpace(t.Name) == "" {
			return Item{}, fmt.Errorf("tag %d: name is required", i)
		}
	}
	if createdAt.IsZero() {
		return Item{}, fmt.Errorf("created_at is required")
	}

	return Reconstruct(id, title, description, url, cloneTags(tags), createdAt, contentType), nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(
	id, title, description, url string,
	tags []Tag, createdAt time.Time, contentType ContentType,
) Item {
	return Item{
		id:          id,
		title:       title,
		description: description,
		url:         url,
		tags:        tags,
		createdAt:   createdAt,
		contentType: contentType,
	}
}

// ID returns the item identifier.
func (i *Item) ID() string { return i.id }

// Title returns the item title.
func (i *Item) Title() string { return i.title }

// Description returns the item description.
func (i *Item) Description() string { return i.description }

// URL returns the item URL (empty when the item has none).
func (i *Item) URL() string { return i.url }

// HasURL reports whether the item carries a URL.
func (i *Item) HasURL() bool { return i.url != "" }

// Tags returns the item tags in their saved order.
func (i *Item) Tags() []Tag { return i.tags }

// TagNames returns the tag names in their saved order.
func (i *Item) TagNames() []string {
	names := make([]string, len(i.tags))
	for n, t := range i.tags {
		names[n] = t.Name
	}
	return names
}

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// ContentType returns the item kind (empty when unknown).
func (i *Item) ContentType() ContentType { return i.contentType }

func cloneTags(tags []Tag) []Tag {
	if tags == nil {
		return nil
	}
	c := make([]Tag, len(tags))
	copy(c, tags)
	return c
}
