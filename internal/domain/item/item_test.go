package item

import (
	"strings"
	"testing"
	"time"
)

var created = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestNew_Valid(t *testing.T) {
	tags := []Tag{{ID: "t1", Name: "react"}, {ID: "t2", Name: "javascript"}}

	it, err := New("item-1", "How to Build a React App", "step by step",
		"https://example.com/react", tags, created, TypeURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.ID() != "item-1" {
		t.Errorf("ID() = %q", it.ID())
	}
	if it.Title() != "How to Build a React App" {
		t.Errorf("Title() = %q", it.Title())
	}
	if it.Description() != "step by step" {
		t.Errorf("Description() = %q", it.Description())
	}
	if !it.HasURL() || it.URL() != "https://example.com/react" {
		t.Errorf("URL() = %q", it.URL())
	}
	if got := strings.Join(it.TagNames(), ","); got != "react,javascript" {
		t.Errorf("TagNames() = %q", got)
	}
	if !it.CreatedAt().Equal(created) {
		t.Errorf("CreatedAt() = %v", it.CreatedAt())
	}
	if it.ContentType() != TypeURL {
		t.Errorf("ContentType() = %q", it.ContentType())
	}
}

func TestNew_OptionalFields(t *testing.T) {
	it, err := New("item-1", "", "", "", nil, created, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.HasURL() {
		t.Error("HasURL() = true for item without url")
	}
	if it.Tags() != nil {
		t.Errorf("Tags() = %v, want nil", it.Tags())
	}
	if len(it.TagNames()) != 0 {
		t.Errorf("TagNames() = %v, want empty", it.TagNames())
	}
}

func TestNew_ClonesTags(t *testing.T) {
	tags := []Tag{{ID: "t1", Name: "go"}}
	it, _ := New("item-1", "title", "", "", tags, created, TypeNote)

	tags[0].Name = "mutated"

	if it.Tags()[0].Name != "go" {
		t.Error("tag mutation leaked into item")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		tags    []Tag
		at      time.Time
		ct      ContentType
		wantErr string
	}{
		{"empty id", "", nil, created, TypeURL, "ID is required"},
		{"blank id", "   ", nil, created, TypeURL, "ID is required"},
		{"long id", strings.Repeat("a", MaxIDLength+1), nil, created, TypeURL, "too long"},
		{"bad type", "item-1", nil, created, ContentType("video"), "invalid content type"},
		{"blank tag", "item-1", []Tag{{ID: "t", Name: " "}}, created, TypeURL, "name is required"},
		{"zero time", "item-1", nil, time.Time{}, TypeURL, "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, "title", "", "", tt.tags, tt.at, tt.ct)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestContentType_IsValid(t *testing.T) {
	for _, ct := range []ContentType{TypeURL, TypeFile, TypeNote} {
		if !ct.IsValid() {
			t.Errorf("%q should be valid", ct)
		}
	}
	for _, ct := range []ContentType{"", "URL", "video"} {
		if ct.IsValid() {
			t.Errorf("%q should be invalid", ct)
		}
	}
}
