package item

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domitem "github.com/kailas-cloud/stash/internal/domain/item"
)

const sampleExport = `[
  {
    "id": "1",
    "title": "How to Build a React App",
    "url": "https://example.com/article1",
    "tags": [{"id": "t1", "name": "react"}, {"id": "t2", "name": "javascript"}],
    "createdAt": "2026-03-01T10:00:00Z",
    "contentType": "url"
  },
  {
    "id": "2",
    "title": "Job Interview Tips",
    "description": "notes from the call",
    "createdAt": "2026-03-02T10:00:00Z",
    "contentType": "note"
  }
]`

func TestDecode(t *testing.T) {
	items, err := Decode(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].URL() != "https://example.com/article1" || len(items[0].Tags()) != 2 {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].ContentType() != domitem.TypeNote || items[1].HasURL() {
		t.Errorf("item 1 = %+v", items[1])
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not json", "{", "decode items"},
		{"missing id", `[{"title":"x","createdAt":"2026-03-01T10:00:00Z"}]`, "item 0"},
		{"missing createdAt", `[{"id":"1","title":"x"}]`, "item 0"},
		{"bad type", `[{"id":"1","createdAt":"2026-03-01T10:00:00Z","contentType":"video"}]`, "item 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	items, err := Decode(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, items); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()): %v", err)
	}
	if len(again) != len(items) {
		t.Fatalf("got %d items, want %d", len(again), len(items))
	}
	for i := range items {
		if again[i].ID() != items[i].ID() || !again[i].CreatedAt().Equal(items[i].CreatedAt()) {
			t.Errorf("item %d changed: %+v", i, again[i])
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(sampleExport), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	items, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items", len(items))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
