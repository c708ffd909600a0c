package search

import "testing"

func TestNormalize(t *testing.T) {
	it := mustItem(t, "1", "Go Concurrency", "Patterns and Pitfalls",
		"https://Example.com/Go", []string{"Golang", "CSP"}, oldDate)

	got := Normalize(&it, false)
	want := "go concurrency patterns and pitfalls golang csp https://example.com/go"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}

	got = Normalize(&it, true)
	want = "Go Concurrency Patterns and Pitfalls Golang CSP https://Example.com/Go"
	if got != want {
		t.Errorf("Normalize(caseSensitive) = %q, want %q", got, want)
	}
}

func TestNormalize_EmptyFields(t *testing.T) {
	it := mustItem(t, "1", "Title", "", "", nil, oldDate)
	if got := Normalize(&it, false); got != "title   " {
		t.Errorf("Normalize() = %q, want %q", got, "title   ")
	}
}
