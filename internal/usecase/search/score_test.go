package search

import (
	"testing"
	"time"
)

func TestScorer_ReactScenario(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	react := mustItem(t, "1", "How to Build a React App", "", "", []string{"react", "javascript"}, oldDate)
	job := mustItem(t, "2", "Job Interview Tips", "", "", []string{"job", "career"}, oldDate)

	score, ok := s.Rank(&react, "react", false, testNow)
	if !ok {
		t.Fatal("react item must be ranked")
	}
	if score < 50 {
		t.Errorf("score = %v, want >= 50", score)
	}
	// title substring 50 + exact tag 40
	if score != 90 {
		t.Errorf("score = %v, want 90", score)
	}

	if _, ok := s.Rank(&job, "react", false, testNow); ok {
		t.Error("job item must be excluded")
	}
	if got := s.Score(&job, "react", false, testNow); got != 0 {
		t.Errorf("Score(job) = %v, want 0", got)
	}
}

func TestScorer_ExactTitleBeatsSubstring(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	it := mustItem(t, "1", "Sourdough Bread", "weekend baking", "", []string{"recipes"}, oldDate)

	exact := s.Score(&it, "sourdough bread", false, testNow)
	partial := s.Score(&it, "sourdough", false, testNow)
	if exact < partial {
		t.Errorf("exact title %v < substring %v", exact, partial)
	}
	if exact != 100 || partial != 50 {
		t.Errorf("got exact=%v partial=%v, want 100 and 50", exact, partial)
	}
}

func TestScorer_FieldWeights(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	it := mustItem(t, "1", "Notes", "tutorial", "https://docs.example.com/tutorial",
		[]string{"tutorials", "misc"}, oldDate)

	// description exact 25 + tag substring 20 + url substring 10
	if got := s.Score(&it, "tutorial", false, testNow); got != 55 {
		t.Errorf("Score() = %v, want 55", got)
	}
}

func TestScorer_TagCountedOnce(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	it := mustItem(t, "1", "x", "", "", []string{"go", "golang", "go-tips"}, oldDate)

	if got := s.Score(&it, "go", false, testNow); got != 40 {
		t.Errorf("Score() = %v, want 40", got)
	}
}

func TestScorer_Recency(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())

	tests := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"within window", 24 * time.Hour, 55},
		{"on boundary", 7 * 24 * time.Hour, 55},
		{"outside window", 8 * 24 * time.Hour, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := mustItem(t, "1", "Weekly Review", "", "", nil, testNow.Add(-tt.age))
			if got := s.Score(&it, "weekly", false, testNow); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorer_NoRecencyWithoutMatch(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	fresh := mustItem(t, "1", "Weekly Review", "", "", nil, testNow)

	if got := s.Score(&fresh, "unrelated", false, testNow); got != 0 {
		t.Errorf("Score() = %v, want 0", got)
	}
	if got := s.Score(&fresh, "", false, testNow); got != 0 {
		t.Errorf("Score(empty) = %v, want 0", got)
	}
}

func TestScorer_FuzzyFloor(t *testing.T) {
	it := mustItem(t, "1", "JavaScript Closures", "", "", nil, oldDate)

	s := NewScorer(DefaultScoringConfig())
	if score, ok := s.Rank(&it, "javascrpt", false, testNow); ok {
		t.Errorf("fuzzy-only match ranked with score %v, want excluded", score)
	}

	cfg := DefaultScoringConfig()
	cfg.FuzzyFloor = 1
	lenient := NewScorer(cfg)
	score, ok := lenient.Rank(&it, "javascrpt", false, testNow)
	if !ok {
		t.Fatal("positive floor must keep fuzzy-only matches")
	}
	if score != 1 {
		t.Errorf("score = %v, want fuzzy floor 1", score)
	}
}

func TestScorer_CaseSensitive(t *testing.T) {
	s := NewScorer(DefaultScoringConfig())
	it := mustItem(t, "1", "React Hooks", "", "", nil, oldDate)

	if got := s.Score(&it, "react", true, testNow); got != 0 {
		t.Errorf("case-sensitive lower query scored %v, want 0", got)
	}
	if got := s.Score(&it, "React", true, testNow); got != 50 {
		t.Errorf("case-sensitive exact-case query scored %v, want 50", got)
	}
}
