package heuristic

import (
	"strings"
	"testing"
)

func TestDensityCheckAcademicSeed(t *testing.T) {
	engine := NewEngine()

	got := engine.DensityCheck("syllabus unit marks exam exam exam")
	if !got.Passed {
		t.Fatalf("expected academic seed text to pass, got %+v", got)
	}
	if got.DistinctKeywords < 4 {
		t.Fatalf("expected at least 4 distinct keywords, got %d", got.DistinctKeywords)
	}
	if got.TotalOccurrences < 6 {
		t.Fatalf("expected at least 6 total occurrences, got %d", got.TotalOccurrences)
	}
}

func TestDensityCheckRejectsNonAcademicText(t *testing.T) {
	engine := NewEngine()

	got := engine.DensityCheck("total amount due: $42.00 thank you for riding")
	if got.Passed {
		t.Fatalf("expected receipt text to fail, got %+v", got)
	}
	if got.DistinctKeywords != 0 {
		t.Fatalf("expected 0 distinct keywords, got %d (%+v)", got.DistinctKeywords, got)
	}
}

func TestDensityCheckEmptyText(t *testing.T) {
	engine := NewEngine()

	got := engine.DensityCheck("")
	if got.Passed {
		t.Fatalf("empty text must not pass")
	}
	if got.DensityScore != 0 {
		t.Fatalf("expected zero density for empty text, got %f", got.DensityScore)
	}

	// Whitespace-only text must not divide by zero either.
	got = engine.DensityCheck("   \n\t  ")
	if got.Passed || got.DensityScore != 0 {
		t.Fatalf("whitespace-only text must score zero, got %+v", got)
	}
}

func TestDensityCheckIsDeterministic(t *testing.T) {
	engine := NewEngine()
	text := "course outline for semester one, exam marks and unit credits"

	first := engine.DensityCheck(text)
	second := engine.DensityCheck(text)
	if first != second {
		t.Fatalf("density check not deterministic: %+v vs %+v", first, second)
	}
}

func TestDensityCheckCapsAtHundred(t *testing.T) {
	engine := NewEngine()

	got := engine.DensityCheck("exam examination")
	if got.DensityScore > 100 {
		t.Fatalf("density must be capped at 100, got %f", got.DensityScore)
	}
}

func TestQuickCheckOnlyInspectsPrefix(t *testing.T) {
	engine := NewEngine()
	text := strings.Repeat("lorem ipsum dolor sit amet ", 200) + "syllabus exam marks semester"

	if engine.QuickCheck(text, 1000, 2) {
		t.Fatalf("keywords beyond the prefix window must not count")
	}
	if !engine.QuickCheck(text, len(text), 2) {
		t.Fatalf("full-window check should find the keywords")
	}
}

func TestQuickCheckCaseInsensitive(t *testing.T) {
	engine := NewEngine()

	if !engine.QuickCheck("SYLLABUS for the Spring SEMESTER", 1500, 2) {
		t.Fatalf("matching must be case-insensitive")
	}
}

func TestCountDistinctKeywords(t *testing.T) {
	engine := NewEngine()

	count, matched := engine.CountDistinctKeywords("syllabus with exam questions")
	if count != len(matched) {
		t.Fatalf("count %d disagrees with matched set %v", count, matched)
	}
	if count < 3 {
		t.Fatalf("expected syllabus, exam and question to match, got %v", matched)
	}
}
