// Package heuristic scores extracted document text against a fixed vocabulary
// of academic indicator terms. It is the single source of the vocabulary for
// both the soft upload gate and the hard pre-analysis gate; the two gates keep
// independent thresholds.
package heuristic

import (
	"strings"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

// vocabulary holds lowercase indicator terms matched as substrings, not whole
// words. The gates reject receipts and tickets, they do not classify
// documents.
var vocabulary = []string{
	"syllabus",
	"curriculum",
	"course",
	"semester",
	"academic",
	"unit",
	"module",
	"chapter",
	"lecture",
	"tutorial",
	"exam",
	"examination",
	"marks",
	"question",
	"answer",
	"assignment",
	"assessment",
	"grade",
	"credit",
	"subject",
	"topic",
	"university",
	"college",
	"faculty",
	"department",
	"instructor",
	"professor",
	"student",
}

const (
	// Hard-gate thresholds: at least two distinct terms and a 0.3%
	// occurrence density.
	densityMinDistinct = 2
	densityFloor       = 0.3
)

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// CountDistinctKeywords case-folds text and returns how many distinct
// vocabulary terms occur in it, together with the matched terms.
func (e *Engine) CountDistinctKeywords(text string) (int, []string) {
	lower := strings.ToLower(text)
	var matched []string
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return len(matched), matched
}

// QuickCheck inspects only the first prefixChars characters of text and
// passes iff at least minDistinct vocabulary terms occur there. Used by the
// soft, overridable upload gate.
func (e *Engine) QuickCheck(text string, prefixChars, minDistinct int) bool {
	if prefixChars > 0 {
		runes := []rune(text)
		if len(runes) > prefixChars {
			text = string(runes[:prefixChars])
		}
	}
	count, _ := e.CountDistinctKeywords(text)
	return count >= minDistinct
}

// DensityCheck counts every occurrence of every vocabulary term across the
// full text and scores the occurrence density against the word count. Used by
// the hard, non-overridable gate before any model call.
func (e *Engine) DensityCheck(text string) domain.KeywordAssessment {
	wordCount := len(strings.Fields(text))
	if wordCount == 0 {
		return domain.KeywordAssessment{}
	}

	lower := strings.ToLower(text)
	total := 0
	distinct := 0
	for _, term := range vocabulary {
		n := strings.Count(lower, term)
		if n == 0 {
			continue
		}
		distinct++
		total += n
	}

	density := 100 * float64(total) / float64(wordCount)
	if density > 100 {
		density = 100
	}

	return domain.KeywordAssessment{
		DistinctKeywords: distinct,
		TotalOccurrences: total,
		DensityScore:     density,
		Passed:           distinct >= densityMinDistinct && density >= densityFloor,
	}
}
