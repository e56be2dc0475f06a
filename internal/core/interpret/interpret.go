// Package interpret parses the model's raw answer into an AnalysisResult,
// detecting the model's explicit rejection payload along the way. It never
// fabricates topics; the only normalization applied is deriving a missing
// priority from the confidence score.
package interpret

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

// RejectionSentinel is the value of the "error" field the model returns
// instead of results when it judges the input non-academic. Trusted verbatim.
const RejectionSentinel = "INVALID_DOCUMENT"

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	detectedRe    = regexp.MustCompile(`(?i)detected:\s*([^)\n]+)`)
)

// Interpret extracts the candidate JSON from rawText (inner fenced block if
// present, full text otherwise), parses it, and returns either the analysis
// result, an InvalidDocumentError for the rejection sentinel, or
// ErrMalformedResponse when nothing parseable remains after recovery.
func Interpret(rawText string) (*domain.AnalysisResult, error) {
	candidate := rawText
	if m := fencedBlockRe.FindStringSubmatch(rawText); m != nil {
		candidate = m[1]
	}

	result, err := parse(candidate)
	if err == nil {
		return result, nil
	}
	if _, ok := domain.AsInvalidDocument(err); ok {
		return nil, err
	}

	// Best-effort recovery: the first top-level brace-delimited substring.
	// The rejection sentinel must be honored on this path too.
	if sub, ok := braceSubstring(rawText); ok && sub != strings.TrimSpace(candidate) {
		result, err = parse(sub)
		if err == nil {
			return result, nil
		}
		if _, ok := domain.AsInvalidDocument(err); ok {
			return nil, err
		}
	}

	return nil, domain.WrapError(domain.ErrMalformedResponse, "interpret model response", err)
}

func parse(text string) (*domain.AnalysisResult, error) {
	trimmed := strings.TrimSpace(text)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return nil, err
	}

	if rawSentinel, ok := probe["error"]; ok {
		var sentinel string
		if json.Unmarshal(rawSentinel, &sentinel) == nil && sentinel == RejectionSentinel {
			reason := ""
			if rawReason, ok := probe["reason"]; ok {
				_ = json.Unmarshal(rawReason, &reason)
			}
			return nil, &domain.InvalidDocumentError{DetectedType: detectedLabel(reason)}
		}
	}

	if err := validateResultShape([]byte(trimmed)); err != nil {
		return nil, err
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return nil, err
	}
	normalize(&result)
	return &result, nil
}

// detectedLabel pulls the human-readable label out of a rejection reason like
// "The first document appears to be unrelated (detected: Train Ticket)".
// Empty when the reason carries no label; the error funnel falls back to a
// generic message in that case.
func detectedLabel(reason string) string {
	m := detectedRe.FindStringSubmatch(reason)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func braceSubstring(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func normalize(result *domain.AnalysisResult) {
	for i := range result.Topics {
		topic := &result.Topics[i]
		if topic.Priority == "" {
			topic.Priority = domain.DerivePriority(topic.Confidence)
		}
		if topic.KeyConcepts == nil {
			topic.KeyConcepts = []string{}
		}
	}
	if result.Topics == nil {
		result.Topics = []domain.Topic{}
	}
}
