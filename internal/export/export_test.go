package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Topics: []domain.Topic{
			{
				Name:        "Dynamic Programming",
				Confidence:  65,
				Effort:      domain.LevelHigh,
				Reward:      domain.LevelHigh,
				Frequency:   3,
				KeyConcepts: []string{"Memoization", "Tabulation"},
				Priority:    domain.LevelMedium,
			},
			{
				Name:        "Graph Traversal",
				Confidence:  90,
				Effort:      domain.LevelLow,
				Reward:      domain.LevelHigh,
				Frequency:   5,
				KeyConcepts: []string{"BFS", "DFS"},
			},
		},
		Summary: domain.AnalysisSummary{
			TotalTopics:         2,
			HighPriorityCount:   1,
			LowEffortHighReward: 1,
		},
	}
}

func TestMarkdownOrdersTopicsByConfidence(t *testing.T) {
	md := Markdown(sampleResult(), time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))

	graphs := strings.Index(md, "Graph Traversal")
	dp := strings.Index(md, "Dynamic Programming")
	if graphs < 0 || dp < 0 {
		t.Fatalf("missing topic sections:\n%s", md)
	}
	if graphs > dp {
		t.Fatalf("expected the higher-confidence topic first:\n%s", md)
	}
	if !strings.Contains(md, "Generated: 2026-03-14 09:30 UTC") {
		t.Fatalf("missing timestamp:\n%s", md)
	}
	if !strings.Contains(md, "- Quick wins (low effort, high reward): 1") {
		t.Fatalf("missing summary line:\n%s", md)
	}
}

func TestMarkdownMarksQuickWinsAndDerivesPriority(t *testing.T) {
	md := Markdown(sampleResult(), time.Now())

	if !strings.Contains(md, "Graph Traversal ⚡") {
		t.Fatalf("low-effort high-reward topic not marked:\n%s", md)
	}
	if strings.Contains(md, "Dynamic Programming ⚡") {
		t.Fatalf("high-effort topic must not be marked:\n%s", md)
	}
	// Graph Traversal carries no explicit priority; 90 derives High.
	if !strings.Contains(md, "- Priority: High") {
		t.Fatalf("derived priority missing:\n%s", md)
	}
}

func TestMarkdownIsDeterministic(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	first := Markdown(sampleResult(), at)
	second := Markdown(sampleResult(), at)
	if first != second {
		t.Fatalf("repeated export produced different output")
	}
}

func TestXLSXRoundTrips(t *testing.T) {
	data, err := XLSX(sampleResult(), time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Topics")
	if err != nil {
		t.Fatalf("read topics sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus two topics, got %d rows", len(rows))
	}
	if rows[1][0] != "Graph Traversal" {
		t.Fatalf("expected the higher-confidence topic first, got %q", rows[1][0])
	}
	if rows[1][7] != "Yes" {
		t.Fatalf("quick win column not set: %v", rows[1])
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("read summary sheet: %v", err)
	}
	if len(summary) != 4 || summary[1][1] != "2" {
		t.Fatalf("unexpected summary sheet: %v", summary)
	}
}
