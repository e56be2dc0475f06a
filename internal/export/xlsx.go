package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

// XLSX renders an analysis result as a two-sheet workbook: a summary sheet
// and a topic matrix, topics ordered the same way as the markdown export.
func XLSX(result *domain.AnalysisResult, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()

	const summarySheet = "Summary"
	const topicsSheet = "Topics"

	// The default sheet becomes the summary.
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(topicsSheet); err != nil {
		return nil, fmt.Errorf("create topics sheet: %w", err)
	}

	summaryRows := [][]any{
		{"Generated", generatedAt.UTC().Format("2006-01-02 15:04 UTC")},
		{"Total topics", result.Summary.TotalTopics},
		{"High priority", result.Summary.HighPriorityCount},
		{"Quick wins", result.Summary.LowEffortHighReward},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write summary row: %w", err)
		}
	}

	headers := []any{"Topic", "Priority", "Confidence", "Effort", "Reward", "Past Paper Appearances", "Key Concepts", "Quick Win"}
	if err := f.SetSheetRow(topicsSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write topic headers: %w", err)
	}

	for i, topic := range sortedTopics(result.Topics) {
		quickWin := ""
		if topic.QuickWin() {
			quickWin = "Yes"
		}
		row := []any{
			topic.Name,
			string(priorityOf(topic)),
			topic.Confidence,
			string(topic.Effort),
			string(topic.Reward),
			topic.Frequency,
			strings.Join(topic.KeyConcepts, ", "),
			quickWin,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(topicsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write topic row: %w", err)
		}
	}

	_ = f.SetColWidth(topicsSheet, "A", "A", 32)
	_ = f.SetColWidth(topicsSheet, "B", "F", 14)
	_ = f.SetColWidth(topicsSheet, "G", "G", 48)

	index, err := f.GetSheetIndex(topicsSheet)
	if err != nil {
		return nil, fmt.Errorf("locate topics sheet: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
