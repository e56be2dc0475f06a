package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

// Markdown renders an analysis result as a study plan document. The output is
// deterministic for a given result and timestamp, so repeated exports of the
// same job are byte-identical.
func Markdown(result *domain.AnalysisResult, generatedAt time.Time) string {
	topics := sortedTopics(result.Topics)

	var b strings.Builder
	b.WriteString("# Exam Priority Matrix\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.UTC().Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total topics: %d\n", result.Summary.TotalTopics)
	fmt.Fprintf(&b, "- High priority: %d\n", result.Summary.HighPriorityCount)
	fmt.Fprintf(&b, "- Quick wins (low effort, high reward): %d\n\n", result.Summary.LowEffortHighReward)

	b.WriteString("## Topics\n\n")
	for i, topic := range topics {
		name := topic.Name
		if topic.QuickWin() {
			name += " ⚡"
		}
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, name)
		fmt.Fprintf(&b, "- Priority: %s\n", priorityOf(topic))
		fmt.Fprintf(&b, "- Confidence: %d%%\n", topic.Confidence)
		fmt.Fprintf(&b, "- Effort: %s\n", topic.Effort)
		fmt.Fprintf(&b, "- Reward: %s\n", topic.Reward)
		fmt.Fprintf(&b, "- Past paper appearances: %d\n", topic.Frequency)
		if len(topic.KeyConcepts) > 0 {
			fmt.Fprintf(&b, "- Key concepts: %s\n", strings.Join(topic.KeyConcepts, ", "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// sortedTopics orders by confidence descending, name ascending as the tie
// break, without mutating the input slice.
func sortedTopics(topics []domain.Topic) []domain.Topic {
	out := append([]domain.Topic(nil), topics...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func priorityOf(topic domain.Topic) domain.Level {
	if topic.Priority != "" {
		return topic.Priority
	}
	return domain.DerivePriority(topic.Confidence)
}
