package domain

// Level is the three-step scale the model uses for effort, reward and priority.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Topic is one study topic produced by the model. The pipeline never
// synthesizes topics; it only derives a fallback Priority from Confidence
// when the model omitted it.
type Topic struct {
	Name        string   `json:"name"`
	Confidence  int      `json:"confidence"`
	Effort      Level    `json:"effort"`
	Reward      Level    `json:"reward"`
	Frequency   int      `json:"frequency"`
	KeyConcepts []string `json:"keyConcepts"`
	Priority    Level    `json:"priority,omitempty"`
}

// QuickWin reports whether a topic is cheap to study and pays off well.
func (t Topic) QuickWin() bool {
	return t.Effort == LevelLow && t.Reward == LevelHigh
}

// DerivePriority maps a confidence score onto the priority scale.
func DerivePriority(confidence int) Level {
	switch {
	case confidence >= 80:
		return LevelHigh
	case confidence >= 60:
		return LevelMedium
	default:
		return LevelLow
	}
}

type AnalysisSummary struct {
	TotalTopics         int `json:"totalTopics"`
	HighPriorityCount   int `json:"highPriorityCount"`
	LowEffortHighReward int `json:"lowEffortHighReward"`
}

// AnalysisResult is created once per successful run and never mutated after.
type AnalysisResult struct {
	Topics  []Topic         `json:"topics"`
	Summary AnalysisSummary `json:"summary"`
}

// GenerationParams are the sampling parameters for one model of the fallback
// list.
type GenerationParams struct {
	Temperature     float32 `yaml:"temperature" json:"temperature"`
	TopP            float32 `yaml:"top_p" json:"top_p"`
	TopK            float32 `yaml:"top_k" json:"top_k"`
	MaxOutputTokens int32   `yaml:"max_output_tokens" json:"max_output_tokens"`
}

// ModelConfig is one entry of the ordered fallback list: the provider model
// identifier, the label shown in progress messages, and sampling parameters.
type ModelConfig struct {
	ID     string           `yaml:"id" json:"id"`
	Label  string           `yaml:"label" json:"label"`
	Params GenerationParams `yaml:"params" json:"params"`
}

// Attachment is one inline binary payload of a generation request.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// ModelRequest is a single generation request: a fixed system instruction,
// a short user prompt and the document attachments.
type ModelRequest struct {
	SystemInstruction string
	Prompt            string
	Attachments       []Attachment
}
