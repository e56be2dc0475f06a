package domain

// DocumentSlot names the two inputs of an analysis run.
type DocumentSlot string

const (
	SlotSyllabus   DocumentSlot = "syllabus"
	SlotPastPapers DocumentSlot = "past_papers"
)

// UploadedDocument is an in-memory uploaded file. It is owned by the HTTP
// layer and passed by reference through the pipeline, never mutated.
type UploadedDocument struct {
	Filename string
	MimeType string
	Content  []byte
}

type GateOutcome string

const (
	// GateAccepted: the file may be used as-is.
	GateAccepted GateOutcome = "accepted"
	// GateWarned: the quick check failed; the client may override.
	GateWarned GateOutcome = "warned"
	// GateIgnored: wrong file type; the file is dropped without an error.
	GateIgnored GateOutcome = "ignored"
)

// GateDecision is the result of the soft upload gate for one file.
type GateDecision struct {
	Outcome GateOutcome `json:"outcome"`
	Reason  string      `json:"reason,omitempty"`
}

// KeywordAssessment is the outcome of the academic-keyword density check.
// Passed is a deterministic function of the other fields and fixed thresholds.
type KeywordAssessment struct {
	DistinctKeywords int     `json:"distinct_keywords"`
	TotalOccurrences int     `json:"total_occurrences"`
	DensityScore     float64 `json:"density_score"`
	Passed           bool    `json:"passed"`
}

// ProgressFunc receives human-readable stage labels during an analysis run.
// Labels are advisory text for display, not a machine contract.
type ProgressFunc func(stage string)
