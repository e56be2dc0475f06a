package ports

import (
	"context"
	"time"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

// TextExtractor produces a bounded plain-text prefix of an uploaded document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.UploadedDocument, maxChars int) (string, error)
}

// AcademicScreen scores text against the academic keyword vocabulary.
type AcademicScreen interface {
	QuickCheck(text string, prefixChars, minDistinct int) bool
	DensityCheck(text string) domain.KeywordAssessment
}

// ModelInvoker performs one model call with bounded retries, backoff and a
// per-attempt timeout, reporting upcoming retries through onRetry.
type ModelInvoker interface {
	Invoke(ctx context.Context, model domain.ModelConfig, req domain.ModelRequest, onRetry func(nextAttempt, maxAttempts int)) (string, error)
	MaxAttempts() int
}

// AnalysisJobStore keeps the in-memory analysis jobs of this process.
type AnalysisJobStore interface {
	Create(ctx context.Context, job *domain.AnalysisJob) error
	Get(ctx context.Context, id string) (*domain.AnalysisJob, error)
	MarkRunning(ctx context.Context, id string) error
	SetStage(ctx context.Context, id, stage string) error
	Complete(ctx context.Context, id string, result *domain.AnalysisResult) error
	Fail(ctx context.Context, id string, cause error) error
}

// PipelineObserver receives pipeline events for metrics. Implementations must
// be safe for concurrent use.
type PipelineObserver interface {
	ObserveAnalysis(status string, duration time.Duration)
	ObserveGateRejection(gate string)
	ObserveModelAttempt(model, outcome string)
	ObserveModelFallback(model string)
}
