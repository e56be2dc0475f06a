package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
	"github.com/Piyush-6177/Exam-Pilot/internal/core/ports"
)

const (
	defaultRunTimeout    = 15 * time.Minute
	defaultMaxConcurrent = 8
)

// AnalysisJobsUseCase owns the lifecycle of analysis jobs: it starts a run in
// the background, streams progress stages into the job store, and records the
// terminal state. Once a run is started it is never cancelled from outside;
// it either completes or fails within the run timeout. Concurrent runs are
// capped; a start beyond the cap is rejected as a temporary failure.
type AnalysisJobsUseCase struct {
	jobs       ports.AnalysisJobStore
	analyze    *AnalyzeUseCase
	observer   ports.PipelineObserver
	runTimeout time.Duration
	slots      chan struct{}
}

func NewAnalysisJobsUseCase(
	jobs ports.AnalysisJobStore,
	analyze *AnalyzeUseCase,
	observer ports.PipelineObserver,
	runTimeout time.Duration,
	maxConcurrent int,
) *AnalysisJobsUseCase {
	if runTimeout <= 0 {
		runTimeout = defaultRunTimeout
	}
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &AnalysisJobsUseCase{
		jobs:       jobs,
		analyze:    analyze,
		observer:   observer,
		runTimeout: runTimeout,
		slots:      make(chan struct{}, maxConcurrent),
	}
}

// Start validates that both files are present, registers a queued job and
// launches the run in the background. The returned snapshot is what the
// client polls against.
func (uc *AnalysisJobsUseCase) Start(
	ctx context.Context,
	syllabus, pastPapers *domain.UploadedDocument,
) (*domain.AnalysisJob, error) {
	if isEmptyDocument(syllabus) || isEmptyDocument(pastPapers) {
		return nil, fmt.Errorf("%w: syllabus and past papers are both required", domain.ErrMissingInput)
	}

	// Each queued run holds both uploads in memory until it finishes, so the
	// cap applies at job creation, not at HTTP dispatch.
	select {
	case uc.slots <- struct{}{}:
	default:
		return nil, fmt.Errorf("%w: analysis capacity exhausted", domain.ErrTemporary)
	}

	job := &domain.AnalysisJob{
		ID:        uuid.NewString(),
		Status:    domain.JobQueued,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.jobs.Create(ctx, job); err != nil {
		<-uc.slots
		return nil, fmt.Errorf("create analysis job: %w", err)
	}

	// The run outlives the HTTP request; it gets its own context.
	go uc.run(job.ID, syllabus, pastPapers)

	return job, nil
}

func (uc *AnalysisJobsUseCase) Get(ctx context.Context, id string) (*domain.AnalysisJob, error) {
	return uc.jobs.Get(ctx, id)
}

func (uc *AnalysisJobsUseCase) run(id string, syllabus, pastPapers *domain.UploadedDocument) {
	defer func() { <-uc.slots }()

	ctx, cancel := context.WithTimeout(context.Background(), uc.runTimeout)
	defer cancel()

	start := time.Now()
	if err := uc.jobs.MarkRunning(ctx, id); err != nil {
		slog.Error("job_mark_running_failed", "job_id", id, "error", err)
		return
	}

	progress := func(stage string) {
		if err := uc.jobs.SetStage(ctx, id, stage); err != nil {
			slog.Warn("job_stage_update_failed", "job_id", id, "stage", stage, "error", err)
		}
	}

	result, err := uc.analyze.Run(ctx, syllabus, pastPapers, progress)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !domain.IsKind(err, domain.ErrModelTimeout) {
			// The whole-run deadline fired; record it as a timeout, not as
			// an unclassified failure.
			err = domain.WrapError(domain.ErrModelTimeout, "analysis run", err)
		}
		if uc.observer != nil {
			uc.observer.ObserveAnalysis(domain.ErrorKind(err), time.Since(start))
		}
		slog.Warn("analysis_failed",
			"job_id", id,
			"error_kind", domain.ErrorKind(err),
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
			"error", err,
		)
		if failErr := uc.jobs.Fail(ctx, id, err); failErr != nil {
			slog.Error("job_fail_update_failed", "job_id", id, "error", failErr)
		}
		return
	}

	if uc.observer != nil {
		uc.observer.ObserveAnalysis("success", time.Since(start))
	}
	slog.Info("analysis_completed",
		"job_id", id,
		"topics", len(result.Topics),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)
	if err := uc.jobs.Complete(ctx, id, result); err != nil {
		slog.Error("job_complete_update_failed", "job_id", id, "error", err)
	}
}
