package bootstrap

import (
	"context"
	"fmt"

	"github.com/Piyush-6177/Exam-Pilot/internal/config"
	"github.com/Piyush-6177/Exam-Pilot/internal/core/usecase"
	"github.com/Piyush-6177/Exam-Pilot/internal/infrastructure/extractor/pdftext"
	"github.com/Piyush-6177/Exam-Pilot/internal/infrastructure/heuristic"
	"github.com/Piyush-6177/Exam-Pilot/internal/infrastructure/llm/gemini"
	"github.com/Piyush-6177/Exam-Pilot/internal/infrastructure/repository/memory"
	"github.com/Piyush-6177/Exam-Pilot/internal/infrastructure/resilience"
	"github.com/Piyush-6177/Exam-Pilot/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.Metrics

	GateUC *usecase.GateUseCase
	JobsUC *usecase.AnalysisJobsUseCase
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	client, err := gemini.New(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	resilienceCfg := resilience.DefaultConfig()
	resilienceCfg.RetryMaxAttempts = cfg.ModelMaxAttempts
	resilienceCfg.AttemptTimeout = cfg.ModelAttemptTimeout
	executor := resilience.NewExecutor(resilienceCfg)
	invoker := gemini.NewInvoker(client, executor)

	extractor := pdftext.New()
	screen := heuristic.NewEngine()
	jobStore := memory.NewJobStore(cfg.MaxCompletedJobs)

	m := metrics.New("api")
	observer := m.Observer("api")

	gateUC := usecase.NewGateUseCase(extractor, screen, cfg.GatePrefixChars, cfg.GateMinDistinct)
	analyzeUC := usecase.NewAnalyzeUseCase(extractor, screen, invoker, cfg.Models, observer, usecase.AnalyzeOptions{
		PerFileSampleChars:  cfg.PerFileSampleChars,
		CombinedSampleChars: cfg.CombinedSampleChars,
		FallbackDelay:       cfg.ModelFallbackDelay,
	})
	jobsUC := usecase.NewAnalysisJobsUseCase(jobStore, analyzeUC, observer, cfg.AnalysisTimeout, cfg.MaxConcurrentAnalyses)

	return &App{
		Config:  cfg,
		Metrics: m,
		GateUC:  gateUC,
		JobsUC:  jobsUC,
	}, nil
}
