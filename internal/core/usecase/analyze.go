package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
	"github.com/Piyush-6177/Exam-Pilot/internal/core/interpret"
	"github.com/Piyush-6177/Exam-Pilot/internal/core/ports"
)

const (
	defaultPerFileSampleChars  = 4000
	defaultCombinedSampleChars = 8000
	defaultFallbackDelay       = 2 * time.Second
	defaultElapsedTick         = 10 * time.Second
)

// AnalyzeOptions are the orchestrator's tunables; zero values fall back to
// the defaults above.
type AnalyzeOptions struct {
	PerFileSampleChars  int
	CombinedSampleChars int
	FallbackDelay       time.Duration
	ElapsedTick         time.Duration
}

func (o AnalyzeOptions) normalize() AnalyzeOptions {
	if o.PerFileSampleChars <= 0 {
		o.PerFileSampleChars = defaultPerFileSampleChars
	}
	if o.CombinedSampleChars <= 0 {
		o.CombinedSampleChars = defaultCombinedSampleChars
	}
	if o.FallbackDelay <= 0 {
		o.FallbackDelay = defaultFallbackDelay
	}
	if o.ElapsedTick <= 0 {
		o.ElapsedTick = defaultElapsedTick
	}
	return o
}

// AnalyzeUseCase is the strategy orchestrator: the hard keyword gate followed
// by the model fallback sequence, with every failure classified into the
// domain taxonomy before it leaves this type.
type AnalyzeUseCase struct {
	extractor ports.TextExtractor
	screen    ports.AcademicScreen
	invoker   ports.ModelInvoker
	models    []domain.ModelConfig
	observer  ports.PipelineObserver
	opts      AnalyzeOptions
}

func NewAnalyzeUseCase(
	extractor ports.TextExtractor,
	screen ports.AcademicScreen,
	invoker ports.ModelInvoker,
	models []domain.ModelConfig,
	observer ports.PipelineObserver,
	opts AnalyzeOptions,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		extractor: extractor,
		screen:    screen,
		invoker:   invoker,
		models:    models,
		observer:  observer,
		opts:      opts.normalize(),
	}
}

// Run validates both documents against the hard gate and then walks the model
// fallback list. A transient exhaustion on one model moves to the next after
// a short delay; a fatal failure aborts the whole run; an exhausted list
// surfaces as all-models-unavailable.
func (uc *AnalyzeUseCase) Run(
	ctx context.Context,
	syllabus, pastPapers *domain.UploadedDocument,
	progress domain.ProgressFunc,
) (*domain.AnalysisResult, error) {
	if isEmptyDocument(syllabus) || isEmptyDocument(pastPapers) {
		return nil, fmt.Errorf("%w: syllabus and past papers are both required", domain.ErrMissingInput)
	}
	if len(uc.models) == 0 {
		// Never fall through the fallback loop with nothing to try.
		return nil, fmt.Errorf("%w: no models configured", domain.ErrAllModelsUnavailable)
	}
	report := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}

	report("Extracting PDFs")
	syllabusText, papersText := uc.extractBoth(ctx, syllabus, pastPapers)

	combined := truncateRunes(syllabusText+"\n"+papersText, uc.opts.CombinedSampleChars)
	assessment := uc.screen.DensityCheck(combined)
	if !assessment.Passed {
		// Reject before spending a model call.
		if uc.observer != nil {
			uc.observer.ObserveGateRejection("density")
		}
		slog.Info("density_gate_rejected",
			"distinct_keywords", assessment.DistinctKeywords,
			"density_score", assessment.DensityScore,
		)
		return nil, &domain.InvalidDocumentError{}
	}

	req := domain.ModelRequest{
		SystemInstruction: systemInstruction,
		Prompt:            analysisPrompt,
		Attachments: []domain.Attachment{
			{MIMEType: mimeOrPDF(syllabus.MimeType), Data: syllabus.Content},
			{MIMEType: mimeOrPDF(pastPapers.MimeType), Data: pastPapers.Content},
		},
	}

	var lastErr error
	for i, model := range uc.models {
		report(fmt.Sprintf("Analyzing documents with %s...", model.Label))

		raw, err := uc.invokeModel(ctx, model, req, report)
		if err == nil {
			if uc.observer != nil {
				uc.observer.ObserveModelAttempt(model.ID, "success")
			}
			report("Generating Priority Matrix")
			return interpret.Interpret(raw)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !domain.IsKind(err, domain.ErrTemporary) {
			if uc.observer != nil {
				uc.observer.ObserveModelAttempt(model.ID, "fatal")
			}
			return nil, err
		}

		if uc.observer != nil {
			uc.observer.ObserveModelAttempt(model.ID, "transient")
		}
		lastErr = err
		if i < len(uc.models)-1 {
			if uc.observer != nil {
				uc.observer.ObserveModelFallback(model.ID)
			}
			report(fmt.Sprintf("%s is unavailable. Trying fallback model...", model.Label))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(uc.opts.FallbackDelay):
			}
		}
	}

	return nil, domain.WrapError(domain.ErrAllModelsUnavailable, "analysis", lastErr)
}

func (uc *AnalyzeUseCase) invokeModel(
	ctx context.Context,
	model domain.ModelConfig,
	req domain.ModelRequest,
	report func(string),
) (string, error) {
	ticker := newProgressTicker(uc.opts.ElapsedTick, func(elapsed time.Duration) {
		report(fmt.Sprintf("Analyzing documents with %s... (%ds elapsed)", model.Label, int(elapsed.Seconds())))
	})
	defer ticker.Stop()

	return uc.invoker.Invoke(ctx, model, req, func(nextAttempt, maxAttempts int) {
		report(fmt.Sprintf("Retrying... (Attempt %d/%d)", nextAttempt, maxAttempts))
	})
}

// extractBoth samples both files concurrently. A failed extraction degrades
// to empty text instead of aborting; the density gate downstream decides
// whether what remains is enough.
func (uc *AnalyzeUseCase) extractBoth(ctx context.Context, syllabus, pastPapers *domain.UploadedDocument) (string, string) {
	var (
		wg           sync.WaitGroup
		syllabusText string
		papersText   string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		syllabusText = uc.extractOrEmpty(ctx, syllabus, domain.SlotSyllabus)
	}()
	go func() {
		defer wg.Done()
		papersText = uc.extractOrEmpty(ctx, pastPapers, domain.SlotPastPapers)
	}()
	wg.Wait()
	return syllabusText, papersText
}

func (uc *AnalyzeUseCase) extractOrEmpty(ctx context.Context, doc *domain.UploadedDocument, slot domain.DocumentSlot) string {
	text, err := uc.extractor.Extract(ctx, doc, uc.opts.PerFileSampleChars)
	if err != nil {
		slog.Warn("analysis_extraction_failed",
			"slot", string(slot),
			"filename", doc.Filename,
			"error", err,
		)
		return ""
	}
	return text
}

func isEmptyDocument(doc *domain.UploadedDocument) bool {
	return doc == nil || len(doc.Content) == 0
}

func mimeOrPDF(mimeType string) string {
	if mimeType == "" {
		return "application/pdf"
	}
	return mimeType
}

func truncateRunes(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
