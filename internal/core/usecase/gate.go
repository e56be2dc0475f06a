package usecase

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
	"github.com/Piyush-6177/Exam-Pilot/internal/core/ports"
)

const (
	defaultGatePrefixChars = 1500
	defaultGateMinDistinct = 2
)

// GateUseCase is the soft, per-file upload gate: a cheap keyword check on a
// short text prefix, run at file-selection time. It can warn but never block;
// the caller decides whether to override a warning.
type GateUseCase struct {
	extractor   ports.TextExtractor
	screen      ports.AcademicScreen
	prefixChars int
	minDistinct int
}

func NewGateUseCase(extractor ports.TextExtractor, screen ports.AcademicScreen, prefixChars, minDistinct int) *GateUseCase {
	if prefixChars <= 0 {
		prefixChars = defaultGatePrefixChars
	}
	if minDistinct <= 0 {
		minDistinct = defaultGateMinDistinct
	}
	return &GateUseCase{
		extractor:   extractor,
		screen:      screen,
		prefixChars: prefixChars,
		minDistinct: minDistinct,
	}
}

// CheckFile returns one of three outcomes: ignored (wrong file type, dropped
// without an error), accepted, or warned (the caller may still accept the
// file). An extraction failure is fail-open: the file is accepted and the
// failure only logged, so a scanned PDF never locks the user out.
func (uc *GateUseCase) CheckFile(ctx context.Context, doc *domain.UploadedDocument) domain.GateDecision {
	if !strings.EqualFold(filepath.Ext(doc.Filename), ".pdf") {
		return domain.GateDecision{Outcome: domain.GateIgnored}
	}

	sample, err := uc.extractor.Extract(ctx, doc, uc.prefixChars)
	if err != nil {
		slog.Warn("upload_gate_extraction_failed",
			"filename", doc.Filename,
			"error", err,
		)
		return domain.GateDecision{Outcome: domain.GateAccepted}
	}

	if uc.screen.QuickCheck(sample, uc.prefixChars, uc.minDistinct) {
		return domain.GateDecision{Outcome: domain.GateAccepted}
	}

	return domain.GateDecision{
		Outcome: domain.GateWarned,
		Reason:  "This file doesn't look like academic material. You can use it anyway or pick a different file.",
	}
}
