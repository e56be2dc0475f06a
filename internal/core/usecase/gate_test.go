package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

type extractorFake struct {
	text  string
	err   error
	calls int
}

func (f *extractorFake) Extract(context.Context, *domain.UploadedDocument, int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type screenFake struct {
	quick   bool
	density domain.KeywordAssessment
}

func (f *screenFake) QuickCheck(string, int, int) bool {
	return f.quick
}

func (f *screenFake) DensityCheck(string) domain.KeywordAssessment {
	return f.density
}

func pdfDoc(name string) *domain.UploadedDocument {
	return &domain.UploadedDocument{
		Filename: name,
		MimeType: "application/pdf",
		Content:  []byte("%PDF-1.7 fake"),
	}
}

func TestGateIgnoresNonPDFExtension(t *testing.T) {
	extractor := &extractorFake{text: "syllabus"}
	uc := NewGateUseCase(extractor, &screenFake{quick: true}, 0, 0)

	decision := uc.CheckFile(context.Background(), pdfDoc("notes.docx"))
	if decision.Outcome != domain.GateIgnored {
		t.Fatalf("expected ignored outcome, got %+v", decision)
	}
	if extractor.calls != 0 {
		t.Fatalf("ignored files must not be extracted")
	}
}

func TestGateAcceptsOnQuickCheckPass(t *testing.T) {
	uc := NewGateUseCase(&extractorFake{text: "syllabus exam marks"}, &screenFake{quick: true}, 0, 0)

	decision := uc.CheckFile(context.Background(), pdfDoc("syllabus.PDF"))
	if decision.Outcome != domain.GateAccepted {
		t.Fatalf("expected accepted, got %+v", decision)
	}
}

func TestGateWarnsOnQuickCheckFailure(t *testing.T) {
	uc := NewGateUseCase(&extractorFake{text: "the quick brown fox"}, &screenFake{quick: false}, 0, 0)

	decision := uc.CheckFile(context.Background(), pdfDoc("mystery.pdf"))
	if decision.Outcome != domain.GateWarned {
		t.Fatalf("expected warned, got %+v", decision)
	}
	if decision.Reason == "" {
		t.Fatalf("warned decision must carry a reason for the user")
	}
}

func TestGateFailsOpenOnExtractionError(t *testing.T) {
	extractor := &extractorFake{err: domain.WrapError(domain.ErrExtraction, "decode pdf", errors.New("image-only pages"))}
	uc := NewGateUseCase(extractor, &screenFake{quick: false}, 0, 0)

	decision := uc.CheckFile(context.Background(), pdfDoc("scanned.pdf"))
	if decision.Outcome != domain.GateAccepted {
		t.Fatalf("extraction failure must fail open, got %+v", decision)
	}
}
