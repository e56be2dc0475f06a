package pdftext

import (
	"context"
	"strings"
	"testing"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

func TestExtractRejectsGarbageAsExtractionFailure(t *testing.T) {
	extractor := New()

	doc := &domain.UploadedDocument{
		Filename: "notes.pdf",
		MimeType: "application/pdf",
		Content:  []byte("this is not a pdf at all"),
	}
	_, err := extractor.Extract(context.Background(), doc, 2000)
	if err == nil {
		t.Fatalf("expected an error for non-PDF bytes")
	}
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction-failure kind, got %v", err)
	}
}

func TestExtractRejectsEmptyDocument(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), &domain.UploadedDocument{Filename: "empty.pdf"}, 2000)
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction-failure kind for empty content, got %v", err)
	}
}

func TestExtractZeroBudgetReturnsEmpty(t *testing.T) {
	extractor := New()

	text, err := extractor.Extract(context.Background(), &domain.UploadedDocument{Content: []byte("x")}, 0)
	if err != nil {
		t.Fatalf("zero budget must not fail: %v", err)
	}
	if text != "" {
		t.Fatalf("zero budget must yield empty text, got %q", text)
	}
}

func TestExtractSurvivesTruncatedHeader(t *testing.T) {
	extractor := New()

	// A real-looking header with a broken body must classify as extraction
	// failure, not crash, even if the decoder panics internally.
	doc := &domain.UploadedDocument{
		Content: []byte("%PDF-1.7\n" + strings.Repeat("garbage ", 64)),
	}
	_, err := extractor.Extract(context.Background(), doc, 2000)
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction-failure kind, got %v", err)
	}
}
