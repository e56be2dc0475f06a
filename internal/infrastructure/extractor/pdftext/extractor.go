// Package pdftext extracts a bounded plain-text prefix from an uploaded PDF's
// embedded text layer. It has no fallback for scanned or image-only pages;
// callers own the recovery policy when extraction fails.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract decodes the document's pages in order, concatenating each page's
// visible text followed by a newline, and stops once maxChars characters have
// accumulated. The result is truncated to exactly maxChars. Any decoder fault
// is reported as a domain.ErrExtraction; the decoder is also known to panic
// on some malformed files, which is folded into the same error kind.
func (e *Extractor) Extract(ctx context.Context, doc *domain.UploadedDocument, maxChars int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.WrapError(domain.ErrExtraction, "decode pdf", fmt.Errorf("decoder panic: %v", r))
		}
	}()

	if maxChars <= 0 {
		return "", nil
	}
	if doc == nil || len(doc.Content) == 0 {
		return "", domain.WrapError(domain.ErrExtraction, "decode pdf", errors.New("empty document"))
	}

	reader, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "decode pdf", err)
	}

	var builder strings.Builder
	charCount := 0
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		if err := ctx.Err(); err != nil {
			return "", domain.WrapError(domain.ErrExtraction, "decode pdf", err)
		}

		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable page; keep going with the rest.
			continue
		}

		builder.WriteString(pageText)
		builder.WriteString("\n")
		charCount += utf8.RuneCountInString(pageText) + 1
		if charCount >= maxChars {
			break
		}
	}

	out := builder.String()
	if strings.TrimSpace(out) == "" {
		return "", domain.WrapError(domain.ErrExtraction, "decode pdf", errors.New("no usable text layer"))
	}
	if runes := []rune(out); len(runes) > maxChars {
		out = string(runes[:maxChars])
	}
	return out, nil
}
