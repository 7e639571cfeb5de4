package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"claimlens/internal/domain"
)

// extractPDF attempts structured (layout-aware) text extraction across all
// pages, falling back to page-by-page OCR when the structured pass looks like
// a scanned document: total character count under the threshold, or more than
// half the pages empty.
func (p *Pipeline) extractPDF(ctx context.Context, data []byte) (*domain.ExtractedDocument, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", domain.ErrCorruptInput)
	}

	pageCount := reader.NumPage()
	if pageCount == 0 {
		return nil, fmt.Errorf("pdf has no pages: %w", domain.ErrCorruptInput)
	}

	var warnings []string
	if pageCount > p.cfg.MaxPages {
		warnings = append(warnings, fmt.Sprintf("document has %d pages, processing first %d", pageCount, p.cfg.MaxPages))
		pageCount = p.cfg.MaxPages
	}

	// Structured pass, parallel per page, merged by page order.
	pageTexts, pageErrs := p.forEachIndexed(ctx, pageCount, func(_ context.Context, i int) (string, error) {
		page := reader.Page(i + 1) // 1-based
		if page.V.IsNull() {
			return "", nil
		}
		text, perr := page.GetPlainText(nil)
		if perr != nil {
			return "", perr
		}
		return text, nil
	})

	totalChars := 0
	emptyPages := 0
	for i := range pageTexts {
		if pageErrs[i] != nil {
			log.Printf("extract.Pipeline: structured extraction failed on page %d: %v", i+1, pageErrs[i])
			pageTexts[i] = ""
		}
		t := strings.TrimSpace(pageTexts[i])
		totalChars += len(t)
		if t == "" {
			emptyPages++
		}
	}

	if totalChars >= p.cfg.MinPDFTextChars && emptyPages*2 <= pageCount {
		return &domain.ExtractedDocument{
			SourceFormat: domain.SourcePDF,
			RawText:      joinNonEmpty(pageTexts, "\n\n"),
			Method:       domain.MethodStructured,
			Warnings:     warnings,
			Confidence:   confidenceFor(warnings),
		}, nil
	}

	// Scanned or image-only PDF: OCR each page, concatenate in page order.
	warnings = append(warnings, fmt.Sprintf(
		"structured extraction yielded %d chars across %d pages (%d empty), falling back to OCR",
		totalChars, pageCount, emptyPages))

	ocrTexts, ocrErrs := p.forEachIndexed(ctx, pageCount, func(ctx context.Context, i int) (string, error) {
		return p.ocr.RecognizePDFPage(ctx, data, i+1)
	})
	for i := range ocrTexts {
		if ocrErrs[i] != nil {
			warnings = append(warnings, fmt.Sprintf("ocr failed on page %d: %v", i+1, ocrErrs[i]))
			// Keep whatever the structured pass recovered for this page.
			ocrTexts[i] = pageTexts[i]
		}
	}

	text := joinNonEmpty(ocrTexts, "\n\n")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("pdf: %w", domain.ErrNoTextRecovered)
	}
	return &domain.ExtractedDocument{
		SourceFormat: domain.SourcePDF,
		RawText:      text,
		Method:       domain.MethodOCRVision,
		Warnings:     warnings,
		Confidence:   domain.ConfidenceDegraded,
	}, nil
}

func confidenceFor(warnings []string) domain.Confidence {
	if len(warnings) > 0 {
		return domain.ConfidenceDegraded
	}
	return domain.ConfidenceHigh
}
