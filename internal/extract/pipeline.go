// Package extract converts uploaded bill files into normalized text plus
// extraction metadata. Page- and row-level failures are recovered locally and
// reported as warnings; extraction fails outright only when zero text is
// recoverable from the whole document.
package extract

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"claimlens/internal/domain"
	"claimlens/internal/port"
)

// Config bounds the pipeline's work per document.
type Config struct {
	// MinPDFTextChars is the structured-extraction threshold: below it a PDF
	// is treated as scanned and routed through OCR.
	MinPDFTextChars int
	MaxPages        int
	MaxRows         int
	Concurrency     int
}

func (c Config) withDefaults() Config {
	if c.MinPDFTextChars <= 0 {
		c.MinPDFTextChars = 80
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 50
	}
	if c.MaxRows <= 0 {
		c.MaxRows = 2000
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	return c
}

// Pipeline is the format-aware text recovery pipeline.
type Pipeline struct {
	ocr port.VisionOCR
	cfg Config
}

// New creates a Pipeline backed by the given OCR capability.
func New(ocr port.VisionOCR, cfg Config) *Pipeline {
	return &Pipeline{ocr: ocr, cfg: cfg.withDefaults()}
}

// Extract recovers normalized text from fileBytes according to the declared
// format. It fails with domain.ErrUnsupportedFormat for unknown formats,
// domain.ErrCorruptInput when the bytes cannot be parsed as that format at
// all, and domain.ErrNoTextRecovered when parsing succeeds but no text is
// recoverable from any page, row, or paragraph.
func (p *Pipeline) Extract(ctx context.Context, fileBytes []byte, format domain.SourceFormat) (*domain.ExtractedDocument, error) {
	if len(fileBytes) == 0 {
		return nil, fmt.Errorf("empty input: %w", domain.ErrCorruptInput)
	}
	switch format {
	case domain.SourcePDF:
		return p.extractPDF(ctx, fileBytes)
	case domain.SourceImage:
		return p.extractImage(ctx, fileBytes)
	case domain.SourceCSV:
		return p.extractCSV(fileBytes)
	case domain.SourceDOCX:
		return p.extractDOCX(fileBytes)
	}
	return nil, fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat)
}

// forEachIndexed fans work out over n indices with bounded concurrency and
// merges results by stable index order, never by completion order, so output
// is deterministic regardless of worker scheduling.
func (p *Pipeline) forEachIndexed(ctx context.Context, n int, fn func(ctx context.Context, i int) (string, error)) ([]string, []error) {
	results := make([]string, n)
	errs := make([]error, n)

	sem := make(chan struct{}, p.cfg.Concurrency)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // release
			results[i], errs[i] = fn(ctx, i)
		}(i)
	}
	wg.Wait()
	return results, errs
}

// joinNonEmpty concatenates parts in order with the separator, skipping
// empties.
func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}
