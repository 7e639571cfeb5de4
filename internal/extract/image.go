package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"claimlens/internal/domain"
)

// extractImage routes directly to the OCR capability; no fallback exists for
// raster input.
func (p *Pipeline) extractImage(ctx context.Context, data []byte) (*domain.ExtractedDocument, error) {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("not an image (%s): %w", contentType, domain.ErrCorruptInput)
	}

	text, err := p.ocr.RecognizeImage(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("image ocr: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("image: %w", domain.ErrNoTextRecovered)
	}

	return &domain.ExtractedDocument{
		SourceFormat: domain.SourceImage,
		RawText:      strings.TrimSpace(text),
		Method:       domain.MethodOCRVision,
		Confidence:   domain.ConfidenceHigh,
	}, nil
}
