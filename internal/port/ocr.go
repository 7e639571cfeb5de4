package port

import "context"

// VisionOCR abstracts the external OCR capability. Implementations recover
// plain text from image bytes or from a single page of a PDF.
type VisionOCR interface {
	RecognizeImage(ctx context.Context, imageBytes []byte, contentType string) (string, error)
	RecognizePDFPage(ctx context.Context, pdfBytes []byte, page int) (string, error)
}
