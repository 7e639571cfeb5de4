package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockVisionOCR is a mock implementation of port.VisionOCR.
type MockVisionOCR struct {
	mock.Mock
}

func (m *MockVisionOCR) RecognizeImage(ctx context.Context, imageBytes []byte, contentType string) (string, error) {
	args := m.Called(ctx, imageBytes, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockVisionOCR) RecognizePDFPage(ctx context.Context, pdfBytes []byte, page int) (string, error) {
	args := m.Called(ctx, pdfBytes, page)
	return args.String(0), args.Error(1)
}
