package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"claimlens/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrPolicyNotFound, http.StatusNotFound, "POLICY_NOT_FOUND"},
		{domain.ErrInsurerNotFound, http.StatusNotFound, "INSURER_NOT_FOUND"},
		{domain.ErrConversationNotFound, http.StatusNotFound, "CONVERSATION_NOT_FOUND"},
		{domain.ErrConversationBusy, http.StatusConflict, "CONVERSATION_BUSY"},
		{domain.ErrUnsupportedFormat, http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{domain.ErrCorruptInput, http.StatusBadRequest, "CORRUPT_INPUT"},
		{domain.ErrNoTextRecovered, http.StatusUnprocessableEntity, "NO_TEXT_RECOVERED"},
		{domain.ErrEmptyMessage, http.StatusBadRequest, "EMPTY_MESSAGE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrOCRUnavailable, http.StatusBadGateway, "OCR_UNAVAILABLE"},
		{domain.ErrLLMUnavailable, http.StatusBadGateway, "LLM_UNAVAILABLE"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		status, code, _ := MapDomainError(tc.err)
		assert.Equal(t, tc.wantStatus, status, "error %v", tc.err)
		assert.Equal(t, tc.wantCode, code, "error %v", tc.err)
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("policy lookup x/y: %w", domain.ErrPolicyNotFound)
	status, code, _ := MapDomainError(wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "POLICY_NOT_FOUND", code)
}
