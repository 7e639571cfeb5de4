package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"claimlens/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrPolicyNotFound):
		return http.StatusNotFound, "POLICY_NOT_FOUND", "no policy rule for that insurer and plan"
	case errors.Is(err, domain.ErrInsurerNotFound):
		return http.StatusNotFound, "INSURER_NOT_FOUND", "insurer not found"
	case errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound, "CONVERSATION_NOT_FOUND", "conversation not found"
	case errors.Is(err, domain.ErrConversationBusy):
		return http.StatusConflict, "CONVERSATION_BUSY", "a turn is already being processed for this conversation"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported file format; allowed: pdf, jpg, png, csv, docx"
	case errors.Is(err, domain.ErrCorruptInput):
		return http.StatusBadRequest, "CORRUPT_INPUT", "the uploaded file could not be read"
	case errors.Is(err, domain.ErrNoTextRecovered):
		return http.StatusUnprocessableEntity, "NO_TEXT_RECOVERED", "no text could be recovered from the uploaded file"
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest, "EMPTY_MESSAGE", "message content is required"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrOCRUnavailable):
		return http.StatusBadGateway, "OCR_UNAVAILABLE", "text recognition service is unavailable"
	case errors.Is(err, domain.ErrLLMUnavailable):
		return http.StatusBadGateway, "LLM_UNAVAILABLE", "language model service is unavailable"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status == http.StatusInternalServerError {
		log.Printf("handler: internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	RespondError(c, status, code, msg)
}
