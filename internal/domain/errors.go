package domain

import "errors"

var (
	ErrUnsupportedFormat    = errors.New("unsupported document format")
	ErrCorruptInput         = errors.New("input bytes cannot be parsed as the declared format")
	ErrNoTextRecovered      = errors.New("no text recoverable from document")
	ErrPolicyNotFound       = errors.New("policy rule not found for insurer and plan")
	ErrInsurerNotFound      = errors.New("insurer not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationBusy     = errors.New("conversation has a turn in flight")
	ErrOCRUnavailable       = errors.New("ocr capability unavailable")
	ErrLLMUnavailable       = errors.New("llm capability unavailable")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrEmptyMessage         = errors.New("message content is empty")
)
