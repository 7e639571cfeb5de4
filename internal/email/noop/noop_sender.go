package noop

import (
	"context"
	"log"

	"claimlens/internal/port"
)

type noopSender struct{}

// NewNoopSender returns an EmailSender that only logs. Used in development
// and tests where no SES credentials exist.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendEstimateEmail(_ context.Context, toEmail, subject, _ string) error {
	log.Printf("email (noop): would send %q to %s", subject, toEmail)
	return nil
}
