package port

import "context"

// EmailSender defines the contract for sending estimate summaries by email.
type EmailSender interface {
	SendEstimateEmail(ctx context.Context, toEmail, subject, textBody string) error
}
