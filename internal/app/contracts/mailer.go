package contracts

import (
	"context"
	"rehab-service/internal/pkg/dto/requests"
)

// MailerService queues outbound email; delivery happens in the email worker.
type MailerService interface {
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
}

type SMTPService interface {
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
}
