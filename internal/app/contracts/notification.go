package contracts

import (
	"context"
	"telecare-service/internal/app/models"
)

// DispatchResult counts how many per-recipient tasks made it into the queue.
// Enqueue failures are logged and counted, never propagated to the booking.
type DispatchResult struct {
	Enqueued int
	Failed   int
}

type NotificationDispatcher interface {
	Dispatch(ctx context.Context, appointment *models.Appointment) DispatchResult
}

type MailerService interface {
	SendEmail(to, subject, body string) error
}
