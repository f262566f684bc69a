package contracts

import (
	"context"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/dto/requests"
)

type BookingStatus string

const (
	BookingStatusSynced        BookingStatus = "synced"
	BookingStatusQueuedLocally BookingStatus = "queued_locally"
)

// BookingOutcome is the caller-visible result of a resilient submission.
// QueuedLocally is not an error: the UI presents it as accepted-will-sync.
type BookingOutcome struct {
	Status  BookingStatus
	Record  *models.Appointment
	Entry   *models.PendingSyncEntry
	Warning string
}

type SubmissionClient interface {
	Submit(ctx context.Context, request *requests.CreateAppointment, attachments []UploadedFile) (*BookingOutcome, error)
}

// AppointmentAPIClient is the client-side transport to the appointment
// store's HTTP surface.
type AppointmentAPIClient interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment, attachments []UploadedFile) (*models.Appointment, error)
}

// PendingSyncQueue is the client-local durable queue of unacknowledged
// bookings. Implementations must preserve insertion order.
type PendingSyncQueue interface {
	Append(entry *models.PendingSyncEntry) error
	List() ([]models.PendingSyncEntry, error)
	Update(entry *models.PendingSyncEntry) error
	Remove(localID string) error
}
