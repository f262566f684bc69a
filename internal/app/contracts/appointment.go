package contracts

import (
	"context"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/dto/responses"
)

// UploadedFile is an in-memory attachment handed from the HTTP layer to the
// appointment usecase.
type UploadedFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

type AppointmentUsecase interface {
	// Create validates, provisions a video session best-effort, persists the
	// record and enqueues notifications. The returned warning is non-empty
	// when the booking succeeded in degraded form (no session ref).
	Create(ctx context.Context, request *requests.CreateAppointment, attachments []UploadedFile) (*responses.Appointment, string, error)
	FindAll(ctx context.Context, patientEmail string) ([]responses.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) (*responses.Appointment, error)
}

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByUniquenessKey(ctx context.Context, uniquenessKey string) (*models.Appointment, error)
	FindByPatientEmail(ctx context.Context, patientEmail string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) error
}
