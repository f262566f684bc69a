package booking

import (
	"context"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/exceptions"
	"telecare-service/internal/pkg/utils"
	"time"

	"github.com/sirupsen/logrus"
)

// submissionClient is the resilient front door for bookings. Every submission
// ends in exactly one of two places: acknowledged by the store, or appended
// to the local pending queue. Server verdicts (validation, conflict) are
// neither; they propagate as errors without queueing.
type submissionClient struct {
	APIClient      contracts.AppointmentAPIClient
	PendingQueue   contracts.PendingSyncQueue
	RequestTimeout time.Duration
	Log            *logrus.Logger
}

func NewSubmissionClient(
	apiClient contracts.AppointmentAPIClient,
	pendingQueue contracts.PendingSyncQueue,
	internalConfig *config.InternalConfig,
	logger *logrus.Logger,
) contracts.SubmissionClient {
	return &submissionClient{
		APIClient:      apiClient,
		PendingQueue:   pendingQueue,
		RequestTimeout: time.Duration(internalConfig.Sync.RequestTimeoutInSeconds) * time.Second,
		Log:            logger,
	}
}

func (c *submissionClient) Submit(ctx context.Context, request *requests.CreateAppointment, attachments []contracts.UploadedFile) (*contracts.BookingOutcome, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	submitCtx, cancel := context.WithTimeout(ctx, c.RequestTimeout)
	defer cancel()

	record, err := c.APIClient.CreateAppointment(submitCtx, request, attachments)
	if err == nil {
		c.Log.WithField("appointment_id", record.ID).Info("booking acknowledged by store")
		return &contracts.BookingOutcome{
			Status: contracts.BookingStatusSynced,
			Record: record,
		}, nil
	}

	// The store answered and said no. Queueing would just replay a booking
	// the server already rejected.
	if exceptions.HasStatusCode(err, constvars.StatusBadRequest) || exceptions.HasStatusCode(err, constvars.StatusConflict) {
		return nil, err
	}

	c.Log.WithError(err).Warn("store unreachable, queueing booking locally")

	entry := &models.PendingSyncEntry{
		LocalID:   utils.GenerateLocalSyncID(),
		Payload:   request.ToPayload(),
		FileCount: len(attachments),
		Files:     spoolAttachments(attachments),
		CreatedAt: time.Now().UTC(),
	}
	if appendErr := c.PendingQueue.Append(entry); appendErr != nil {
		// Both the network and the local disk failed; nothing durable holds
		// the booking, so the caller has to see a hard error.
		c.Log.WithError(appendErr).Error("failed to append booking to pending queue")
		return nil, appendErr
	}

	c.Log.WithField("local_id", entry.LocalID).Info("booking queued locally")
	return &contracts.BookingOutcome{
		Status:  contracts.BookingStatusQueuedLocally,
		Entry:   entry,
		Warning: constvars.ErrClientBookingQueued,
	}, nil
}

func spoolAttachments(attachments []contracts.UploadedFile) []models.PendingAttachment {
	if len(attachments) == 0 {
		return nil
	}
	spooled := make([]models.PendingAttachment, 0, len(attachments))
	for _, attachment := range attachments {
		spooled = append(spooled, models.PendingAttachment{
			FileName: attachment.FileName,
			Content:  attachment.Content,
		})
	}
	return spooled
}
