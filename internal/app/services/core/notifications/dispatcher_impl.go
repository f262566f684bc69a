package notifications

import (
	"context"
	"fmt"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type notificationDispatcher struct {
	Queue *QueueService
	Log   *zap.Logger
}

func NewNotificationDispatcher(queue *QueueService, logger *zap.Logger) contracts.NotificationDispatcher {
	return &notificationDispatcher{
		Queue: queue,
		Log:   logger,
	}
}

// Dispatch enqueues one email task per recipient of the appointment. Enqueue
// failures are logged and counted; the booking that triggered the dispatch is
// already persisted and must not fail because of them.
func (d *notificationDispatcher) Dispatch(ctx context.Context, appointment *models.Appointment) contracts.DispatchResult {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	d.Log.Info("notificationDispatcher.Dispatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	result := contracts.DispatchResult{}
	for _, task := range BuildTasks(appointment) {
		if err := d.Queue.Enqueue(ctx, task); err != nil {
			result.Failed++
			d.Log.Error("notificationDispatcher.Dispatch error enqueueing task",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRecipientKey, task.Recipient),
				zap.Error(err),
			)
			continue
		}
		result.Enqueued++
	}

	d.Log.Info("notificationDispatcher.Dispatch finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("enqueued", result.Enqueued),
		zap.Int("failed", result.Failed),
	)
	return result
}

// BuildTasks renders the per-recipient email tasks for a booked appointment.
// The body depends on whether the booking carries a session ref.
func BuildTasks(appointment *models.Appointment) []models.NotificationTask {
	recipients := []struct {
		email string
		name  string
	}{
		{appointment.PatientEmail, appointment.PatientName},
		{appointment.DoctorEmail, appointment.DoctorName},
	}

	subject := fmt.Sprintf(constvars.EmailAppointmentSubjectFormat, appointment.DoctorName)

	tasks := make([]models.NotificationTask, 0, len(recipients))
	for _, recipient := range recipients {
		// Doctor addresses come from upstream directory data, not from the
		// validated request; a malformed one gets no task.
		if !utils.ValidateEmail(recipient.email) {
			continue
		}

		var body string
		var meetingID string
		if appointment.SessionRef != nil {
			meetingID = appointment.SessionRef.MeetingID
			body = fmt.Sprintf(constvars.EmailAppointmentBodyFormat,
				recipient.name,
				appointment.DoctorName,
				appointment.Date,
				appointment.Time,
				appointment.SessionRef.MeetingID,
				appointment.SessionRef.JoinURL,
				appointment.SessionRef.Password,
			)
		} else {
			body = fmt.Sprintf(constvars.EmailAppointmentNoSessionBodyFormat,
				recipient.name,
				appointment.DoctorName,
				appointment.Date,
				appointment.Time,
			)
		}

		tasks = append(tasks, models.NotificationTask{
			ID:            utils.GenerateRequestID(),
			AppointmentID: appointment.ID,
			MeetingID:     meetingID,
			Recipient:     recipient.email,
			Subject:       subject,
			Body:          body,
		})
	}

	return tasks
}
