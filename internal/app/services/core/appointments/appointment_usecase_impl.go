package appointments

import (
	"bytes"
	"context"
	"fmt"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/dto/responses"
	"telecare-service/internal/pkg/exceptions"
	"telecare-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const bookingLockPrefix = "appointments:booking:"

type appointmentUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	ConferenceService      contracts.ConferenceService
	NotificationDispatcher contracts.NotificationDispatcher
	AttachmentStorage      contracts.AttachmentStorage
	LockService            contracts.LockerService
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	conferenceService contracts.ConferenceService,
	notificationDispatcher contracts.NotificationDispatcher,
	attachmentStorage contracts.AttachmentStorage,
	lockService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository:  appointmentRepository,
		ConferenceService:      conferenceService,
		NotificationDispatcher: notificationDispatcher,
		AttachmentStorage:      attachmentStorage,
		LockService:            lockService,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

// Create books an appointment. The video session is provisioned before the
// record is persisted; if provisioning fails the booking still goes through
// with a nil session ref and a warning for the caller.
func (uc *appointmentUsecase) Create(ctx context.Context, request *requests.CreateAppointment, attachments []contracts.UploadedFile) (*responses.Appointment, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		uc.Log.Error("appointmentUsecase.Create validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, "", exceptions.ErrInputValidation(err)
	}

	slot, err := utils.ParseAppointmentSlot(request.Date, request.Time)
	if err != nil {
		return nil, "", exceptions.ErrCannotParseDate(err)
	}
	if utils.SlotInPast(request.Date, request.Time, time.Now()) {
		return nil, "", exceptions.ErrSlotInPast(fmt.Errorf("slot %s is before now", slot))
	}

	uniquenessKey := request.UniquenessKey()
	lockKey := bookingLockPrefix + uniquenessKey
	lockTTL := time.Duration(uc.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	acquired, lockValue, err := uc.LockService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, "", err
	}
	if !acquired {
		return nil, "", exceptions.ErrLockNotAcquired(fmt.Errorf("concurrent booking in flight"), uniquenessKey)
	}
	// The unlock must still run when the request context is already dead,
	// otherwise an abandoned request leaks the lock until its TTL.
	unlockCtx := context.WithoutCancel(ctx)
	defer func() {
		if unlockErr := uc.LockService.Unlock(unlockCtx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Error("appointmentUsecase.Create error releasing booking lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	existing, err := uc.AppointmentRepository.FindByUniquenessKey(ctx, uniquenessKey)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		uc.Log.Info("appointmentUsecase.Create duplicate booking rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUniquenessKey, uniquenessKey),
		)
		return nil, "", exceptions.ErrAppointmentConflict(fmt.Errorf("uniqueness key %s already exists", uniquenessKey))
	}

	sessionRef, warning := uc.provisionSession(ctx, request, slot)

	now := time.Now()
	appointment := &models.Appointment{
		Specialty:     request.Specialty,
		DoctorID:      request.DoctorID,
		DoctorName:    request.DoctorName,
		DoctorEmail:   request.DoctorEmail,
		PatientName:   request.PatientName,
		PatientEmail:  request.PatientEmail,
		Date:          request.Date,
		Time:          request.Time,
		Status:        models.AppointmentStatusPending,
		SessionRef:    sessionRef,
		Attachments:   uc.storeAttachments(ctx, uniquenessKey, attachments),
		UniquenessKey: uniquenessKey,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	appointmentID, err := uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		return nil, "", err
	}
	appointment.ID = appointmentID

	dispatch := uc.NotificationDispatcher.Dispatch(ctx, appointment)
	uc.Log.Info("appointmentUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int("notifications_enqueued", dispatch.Enqueued),
		zap.String(constvars.LoggingWarningKey, warning),
	)

	return responses.NewAppointment(appointment), warning, nil
}

// provisionSession asks the conferencing provider for a meeting. Failure is
// degradation, never rejection: the returned warning tells the caller the
// session will follow later.
func (uc *appointmentUsecase) provisionSession(ctx context.Context, request *requests.CreateAppointment, slot time.Time) (*models.VideoSessionRef, string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	password, err := utils.GenerateMeetingPassword(10)
	if err != nil {
		uc.Log.Error("appointmentUsecase.provisionSession error generating password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, constvars.ErrClientVideoSessionUnavailable
	}

	params := requests.MeetingParams{
		Topic:     fmt.Sprintf("Telemedicine consultation: %s with %s", request.PatientName, request.DoctorName),
		StartTime: slot.UTC().Format(time.RFC3339),
		Duration:  uc.InternalConfig.Conferencing.MeetingDurationInMinutes,
		Password:  password,
	}
	invitees := []string{request.PatientEmail}
	if request.DoctorEmail != "" {
		invitees = append(invitees, request.DoctorEmail)
	}

	session, err := uc.ConferenceService.CreateSession(ctx, params, invitees)
	if err != nil {
		uc.Log.Error("appointmentUsecase.provisionSession degraded booking, session unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, constvars.ErrClientVideoSessionUnavailable
	}

	uc.Log.Info("appointmentUsecase.provisionSession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMeetingIDKey, session.MeetingID),
	)
	return session.Ref(), ""
}

// storeAttachments uploads booking attachments best-effort. A failed upload
// is logged and skipped; it never blocks the booking.
func (uc *appointmentUsecase) storeAttachments(ctx context.Context, uniquenessKey string, attachments []contracts.UploadedFile) []string {
	if len(attachments) == 0 {
		return nil
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	stored := make([]string, 0, len(attachments))
	for _, attachment := range attachments {
		objectName := utils.GenerateObjectName(uniquenessKey, attachment.FileName)
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = constvars.MIMEOctetStream
		}
		name, err := uc.AttachmentStorage.Store(ctx, objectName, bytes.NewReader(attachment.Content), int64(len(attachment.Content)), contentType)
		if err != nil {
			uc.Log.Error("appointmentUsecase.storeAttachments error storing attachment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectNameKey, objectName),
				zap.Error(err),
			)
			continue
		}
		stored = append(stored, name)
	}
	return stored
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, patientEmail string) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	appointments, err := uc.AppointmentRepository.FindByPatientEmail(ctx, patientEmail)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAll error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, *responses.NewAppointment(&appointments[i]))
	}
	return result, nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}
	return responses.NewAppointment(appointment), nil
}

func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}

	if !appointment.Status.CanTransitionTo(status) {
		return nil, exceptions.ErrStatusTransition(
			fmt.Errorf("transition rejected"),
			string(appointment.Status),
			string(status),
		)
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}

	appointment.Status = status
	appointment.UpdatedAt = time.Now()
	uc.Log.Info("appointmentUsecase.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return responses.NewAppointment(appointment), nil
}
