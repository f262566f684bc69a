package appointments

import (
	"context"
	"io"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	args := m.Called(ctx, appointment)
	return args.String(0), args.Error(1)
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if appointment, ok := args.Get(0).(*models.Appointment); ok {
		return appointment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepository) FindByUniquenessKey(ctx context.Context, uniquenessKey string) (*models.Appointment, error) {
	args := m.Called(ctx, uniquenessKey)
	if appointment, ok := args.Get(0).(*models.Appointment); ok {
		return appointment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepository) FindByPatientEmail(ctx context.Context, patientEmail string) ([]models.Appointment, error) {
	args := m.Called(ctx, patientEmail)
	if appointments, ok := args.Get(0).([]models.Appointment); ok {
		return appointments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepository) UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) error {
	args := m.Called(ctx, appointmentID, status)
	return args.Error(0)
}

type mockConferenceService struct {
	mock.Mock
}

func (m *mockConferenceService) CreateSession(ctx context.Context, params requests.MeetingParams, invitees []string) (*models.VideoSession, error) {
	args := m.Called(ctx, params, invitees)
	if session, ok := args.Get(0).(*models.VideoSession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, appointment *models.Appointment) contracts.DispatchResult {
	args := m.Called(ctx, appointment)
	return args.Get(0).(contracts.DispatchResult)
}

type mockAttachmentStorage struct {
	mock.Mock
}

func (m *mockAttachmentStorage) Store(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, objectName, reader, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockAttachmentStorage) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *mockLocker) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func validCreateRequest() *requests.CreateAppointment {
	return &requests.CreateAppointment{
		Specialty:    "Cardiology",
		DoctorID:     "doc-7",
		DoctorName:   "Dr. Chen",
		DoctorEmail:  "chen@clinic.example",
		PatientName:  "Amira",
		PatientEmail: "Amira@Example.com",
		Date:         time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:         "10:00",
	}
}

func newTestUsecase(
	repo *mockAppointmentRepository,
	conference *mockConferenceService,
	dispatcher *mockDispatcher,
	storage *mockAttachmentStorage,
	locker *mockLocker,
) contracts.AppointmentUsecase {
	internalConfig := &config.InternalConfig{
		App: config.App{RequestTimeoutInSeconds: 10},
		Conferencing: config.Conferencing{
			MeetingDurationInMinutes: 30,
		},
	}
	return NewAppointmentUsecase(repo, conference, dispatcher, storage, locker, internalConfig, zap.NewNop())
}

func TestAppointmentUsecaseCreate(t *testing.T) {
	t.Run("successful booking carries a session ref", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		conference := new(mockConferenceService)
		dispatcher := new(mockDispatcher)
		storage := new(mockAttachmentStorage)
		locker := new(mockLocker)

		locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "lock-1", nil)
		locker.On("Unlock", mock.Anything, mock.Anything, "lock-1").Return(nil)
		repo.On("FindByUniquenessKey", mock.Anything, mock.Anything).Return(nil, nil)
		conference.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).Return(&models.VideoSession{
			MeetingID: "825123",
			JoinURL:   "https://provider.example/j/825123",
			Password:  "s3cret",
		}, nil)
		repo.On("Insert", mock.Anything, mock.Anything).Return("apt-1", nil)
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(contracts.DispatchResult{Enqueued: 2})

		usecase := newTestUsecase(repo, conference, dispatcher, storage, locker)
		response, warning, err := usecase.Create(context.Background(), validCreateRequest(), nil)
		require.NoError(t, err)
		assert.Empty(t, warning)
		require.NotNil(t, response.SessionRef)
		assert.Equal(t, "825123", response.SessionRef.MeetingID)
		assert.Equal(t, string(models.AppointmentStatusPending), response.Status)

		inserted := repo.Calls[1].Arguments.Get(1).(*models.Appointment)
		assert.Equal(t, "amira@example.com|doc-7|"+inserted.Date+"|10:00", inserted.UniquenessKey)
		dispatcher.AssertCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("provider outage degrades the booking instead of failing it", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		conference := new(mockConferenceService)
		dispatcher := new(mockDispatcher)
		storage := new(mockAttachmentStorage)
		locker := new(mockLocker)

		locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "lock-1", nil)
		locker.On("Unlock", mock.Anything, mock.Anything, "lock-1").Return(nil)
		repo.On("FindByUniquenessKey", mock.Anything, mock.Anything).Return(nil, nil)
		conference.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)
		repo.On("Insert", mock.Anything, mock.Anything).Return("apt-2", nil)
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(contracts.DispatchResult{Enqueued: 2})

		usecase := newTestUsecase(repo, conference, dispatcher, storage, locker)
		response, warning, err := usecase.Create(context.Background(), validCreateRequest(), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, warning)
		assert.Nil(t, response.SessionRef)

		repo.AssertCalled(t, "Insert", mock.Anything, mock.Anything)
		dispatcher.AssertCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("duplicate booking returns conflict", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		conference := new(mockConferenceService)
		dispatcher := new(mockDispatcher)
		storage := new(mockAttachmentStorage)
		locker := new(mockLocker)

		locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(true, "lock-1", nil)
		locker.On("Unlock", mock.Anything, mock.Anything, "lock-1").Return(nil)
		repo.On("FindByUniquenessKey", mock.Anything, mock.Anything).Return(&models.Appointment{ID: "apt-1"}, nil)

		usecase := newTestUsecase(repo, conference, dispatcher, storage, locker)
		response, _, err := usecase.Create(context.Background(), validCreateRequest(), nil)
		require.Error(t, err)
		assert.Nil(t, response)
		assert.True(t, exceptions.HasStatusCode(err, 409))

		conference.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("concurrent booking of the same slot is reported as contended, not duplicate", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		conference := new(mockConferenceService)
		dispatcher := new(mockDispatcher)
		storage := new(mockAttachmentStorage)
		locker := new(mockLocker)

		locker.On("TryLock", mock.Anything, mock.Anything, mock.Anything).Return(false, "", nil)

		usecase := newTestUsecase(repo, conference, dispatcher, storage, locker)
		_, _, err := usecase.Create(context.Background(), validCreateRequest(), nil)
		require.Error(t, err)
		assert.True(t, exceptions.HasStatusCode(err, 423))
		assert.False(t, exceptions.HasStatusCode(err, 409))
	})

	t.Run("slot in the past is rejected", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		conference := new(mockConferenceService)
		dispatcher := new(mockDispatcher)
		storage := new(mockAttachmentStorage)
		locker := new(mockLocker)

		request := validCreateRequest()
		request.Date = "2020-01-01"

		usecase := newTestUsecase(repo, conference, dispatcher, storage, locker)
		_, _, err := usecase.Create(context.Background(), request, nil)
		require.Error(t, err)
		assert.True(t, exceptions.HasStatusCode(err, 400))
		locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid payload is rejected before any side effect", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		conference := new(mockConferenceService)
		dispatcher := new(mockDispatcher)
		storage := new(mockAttachmentStorage)
		locker := new(mockLocker)

		request := validCreateRequest()
		request.PatientEmail = "not-an-email"

		usecase := newTestUsecase(repo, conference, dispatcher, storage, locker)
		_, _, err := usecase.Create(context.Background(), request, nil)
		require.Error(t, err)
		assert.True(t, exceptions.HasStatusCode(err, 400))
	})
}

func TestAppointmentUsecaseUpdateStatus(t *testing.T) {
	t.Run("allowed transition succeeds", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:     "apt-1",
			Status: models.AppointmentStatusPending,
		}, nil)
		repo.On("UpdateStatus", mock.Anything, "apt-1", models.AppointmentStatusConfirmed).Return(nil)

		usecase := newTestUsecase(repo, new(mockConferenceService), new(mockDispatcher), new(mockAttachmentStorage), new(mockLocker))
		response, err := usecase.UpdateStatus(context.Background(), "apt-1", models.AppointmentStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentStatusConfirmed), response.Status)
	})

	t.Run("illegal transition is rejected", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:     "apt-1",
			Status: models.AppointmentStatusCompleted,
		}, nil)

		usecase := newTestUsecase(repo, new(mockConferenceService), new(mockDispatcher), new(mockAttachmentStorage), new(mockLocker))
		_, err := usecase.UpdateStatus(context.Background(), "apt-1", models.AppointmentStatusPending)
		require.Error(t, err)
		assert.True(t, exceptions.HasStatusCode(err, 422))
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown appointment returns not found", func(t *testing.T) {
		repo := new(mockAppointmentRepository)
		repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

		usecase := newTestUsecase(repo, new(mockConferenceService), new(mockDispatcher), new(mockAttachmentStorage), new(mockLocker))
		_, err := usecase.UpdateStatus(context.Background(), "missing", models.AppointmentStatusConfirmed)
		require.Error(t, err)
		assert.True(t, exceptions.HasStatusCode(err, 404))
	})
}
