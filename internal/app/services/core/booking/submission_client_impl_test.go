package booking

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInternalConfig(storeBaseUrl string) *config.InternalConfig {
	return &config.InternalConfig{
		Sync: config.Sync{
			StoreBaseUrl:            storeBaseUrl,
			MaxRetries:              3,
			RequestTimeoutInSeconds: 2,
			IntervalInSeconds:       60,
		},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func validSubmission() *requests.CreateAppointment {
	return &requests.CreateAppointment{
		Specialty:    "Cardiology",
		DoctorID:     "doc-7",
		DoctorName:   "Dr. Chen",
		PatientName:  "Amira",
		PatientEmail: "amira@example.com",
		Date:         time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:         "10:00",
	}
}

func newTestSubmissionClient(t *testing.T, storeBaseUrl string) (contracts.SubmissionClient, contracts.PendingSyncQueue) {
	t.Helper()
	internalConfig := testInternalConfig(storeBaseUrl)
	internalConfig.Sync.QueueFilePath = filepath.Join(t.TempDir(), "queue.json")

	queue := NewFilePendingQueue(internalConfig.Sync.QueueFilePath)
	apiClient := NewAppointmentAPIClient(internalConfig, testLogger())
	return NewSubmissionClient(apiClient, queue, internalConfig, testLogger()), queue
}

func TestSubmissionClientSubmit(t *testing.T) {
	t.Run("acknowledged booking is synced and not queued", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/appointments", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.NotEmpty(t, r.FormValue("data"))

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"data":{"id":"apt-1","status":"pending"}}`))
		}))
		defer server.Close()

		client, queue := newTestSubmissionClient(t, server.URL)
		outcome, err := client.Submit(context.Background(), validSubmission(), nil)
		require.NoError(t, err)
		assert.Equal(t, contracts.BookingStatusSynced, outcome.Status)
		require.NotNil(t, outcome.Record)
		assert.Equal(t, "apt-1", outcome.Record.ID)

		entries, err := queue.List()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unreachable store queues the booking locally", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		client, queue := newTestSubmissionClient(t, server.URL)
		attachments := []contracts.UploadedFile{
			{FileName: "referral.pdf", ContentType: "application/pdf", Content: []byte("pdf-bytes")},
		}
		request := validSubmission()
		outcome, err := client.Submit(context.Background(), request, attachments)
		require.NoError(t, err)
		assert.Equal(t, contracts.BookingStatusQueuedLocally, outcome.Status)
		assert.NotEmpty(t, outcome.Warning)
		require.NotNil(t, outcome.Entry)
		assert.Regexp(t, regexp.MustCompile(constvars.RegexLocalSyncID), outcome.Entry.LocalID)

		entries, err := queue.List()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, outcome.Entry.LocalID, entries[0].LocalID)
		assert.Equal(t, request.ToPayload(), entries[0].Payload)
		assert.Equal(t, 1, entries[0].FileCount)
		require.Len(t, entries[0].Files, 1)
		assert.Equal(t, []byte("pdf-bytes"), entries[0].Files[0].Content)
	})

	t.Run("server-side validation rejection is not queued", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"message":"Cannot process your request"}`))
		}))
		defer server.Close()

		client, queue := newTestSubmissionClient(t, server.URL)
		outcome, err := client.Submit(context.Background(), validSubmission(), nil)
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.True(t, exceptions.HasStatusCode(err, 400))

		entries, listErr := queue.List()
		require.NoError(t, listErr)
		assert.Empty(t, entries)
	})

	t.Run("conflict from the store is not queued", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"success":false,"message":"already booked"}`))
		}))
		defer server.Close()

		client, queue := newTestSubmissionClient(t, server.URL)
		outcome, err := client.Submit(context.Background(), validSubmission(), nil)
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.True(t, exceptions.HasStatusCode(err, 409))

		entries, listErr := queue.List()
		require.NoError(t, listErr)
		assert.Empty(t, entries)
	})

	t.Run("contended slot is queued for a later retry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusLocked)
			w.Write([]byte(`{"success":false,"message":"Another booking for this slot is being processed, please try again"}`))
		}))
		defer server.Close()

		client, queue := newTestSubmissionClient(t, server.URL)
		outcome, err := client.Submit(context.Background(), validSubmission(), nil)
		require.NoError(t, err)
		assert.Equal(t, contracts.BookingStatusQueuedLocally, outcome.Status)

		entries, listErr := queue.List()
		require.NoError(t, listErr)
		require.Len(t, entries, 1)
	})

	t.Run("locally invalid booking is rejected without queueing", func(t *testing.T) {
		client, queue := newTestSubmissionClient(t, "http://127.0.0.1:0")
		request := validSubmission()
		request.PatientEmail = "not-an-email"

		outcome, err := client.Submit(context.Background(), request, nil)
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.True(t, exceptions.HasStatusCode(err, 400))

		entries, listErr := queue.List()
		require.NoError(t, listErr)
		assert.Empty(t, entries)
	})
}
