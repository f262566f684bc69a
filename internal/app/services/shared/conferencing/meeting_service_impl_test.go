package conferencing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/dto/requests"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokenProvider struct {
	token *models.ProviderToken
	err   error
}

func (p *staticTokenProvider) GetToken(ctx context.Context) (*models.ProviderToken, error) {
	return p.token, p.err
}

func newTestConferenceService(serverURL string, provider contracts.ConferenceTokenProvider) contracts.ConferenceService {
	internalConfig := &config.InternalConfig{
		Conferencing: config.Conferencing{
			APIBaseUrl:              serverURL,
			RequestTimeoutInSeconds: 5,
			RequestsPerSecond:       100,
		},
	}
	return NewConferenceService(internalConfig, provider, zap.NewNop())
}

func TestConferenceServiceCreateSession(t *testing.T) {
	provider := &staticTokenProvider{
		token: &models.ProviderToken{
			AccessToken: "tok-1",
			TokenType:   "bearer",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
	}

	params := requests.MeetingParams{
		Topic:     "Consultation with Dr. Chen",
		StartTime: "2026-09-01T10:00:00Z",
		Duration:  30,
		Password:  "s3cret",
	}

	t.Run("sends the fixed settings block and bearer token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/me/meetings", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

			var payload requests.ProviderCreateMeeting
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, 2, payload.Type)
			assert.Equal(t, "cloud", payload.Settings.AutoRecording)
			assert.False(t, payload.Settings.WaitingRoom)
			assert.True(t, payload.Settings.MeetingAuthentication)
			assert.False(t, payload.Settings.JoinBeforeHost)
			assert.Equal(t, "enhanced_encryption", payload.Settings.EncryptionType)
			require.Len(t, payload.Settings.MeetingInvitees, 2)
			assert.Equal(t, "patient@example.com", payload.Settings.MeetingInvitees[0].Email)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":82512345678,"topic":"Consultation with Dr. Chen","join_url":"https://provider.example/j/82512345678","password":"s3cret"}`))
		}))
		defer server.Close()

		service := newTestConferenceService(server.URL, provider)
		session, err := service.CreateSession(context.Background(), params, []string{"patient@example.com", "doctor@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "82512345678", session.MeetingID)
		assert.Equal(t, "https://provider.example/j/82512345678", session.JoinURL)
	})

	t.Run("string meeting id is accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"abc-123","join_url":"https://provider.example/j/abc-123"}`))
		}))
		defer server.Close()

		service := newTestConferenceService(server.URL, provider)
		session, err := service.CreateSession(context.Background(), params, nil)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", session.MeetingID)
	})

	t.Run("success body without an id fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":3000,"message":"meeting capability not enabled"}`))
		}))
		defer server.Close()

		service := newTestConferenceService(server.URL, provider)
		session, err := service.CreateSession(context.Background(), params, nil)
		assert.Error(t, err)
		assert.Nil(t, session)
	})

	t.Run("token failure surfaces as auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("provider must not be called without a token")
		}))
		defer server.Close()

		failing := &staticTokenProvider{err: assert.AnError}
		service := newTestConferenceService(server.URL, failing)
		session, err := service.CreateSession(context.Background(), params, nil)
		assert.Error(t, err)
		assert.Nil(t, session)
	})
}
