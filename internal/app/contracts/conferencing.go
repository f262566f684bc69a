package contracts

import (
	"context"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/dto/requests"
)

// ConferenceTokenProvider caches the provider OAuth token in memory with
// single-flight refresh. No caller ever observes a token inside the
// configured safety margin of its expiry.
type ConferenceTokenProvider interface {
	GetToken(ctx context.Context) (*models.ProviderToken, error)
}

// ConferenceService creates externally hosted video sessions. Callers treat
// failures as degradable: a booking proceeds without a session ref.
type ConferenceService interface {
	CreateSession(ctx context.Context, params requests.MeetingParams, invitees []string) (*models.VideoSession, error)
}
