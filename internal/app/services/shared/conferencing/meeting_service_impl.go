package conferencing

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/dto/requests"
	"telecare-service/internal/pkg/dto/responses"
	"telecare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type conferenceService struct {
	APIBaseUrl    string
	TokenProvider contracts.ConferenceTokenProvider
	HTTPClient    *http.Client
	Limiter       *rate.Limiter
	Log           *zap.Logger
}

func NewConferenceService(
	internalConfig *config.InternalConfig,
	tokenProvider contracts.ConferenceTokenProvider,
	logger *zap.Logger,
) contracts.ConferenceService {
	rps := internalConfig.Conferencing.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &conferenceService{
		APIBaseUrl:    internalConfig.Conferencing.APIBaseUrl,
		TokenProvider: tokenProvider,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.Conferencing.RequestTimeoutInSeconds) * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Limit(rps), rps),
		Log:     logger,
	}
}

// CreateSession provisions a scheduled meeting at the provider. The settings
// block is assembled here and never taken from caller input.
func (s *conferenceService) CreateSession(ctx context.Context, params requests.MeetingParams, invitees []string) (*models.VideoSession, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("conferenceService.CreateSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrMeetingCreate(err)
	}

	token, err := s.TokenProvider.GetToken(ctx)
	if err != nil {
		s.Log.Error("conferenceService.CreateSession error fetching provider token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMeetingCreateAuth(err)
	}

	meetingInvitees := make([]requests.ProviderMeetingInvitee, 0, len(invitees))
	for _, email := range invitees {
		meetingInvitees = append(meetingInvitees, requests.ProviderMeetingInvitee{Email: email})
	}

	payload := requests.ProviderCreateMeeting{
		Topic:     params.Topic,
		Type:      constvars.ProviderMeetingTypeScheduled,
		StartTime: params.StartTime,
		Duration:  params.Duration,
		Password:  params.Password,
		Agenda:    params.Agenda,
		Settings: requests.ProviderMeetingSettings{
			AutoRecording:         constvars.ProviderAutoRecording,
			WaitingRoom:           false,
			MeetingAuthentication: true,
			JoinBeforeHost:        false,
			EncryptionType:        constvars.ProviderEncryptionType,
			MeetingInvitees:       meetingInvitees,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	endpoint := s.APIBaseUrl + constvars.ProviderMeetingsPath
	request, err := http.NewRequestWithContext(ctx, constvars.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	request.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	request.Header.Set(constvars.HeaderAuthorization, fmt.Sprintf("Bearer %s", token.AccessToken))

	response, err := s.HTTPClient.Do(request)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer response.Body.Close()

	meetingResponse := new(responses.ProviderMeeting)
	if err := json.NewDecoder(response.Body).Decode(meetingResponse); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "provider meetings endpoint")
	}

	if response.StatusCode == constvars.StatusUnauthorized {
		return nil, exceptions.ErrMeetingCreateAuth(fmt.Errorf("provider rejected token: %s", meetingResponse.Message))
	}
	if response.StatusCode != constvars.StatusCreated && response.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrMeetingCreate(fmt.Errorf("provider returned status %d: %s", response.StatusCode, meetingResponse.Message))
	}

	// Some provider errors come back 200 with a structured error body, and a
	// success body without an id is useless either way.
	meetingID := meetingResponse.ID.String()
	if meetingID == "" || meetingID == "0" {
		return nil, exceptions.ErrMeetingResponseNoID(fmt.Errorf("provider response code %d: %s", meetingResponse.Code, meetingResponse.Message))
	}

	startTime, _ := time.Parse(time.RFC3339, params.StartTime)
	session := &models.VideoSession{
		MeetingID: meetingID,
		Topic:     meetingResponse.Topic,
		JoinURL:   meetingResponse.JoinURL,
		Password:  meetingResponse.Password,
		StartTime: startTime,
		Duration:  params.Duration,
		Invitees:  invitees,
		CreatedAt: time.Now(),
	}

	s.Log.Info("conferenceService.CreateSession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMeetingIDKey, session.MeetingID),
	)
	return session, nil
}
