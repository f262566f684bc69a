package conferencing

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/dto/responses"
	"telecare-service/internal/pkg/exceptions"
	"time"

	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type tokenCache struct {
	AuthBaseUrl  string
	ClientID     string
	ClientSecret string
	AccountID    string
	SafetyMargin time.Duration
	HTTPClient   *http.Client
	Log          *zap.Logger

	mu    sync.Mutex
	token *models.ProviderToken
	now   func() time.Time
}

// NewTokenCache builds the in-memory provider token cache. The mutex is held
// across the whole exchange so concurrent callers trigger exactly one
// refresh; everyone else waits and reuses the result.
func NewTokenCache(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.ConferenceTokenProvider {
	return &tokenCache{
		AuthBaseUrl:  internalConfig.Conferencing.AuthBaseUrl,
		ClientID:     internalConfig.Conferencing.ClientID,
		ClientSecret: internalConfig.Conferencing.ClientSecret,
		AccountID:    internalConfig.Conferencing.AccountID,
		SafetyMargin: time.Duration(internalConfig.Conferencing.TokenSafetyMarginInSeconds) * time.Second,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.Conferencing.RequestTimeoutInSeconds) * time.Second,
		},
		Log: logger,
		now: time.Now,
	}
}

func (c *tokenCache) GetToken(ctx context.Context) (*models.ProviderToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.FreshWithin(c.SafetyMargin, c.now()) {
		return c.token, nil
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("tokenCache.GetToken refreshing provider token",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	token, err := c.exchange(ctx)
	if err != nil {
		c.Log.Error("tokenCache.GetToken error exchanging token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.token = token
	c.Log.Info("tokenCache.GetToken refreshed provider token",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time(constvars.LoggingTokenExpiryKey, token.ExpiresAt),
	)
	return token, nil
}

func (c *tokenCache) exchange(ctx context.Context) (*models.ProviderToken, error) {
	query := url.Values{}
	query.Set("grant_type", constvars.ProviderTokenGrantType)
	query.Set("account_id", c.AccountID)
	endpoint := fmt.Sprintf("%s%s?%s", c.AuthBaseUrl, constvars.ProviderTokenPath, query.Encode())

	request, err := http.NewRequestWithContext(ctx, constvars.MethodPost, endpoint, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	request.SetBasicAuth(c.ClientID, c.ClientSecret)

	response, err := c.HTTPClient.Do(request)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer response.Body.Close()

	if response.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrTokenExchange(fmt.Errorf("token endpoint returned status %d", response.StatusCode))
	}

	tokenResponse := new(responses.ProviderToken)
	if err := json.NewDecoder(response.Body).Decode(tokenResponse); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "provider token endpoint")
	}

	if tokenResponse.AccessToken == "" || tokenResponse.ExpiresIn <= 0 {
		return nil, exceptions.ErrTokenResponseInvalid(fmt.Errorf("empty access_token or non-positive expires_in"))
	}

	return &models.ProviderToken{
		AccessToken: tokenResponse.AccessToken,
		TokenType:   tokenResponse.TokenType,
		ExpiresAt:   c.now().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second),
	}, nil
}
