package conferencing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"telecare-service/internal/app/config"
	"telecare-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTokenCache(t *testing.T, serverURL string) *tokenCache {
	t.Helper()
	internalConfig := &config.InternalConfig{
		Conferencing: config.Conferencing{
			AuthBaseUrl:                serverURL,
			ClientID:                   "client-id",
			ClientSecret:               "client-secret",
			AccountID:                  "account-id",
			TokenSafetyMarginInSeconds: 60,
			RequestTimeoutInSeconds:    5,
		},
	}
	provider := NewTokenCache(internalConfig, zap.NewNop())
	cache, ok := provider.(*tokenCache)
	require.True(t, ok)
	return cache
}

func TestTokenCacheGetToken(t *testing.T) {
	t.Run("concurrent callers trigger a single exchange", func(t *testing.T) {
		var exchanges int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&exchanges, 1)

			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client-id", username)
			assert.Equal(t, "client-secret", password)
			assert.Equal(t, "account_credentials", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "account-id", r.URL.Query().Get("account_id"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","expires_in":3600}`))
		}))
		defer server.Close()

		cache := newTestTokenCache(t, server.URL)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				token, err := cache.GetToken(context.Background())
				assert.NoError(t, err)
				assert.Equal(t, "tok-1", token.AccessToken)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&exchanges))
	})

	t.Run("token inside the safety margin is refreshed", func(t *testing.T) {
		var exchanges int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&exchanges, 1)
			w.Write([]byte(`{"access_token":"tok-fresh","token_type":"bearer","expires_in":3600}`))
		}))
		defer server.Close()

		cache := newTestTokenCache(t, server.URL)
		cache.token = &models.ProviderToken{
			AccessToken: "tok-stale",
			TokenType:   "bearer",
			ExpiresAt:   time.Now().Add(30 * time.Second),
		}

		token, err := cache.GetToken(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "tok-fresh", token.AccessToken)
		assert.Equal(t, int32(1), atomic.LoadInt32(&exchanges))
	})

	t.Run("token outside the safety margin is reused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("exchange must not be called")
		}))
		defer server.Close()

		cache := newTestTokenCache(t, server.URL)
		cache.token = &models.ProviderToken{
			AccessToken: "tok-cached",
			TokenType:   "bearer",
			ExpiresAt:   time.Now().Add(10 * time.Minute),
		}

		token, err := cache.GetToken(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "tok-cached", token.AccessToken)
	})

	t.Run("invalid token payload is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token":"","expires_in":0}`))
		}))
		defer server.Close()

		cache := newTestTokenCache(t, server.URL)
		token, err := cache.GetToken(context.Background())
		assert.Error(t, err)
		assert.Nil(t, token)
	})

	t.Run("non-200 status fails the exchange", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		cache := newTestTokenCache(t, server.URL)
		_, err := cache.GetToken(context.Background())
		assert.Error(t, err)
	})
}
