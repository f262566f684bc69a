package responses

import "github.com/goccy/go-json"

// ProviderToken is the provider's token endpoint payload.
type ProviderToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ProviderMeeting is the provider's meeting creation payload. ID is a
// json.Number because providers have shipped both string and numeric ids; a
// missing or zero id means the call failed regardless of HTTP status.
type ProviderMeeting struct {
	ID       json.Number `json:"id"`
	Topic    string      `json:"topic"`
	JoinURL  string      `json:"join_url"`
	Password string      `json:"password"`
	Code     int         `json:"code,omitempty"`
	Message  string      `json:"message,omitempty"`
}
