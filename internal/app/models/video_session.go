package models

import "time"

// ProviderToken is the cached OAuth access token for the conferencing
// provider. Process-lifetime only, never written to durable storage.
type ProviderToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// FreshWithin reports whether the token is still usable when a safety margin
// is subtracted from its expiry.
func (t *ProviderToken) FreshWithin(margin time.Duration, now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return now.Before(t.ExpiresAt.Add(-margin))
}

type VideoSession struct {
	MeetingID string    `json:"meeting_id"`
	Topic     string    `json:"topic"`
	JoinURL   string    `json:"join_url"`
	Password  string    `json:"password"`
	StartTime time.Time `json:"start_time"`
	Duration  int       `json:"duration"`
	Invitees  []string  `json:"invitees"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *VideoSession) Ref() *VideoSessionRef {
	if s == nil {
		return nil
	}
	return &VideoSessionRef{
		MeetingID: s.MeetingID,
		JoinURL:   s.JoinURL,
		Password:  s.Password,
	}
}
