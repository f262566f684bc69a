package constvars

// Conferencing provider API constants. The request template fields are a fixed
// security posture and must not be caller-configurable.
const (
	ProviderTokenGrantType = "account_credentials"
	ProviderTokenPath      = "/oauth/token"
	ProviderMeetingsPath   = "/users/me/meetings"

	ProviderMeetingTypeScheduled = 2

	ProviderAutoRecording  = "cloud"
	ProviderEncryptionType = "enhanced_encryption"
)
