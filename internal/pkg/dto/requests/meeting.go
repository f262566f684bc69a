package requests

// Conferencing provider wire DTOs. The Settings block is a fixed security
// posture assembled by the session provisioner, not exposed to callers.

type MeetingParams struct {
	Topic     string
	StartTime string
	Duration  int
	Password  string
	Agenda    string
}

type ProviderMeetingInvitee struct {
	Email string `json:"email"`
}

type ProviderMeetingSettings struct {
	AutoRecording         string                   `json:"auto_recording"`
	WaitingRoom           bool                     `json:"waiting_room"`
	MeetingAuthentication bool                     `json:"meeting_authentication"`
	JoinBeforeHost        bool                     `json:"join_before_host"`
	EncryptionType        string                   `json:"encryption_type"`
	MeetingInvitees       []ProviderMeetingInvitee `json:"meeting_invitees,omitempty"`
}

type ProviderCreateMeeting struct {
	Topic     string                  `json:"topic"`
	Type      int                     `json:"type"`
	StartTime string                  `json:"start_time"`
	Duration  int                     `json:"duration"`
	Password  string                  `json:"password,omitempty"`
	Agenda    string                  `json:"agenda,omitempty"`
	Settings  ProviderMeetingSettings `json:"settings"`
}
