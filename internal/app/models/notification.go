package models

import "time"

// NotificationTask is the per-recipient work item the dispatcher drains. It
// lives only in the queue; delivery is at-least-once with idempotent content
// and never mutates the appointment it refers to.
type NotificationTask struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	MeetingID     string    `json:"meeting_id,omitempty"`
	Recipient     string    `json:"recipient"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
	FailedCount   int       `json:"failed_count"`
	NextAttemptAt time.Time `json:"next_attempt_at,omitempty"`
}
