package models

import "time"

// PendingSyncEntry is the client-local durable record of a booking the server
// has not acknowledged yet. It is removed only after the server returns a
// canonical appointment id, or kept with Terminal=true after the retry budget
// is exhausted.
type PendingSyncEntry struct {
	LocalID     string              `json:"localId"`
	Payload     AppointmentPayload  `json:"payload"`
	FileCount   int                 `json:"fileCount"`
	Files       []PendingAttachment `json:"files,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	RetryCount  int                 `json:"retryCount"`
	LastAttempt time.Time           `json:"lastAttempt,omitempty"`
	Terminal    bool                `json:"terminal"`
}

// AppointmentPayload mirrors the submitted booking request byte for byte so a
// reconciled submission is identical to the original one.
type AppointmentPayload struct {
	Specialty    string `json:"specialty"`
	DoctorID     string `json:"doctor_id"`
	DoctorName   string `json:"doctor_name"`
	DoctorEmail  string `json:"doctor_email,omitempty"`
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// PendingAttachment keeps the spooled attachment bytes next to the queue
// entry so a later sync uploads exactly what the user originally attached.
type PendingAttachment struct {
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
}
