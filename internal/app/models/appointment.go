package models

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// allowedStatusTransitions captures the appointment lifecycle. Cancellation is
// a status change, never a delete.
var allowedStatusTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID            string            `json:"id" bson:"_id,omitempty"`
	Specialty     string            `json:"specialty" bson:"specialty"`
	DoctorID      string            `json:"doctor_id" bson:"doctorId"`
	DoctorName    string            `json:"doctor_name" bson:"doctorName"`
	DoctorEmail   string            `json:"doctor_email,omitempty" bson:"doctorEmail,omitempty"`
	PatientName   string            `json:"patient_name" bson:"patientName"`
	PatientEmail  string            `json:"patient_email" bson:"patientEmail"`
	Date          string            `json:"date" bson:"date"`
	Time          string            `json:"time" bson:"time"`
	Status        AppointmentStatus `json:"status" bson:"status"`
	SessionRef    *VideoSessionRef  `json:"session_ref,omitempty" bson:"sessionRef,omitempty"`
	Attachments   []string          `json:"attachments,omitempty" bson:"attachments,omitempty"`
	UniquenessKey string            `json:"-" bson:"uniquenessKey"`
	CreatedAt     time.Time         `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updatedAt"`
}

// VideoSessionRef is the weak reference an appointment keeps to its provider
// session. Invalidation of the provider session never invalidates the record.
type VideoSessionRef struct {
	MeetingID string `json:"meeting_id" bson:"meetingId"`
	JoinURL   string `json:"join_url" bson:"joinUrl"`
	Password  string `json:"password" bson:"password"`
}
