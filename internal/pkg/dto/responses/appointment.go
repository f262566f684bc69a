package responses

import (
	"telecare-service/internal/app/models"
	"time"
)

type Appointment struct {
	ID           string                  `json:"id"`
	Specialty    string                  `json:"specialty"`
	DoctorID     string                  `json:"doctor_id"`
	DoctorName   string                  `json:"doctor_name"`
	PatientName  string                  `json:"patient_name"`
	PatientEmail string                  `json:"patient_email"`
	Date         string                  `json:"date"`
	Time         string                  `json:"time"`
	Status       string                  `json:"status"`
	SessionRef   *models.VideoSessionRef `json:"session_ref"`
	Attachments  []string                `json:"attachments,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

func NewAppointment(model *models.Appointment) *Appointment {
	return &Appointment{
		ID:           model.ID,
		Specialty:    model.Specialty,
		DoctorID:     model.DoctorID,
		DoctorName:   model.DoctorName,
		PatientName:  model.PatientName,
		PatientEmail: model.PatientEmail,
		Date:         model.Date,
		Time:         model.Time,
		Status:       string(model.Status),
		SessionRef:   model.SessionRef,
		Attachments:  model.Attachments,
		CreatedAt:    model.CreatedAt,
	}
}
