package requests

import (
	"fmt"
	"strings"
	"telecare-service/internal/app/models"
)

// CreateAppointment is the booking submission DTO. It is validated before any
// side effect and immutable once accepted.
type CreateAppointment struct {
	Specialty    string `json:"specialty" validate:"required,min=2,max=100"`
	DoctorID     string `json:"doctor_id" validate:"required"`
	DoctorName   string `json:"doctor_name" validate:"required"`
	DoctorEmail  string `json:"doctor_email,omitempty" validate:"omitempty,email"`
	PatientName  string `json:"patient_name" validate:"required,min=2,max=200"`
	PatientEmail string `json:"patient_email" validate:"required,email"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required,clock_time"`
}

// UniquenessKey normalizes the fields the store enforces uniqueness on.
func (r *CreateAppointment) UniquenessKey() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		strings.ToLower(strings.TrimSpace(r.PatientEmail)),
		r.DoctorID,
		r.Date,
		r.Time,
	)
}

func (r *CreateAppointment) ToPayload() models.AppointmentPayload {
	return models.AppointmentPayload{
		Specialty:    r.Specialty,
		DoctorID:     r.DoctorID,
		DoctorName:   r.DoctorName,
		DoctorEmail:  r.DoctorEmail,
		PatientName:  r.PatientName,
		PatientEmail: r.PatientEmail,
		Date:         r.Date,
		Time:         r.Time,
	}
}

func FromPayload(payload models.AppointmentPayload) *CreateAppointment {
	return &CreateAppointment{
		Specialty:    payload.Specialty,
		DoctorID:     payload.DoctorID,
		DoctorName:   payload.DoctorName,
		DoctorEmail:  payload.DoctorEmail,
		PatientName:  payload.PatientName,
		PatientEmail: payload.PatientEmail,
		Date:         payload.Date,
		Time:         payload.Time,
	}
}

// UpdateAppointmentStatus carries an explicit lifecycle transition.
type UpdateAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}
