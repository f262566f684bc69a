package constvars

const (
	CreateAppointmentSuccessMessage       = "Successfully created appointment"
	GetAppointmentSuccessMessage          = "Successfully retrieved appointments"
	UpdateAppointmentStatusSuccessMessage = "Successfully updated appointment status"
)
