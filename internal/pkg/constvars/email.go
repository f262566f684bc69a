package constvars

const (
	EmailSendBasicEmailSubjectFormat = "To: %s\r\nSubject: %s\r\n\r\n%s\r\n"
	EmailSendHTMLSubjectFormat       = "To: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s\r\n"

	EmailAppointmentSubjectFormat = "Your telemedicine appointment with %s"

	EmailAppointmentBodyFormat = "Hello %s,\r\n\r\n" +
		"Your appointment with %s on %s at %s is booked.\r\n\r\n" +
		"Video session details:\r\n" +
		"Meeting ID: %s\r\n" +
		"Join URL:   %s\r\n" +
		"Password:   %s\r\n\r\n" +
		"Please join a few minutes early.\r\n"

	EmailAppointmentNoSessionBodyFormat = "Hello %s,\r\n\r\n" +
		"Your appointment with %s on %s at %s is booked.\r\n\r\n" +
		"The video session link will be sent in a follow-up email.\r\n"
)
