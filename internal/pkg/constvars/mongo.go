package constvars

const (
	MongoCollectionAppointments = "appointments"
)
