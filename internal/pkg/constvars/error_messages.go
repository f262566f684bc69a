package constvars

// Client-facing messages. These are the only strings allowed to reach API consumers.
const (
	ErrClientCannotProcessRequest          = "Cannot process your request, please check and try again"
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"
	ErrClientAppointmentAlreadyBooked      = "An appointment with this doctor at the requested time already exists"
	ErrClientSlotInPast                    = "The requested appointment time is in the past"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientInvalidStatusTransition       = "The appointment status cannot be changed this way"
	ErrClientVideoSessionUnavailable       = "The video session could not be scheduled, your appointment is still booked"
	ErrClientBookingQueued                 = "Booking accepted and will be synchronized shortly"
	ErrClientBookingContended              = "Another booking for this slot is being processed, please try again"
)

// Developer-facing messages, logged but never returned to clients in production.
const (
	ErrDevValidationFailed         = "request validation failed"
	ErrDevCannotParseJSON          = "failed to parse JSON body"
	ErrDevCannotParseMultipartForm = "failed to parse multipart form"
	ErrDevCannotMarshalJSON        = "failed to marshal value to JSON"
	ErrDevCannotParseDate          = "failed to parse appointment date"
	ErrDevCannotParseTime          = "failed to parse appointment time"
	ErrDevMissingRequestID         = "request id not found in request context"

	ErrDevCreateHTTPRequest = "failed to build HTTP request"
	ErrDevSendHTTPRequest   = "failed to send HTTP request"
	ErrDevDecodeResponse    = "failed to decode response body: %s"

	ErrDevTokenExchange         = "provider token exchange failed"
	ErrDevTokenResponseInvalid  = "provider token response missing access_token"
	ErrDevMeetingCreate         = "provider meeting creation failed"
	ErrDevMeetingResponseNoID   = "provider meeting response missing meeting id"
	ErrDevProviderRateLimited   = "outbound provider rate limiter rejected the call"
	ErrDevMeetingAuthUnderlying = "meeting creation aborted, token acquisition failed"

	ErrDevMongoDBFindDocument   = "mongodb: failed to find document"
	ErrDevMongoDBInsertDocument = "mongodb: failed to insert document"
	ErrDevMongoDBUpdateDocument = "mongodb: failed to update document"
	ErrDevMongoDBNotObjectID    = "mongodb: value is not a valid object id"
	ErrDevAppointmentDuplicate  = "appointment with same patient, doctor, date and time already exists"
	ErrDevSlotInPast            = "appointment slot is in the past"
	ErrDevAppointmentNotFound   = "appointment document not found"
	ErrDevStatusTransition      = "illegal appointment status transition %s -> %s"

	ErrDevRedisSetData       = "redis: failed to set data"
	ErrDevRedisGetData       = "redis: failed to get data"
	ErrDevRedisDeleteData    = "redis: failed to delete data"
	ErrDevRedisGetNoData     = "redis: no data for key %s"
	ErrDevRedisUnlock        = "redis: failed to release lock"
	ErrDevLockNotAcquired    = "lock for key %s is held by another caller"
	ErrDevRabbitMQPublish    = "rabbitmq: failed to publish message to queue %s"
	ErrDevRabbitMQNotConfirm = "rabbitmq: broker did not confirm publish to queue %s"

	ErrDevMinioCreateObject = "minio: failed to store object in bucket %s"
	ErrDevMinioPresignedURL = "minio: failed to build presigned URL in bucket %s"

	ErrDevSMTPSendEmail = "smtp: failed to send email through %s"

	ErrDevPendingQueueRead    = "pending queue: failed to read queue file"
	ErrDevPendingQueueWrite   = "pending queue: failed to write queue file"
	ErrDevPendingQueueCorrupt = "pending queue: queue file is not valid JSON"

	ErrDevSubmitRejected  = "server rejected the booking: %s"
	ErrDevSubmitContended = "server is processing a concurrent booking for the same slot"
)
