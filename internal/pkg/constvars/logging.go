package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingDataKey            = "data"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingResponseLengthKey  = "response_length"
	LoggingAppointmentIDKey   = "appointment_id"
	LoggingLocalIDKey         = "local_id"
	LoggingMeetingIDKey       = "meeting_id"
	LoggingRecipientKey       = "recipient"
	LoggingTaskIDKey          = "task_id"
	LoggingQueueNameKey       = "queue_name"
	LoggingRedisKey           = "redis_key"
	LoggingUniquenessKey      = "uniqueness_key"
	LoggingRetryCountKey      = "retry_count"
	LoggingAttemptKey         = "attempt"
	LoggingProviderURLKey     = "provider_url"
	LoggingObjectNameKey      = "object_name"
	LoggingLockValueKey       = "lock_value"
	LoggingLockExpirationKey  = "lock_expiration"
	LoggingPendingEntriesKey  = "pending_entries"
	LoggingWarningKey         = "warning"
	LoggingTokenExpiryKey     = "token_expiry"
	LoggingLockStoredValueKey = "lock_stored_value"
)
