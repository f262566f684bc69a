package config

import (
	"telecare-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "telecare"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "appointment-attachments"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", ""),
		},
		Logger: Logger{
			Level: utils.GetEnvString("LOGGER_LEVEL", "debug"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUESTS", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
		},
		Conferencing: Conferencing{
			AuthBaseUrl:                utils.GetEnvString("CONFERENCING_AUTH_BASE_URL", "https://zoom.us"),
			APIBaseUrl:                 utils.GetEnvString("CONFERENCING_API_BASE_URL", "https://api.zoom.us/v2"),
			ClientID:                   utils.GetEnvString("CONFERENCING_CLIENT_ID", ""),
			ClientSecret:               utils.GetEnvString("CONFERENCING_CLIENT_SECRET", ""),
			AccountID:                  utils.GetEnvString("CONFERENCING_ACCOUNT_ID", ""),
			TokenSafetyMarginInSeconds: utils.GetEnvInt("CONFERENCING_TOKEN_SAFETY_MARGIN_IN_SECONDS", 60),
			RequestTimeoutInSeconds:    utils.GetEnvInt("CONFERENCING_REQUEST_TIMEOUT_IN_SECONDS", 10),
			MeetingDurationInMinutes:   utils.GetEnvInt("CONFERENCING_MEETING_DURATION_IN_MINUTES", 30),
			RequestsPerSecond:          utils.GetEnvInt("CONFERENCING_REQUESTS_PER_SECOND", 5),
		},
		Notification: Notification{
			QueueName:               utils.GetEnvString("NOTIFICATION_QUEUE_NAME", "appointment_notification_queue"),
			DeadLetterQueueName:     utils.GetEnvString("NOTIFICATION_DLQ_NAME", "appointment_notification_dlq"),
			EmailSender:             utils.GetEnvString("NOTIFICATION_EMAIL_SENDER", ""),
			MaxQueue:                utils.GetEnvInt("NOTIFICATION_MAX_QUEUE", 20),
			ThrottleRetry:           utils.GetEnvInt("NOTIFICATION_THROTTLE_RETRY", 5),
			WorkerIntervalInSeconds: utils.GetEnvInt("NOTIFICATION_WORKER_INTERVAL_IN_SECONDS", 30),
		},
		Sync: Sync{
			StoreBaseUrl:            utils.GetEnvString("SYNC_STORE_BASE_URL", "http://localhost:8080/api/v1"),
			QueueFilePath:           utils.GetEnvString("SYNC_QUEUE_FILE_PATH", "pending_sync_queue.json"),
			MaxRetries:              utils.GetEnvInt("SYNC_MAX_RETRIES", 5),
			RequestTimeoutInSeconds: utils.GetEnvInt("SYNC_REQUEST_TIMEOUT_IN_SECONDS", 10),
			IntervalInSeconds:       utils.GetEnvInt("SYNC_INTERVAL_IN_SECONDS", 60),
		},
	}
}
