package config

type (
	InternalConfig struct {
		App          App
		Conferencing Conferencing
		Notification Notification
		Sync         Sync
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
		Logger   Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Timezone                   string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeoutInSeconds   int
		RequestTimeoutInSeconds    int
		RequestBodyLimitInMegabyte int
	}

	// Conferencing holds the third-party video provider credentials and the
	// knobs of the token cache and session provisioner.
	Conferencing struct {
		AuthBaseUrl                string
		APIBaseUrl                 string
		ClientID                   string
		ClientSecret               string
		AccountID                  string
		TokenSafetyMarginInSeconds int
		RequestTimeoutInSeconds    int
		MeetingDurationInMinutes   int
		RequestsPerSecond          int
	}

	Notification struct {
		QueueName               string
		DeadLetterQueueName     string
		EmailSender             string
		MaxQueue                int
		ThrottleRetry           int
		WorkerIntervalInSeconds int
	}

	// Sync configures the client-side submission path: the appointment store
	// base URL, the durable queue location and the reconciler policy.
	Sync struct {
		StoreBaseUrl            string
		QueueFilePath           string
		MaxRetries              int
		RequestTimeoutInSeconds int
		IntervalInSeconds       int
	}

	MongoDB struct {
		Host     string
		Port     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}

	Minio struct {
		Host       string
		Port       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}

	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}

	Logger struct {
		Level string
	}
)
