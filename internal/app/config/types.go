package config

import "time"

type (
	InternalConfig struct {
		App            App
		JWT            JWT
		Admin          Admin
		PaymentGateway PaymentGateway
		Clinic         Clinic
		Mailer         Mailer
		Minio          MinioBucket
		Reconciler     Reconciler
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		SMTP     SMTP
		RabbitMQ RabbitMQ
		Minio    Minio
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		CorsAllowedOrigins         []string
		MaxRequests                int
		ShutdownTimeout            int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
		RequestTimeout             time.Duration
		LoginMaxAttemptsPerMinute  int
		LoginBlockDuration         time.Duration
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	Admin struct {
		Username string
		Password string
	}

	PaymentGateway struct {
		BaseUrl        string
		KeyID          string
		KeySecret      string
		RequestTimeout time.Duration
		PaymentWindow  time.Duration
	}

	Clinic struct {
		Name                 string
		FeeAmount            int64
		FeeCurrency          string
		SlotLabels           []string
		ClosedWeekdays       []string
		SlotWindowDays       int
		SlotLockTTL          time.Duration
		SlotLockWait         time.Duration
		NextAvailabilityTTL  time.Duration
		NextAvailabilityDays int
		SupportEmail         string
		OrderQuotaPerEmail   int
		OrderQuotaWindow     time.Duration
	}

	Mailer struct {
		QueueName   string
		EmailSender string
		OpsEmail    string
	}

	MinioBucket struct {
		ReceiptBucket     string
		PresignedURLTTL   time.Duration
		ReceiptArchiveOff bool
	}

	Reconciler struct {
		Schedule        string
		LockTTL         time.Duration
		BatchSize       int
		ExpiredLookback time.Duration
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}

	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}

	Minio struct {
		Host     string
		Port     string
		Username string
		Password string
		UseSSL   bool
	}
)
