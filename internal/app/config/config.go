package config

import (
	"rehab-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "rehab"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", "noreply@rehab5.in"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8000"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			CorsAllowedOrigins:         utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			RequestTimeout:             utils.GetEnvDuration("APP_REQUEST_TIMEOUT", 15*time.Second),
			LoginMaxAttemptsPerMinute:  utils.GetEnvInt("APP_LOGIN_MAX_ATTEMPTS_PER_MINUTE", 5),
			LoginBlockDuration:         utils.GetEnvDuration("APP_LOGIN_BLOCK_DURATION", 5*time.Minute),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 12),
		},
		Admin: Admin{
			Username: utils.GetEnvString("ADMIN_USERNAME", "admin"),
			Password: utils.GetEnvString("ADMIN_PASSWORD", ""),
		},
		PaymentGateway: PaymentGateway{
			BaseUrl:        utils.GetEnvString("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
			KeyID:          utils.GetEnvString("RAZORPAY_KEY_ID", ""),
			KeySecret:      utils.GetEnvString("RAZORPAY_KEY_SECRET", ""),
			RequestTimeout: utils.GetEnvDuration("RAZORPAY_REQUEST_TIMEOUT", 10*time.Second),
			PaymentWindow:  utils.GetEnvDuration("RAZORPAY_PAYMENT_WINDOW", 30*time.Minute),
		},
		Clinic: Clinic{
			Name:                 utils.GetEnvString("CLINIC_NAME", "Rehab 5"),
			FeeAmount:            utils.GetEnvInt64("CLINIC_FEE_AMOUNT", 50000),
			FeeCurrency:          utils.GetEnvString("CLINIC_FEE_CURRENCY", "INR"),
			SlotLabels:           utils.GetEnvStringSlice("CLINIC_SLOT_LABELS", []string{"10:00 AM", "11:00 AM", "12:00 PM", "02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM", "06:00 PM"}),
			ClosedWeekdays:       utils.GetEnvStringSlice("CLINIC_CLOSED_WEEKDAYS", []string{"Sunday"}),
			SlotWindowDays:       utils.GetEnvInt("SLOT_WINDOW_DAYS", 7),
			SlotLockTTL:          utils.GetEnvDuration("SLOT_LOCK_TTL", 10*time.Second),
			SlotLockWait:         time.Duration(utils.GetEnvInt("SLOT_LOCK_WAIT_SECONDS", 5)) * time.Second,
			NextAvailabilityTTL:  utils.GetEnvDuration("NEXT_AVAILABILITY_CACHE_TTL", time.Minute),
			NextAvailabilityDays: utils.GetEnvInt("NEXT_AVAILABILITY_LOOKAHEAD_DAYS", 14),
			SupportEmail:         utils.GetEnvString("CLINIC_SUPPORT_EMAIL", "support@rehab5.in"),
			OrderQuotaPerEmail:   utils.GetEnvInt("CLINIC_ORDER_QUOTA_PER_EMAIL", 10),
			OrderQuotaWindow:     utils.GetEnvDuration("CLINIC_ORDER_QUOTA_WINDOW", time.Hour),
		},
		Mailer: Mailer{
			QueueName:   utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "rehab.mailer"),
			EmailSender: utils.GetEnvString("APP_MAILER_EMAIL_SENDER", "noreply@rehab5.in"),
			OpsEmail:    utils.GetEnvString("APP_MAILER_OPS_EMAIL", "ops@rehab5.in"),
		},
		Minio: MinioBucket{
			ReceiptBucket:     utils.GetEnvString("MINIO_RECEIPT_BUCKET", "rehab-receipts"),
			PresignedURLTTL:   utils.GetEnvDuration("MINIO_PRESIGNED_URL_TTL", 15*time.Minute),
			ReceiptArchiveOff: utils.GetEnvBool("MINIO_RECEIPT_ARCHIVE_DISABLED", false),
		},
		Reconciler: Reconciler{
			Schedule:        utils.GetEnvString("RECONCILER_SCHEDULE", "*/5 * * * *"),
			LockTTL:         utils.GetEnvDuration("RECONCILER_LOCK_TTL", 2*time.Minute),
			BatchSize:       utils.GetEnvInt("RECONCILER_BATCH_SIZE", 50),
			ExpiredLookback: utils.GetEnvDuration("RECONCILER_EXPIRED_LOOKBACK", 48*time.Hour),
		},
	}
}
