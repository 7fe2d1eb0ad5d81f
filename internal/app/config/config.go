package config

import (
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:       utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:       utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:     utils.GetEnvString("MONGODB_DB_NAME", "carerouter"),
			Collection: utils.GetEnvString("MONGODB_CLIENT_STATE_COLLECTION", "client_state"),
			Username:   utils.GetEnvString("MONGODB_USERNAME", ""),
			Password:   utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			MaxSizeInMegabyte:   utils.GetEnvInt("LOGGER_MAX_SIZE_IN_MEGABYTE", 100),
			MaxBackups:          utils.GetEnvInt("LOGGER_MAX_BACKUPS", 5),
			MaxAgeInDays:        utils.GetEnvInt("LOGGER_MAX_AGE_IN_DAYS", 28),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", ""),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:    utils.GetEnvString("RABBITMQ_VHOST", "/"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", ""),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SQLite: SQLite{
			Path: utils.GetEnvString("SQLITE_PATH", "carerouter.db"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "America/Toronto"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			CorsAllowedOrigins:         utils.GetEnvList("APP_CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			DurableStore:               utils.GetEnvString("APP_DURABLE_STORE", constvars.StoreBackendMemory),
			SessionStore:               utils.GetEnvString("APP_SESSION_STORE", constvars.StoreBackendMemory),
			ReceiptTTLInMinutes:        utils.GetEnvInt("APP_RECEIPT_TTL_IN_MINUTES", 60),
			TokenTTLInHours:            utils.GetEnvInt("APP_TOKEN_TTL_IN_HOURS", 24),
			JanitorCronSpec:            utils.GetEnvString("APP_JANITOR_CRON_SPEC", "@every 5m"),
			IdleFlowTTLInMinutes:       utils.GetEnvInt("APP_IDLE_FLOW_TTL_IN_MINUTES", 30),
			QuestionCatalogFilePath:    utils.GetEnvString("APP_QUESTION_CATALOG_FILE_PATH", ""),
			AnswerRateLimitPerMinute:   utils.GetEnvInt("APP_ANSWER_RATE_LIMIT_PER_MINUTE", 60),
			AnswerBlockTimeInSeconds:   utils.GetEnvInt("APP_ANSWER_BLOCK_TIME_IN_SECONDS", 30),
		},
		Flow: Flow{
			RevealDelay:          utils.GetEnvMillis("APP_REVEAL_DELAY_MS", 0),
			FailureRedirectDelay: utils.GetEnvMillis("APP_FAILURE_REDIRECT_DELAY_MS", 2000),
			LocationTimeout:      utils.GetEnvMillis("APP_LOCATION_TIMEOUT_MS", 1500),
			SubmitTimeout:        time.Duration(utils.GetEnvInt("APP_SUBMIT_TIMEOUT_IN_SECONDS", 30)) * time.Second,
		},
		CareRouter: AppCareRouter{
			BaseUrl:              utils.GetEnvString("CAREROUTER_API_URL", "http://localhost:8000"),
			HTTPTimeoutInSeconds: utils.GetEnvInt("CAREROUTER_HTTP_TIMEOUT_IN_SECONDS", 30),
			SyncBookings:         utils.GetEnvBool("CAREROUTER_SYNC_BOOKINGS", false),
		},
		Minio: AppMinio{
			BucketName:                    utils.GetEnvString("APP_MINIO_BUCKET_NAME", "carerouter-pathways"),
			PreSignedUrlExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_EXPIRY_TIME_IN_HOURS", 24),
		},
		RabbitMQ: AppRabbitMQ{
			BookingQueue: utils.GetEnvString("APP_RABBITMQ_BOOKING_QUEUE", "carerouter.bookings"),
		},
	}
}
