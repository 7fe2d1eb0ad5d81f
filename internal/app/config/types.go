package config

import "time"

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
		SQLite   SQLite
	}
	MongoDB struct {
		Port       string
		Host       string
		Username   string
		Password   string
		DbName     string
		Collection string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
		MaxSizeInMegabyte   int
		MaxBackups          int
		MaxAgeInDays        int
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
		VHost    string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	SQLite struct {
		Path string
	}
)

type InternalConfig struct {
	App        App
	Flow       Flow
	CareRouter AppCareRouter
	Minio      AppMinio
	RabbitMQ   AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	CorsAllowedOrigins         []string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	// DurableStore and SessionStore select a sessionstore backend:
	// memory, redis, mongo or sqlite.
	DurableStore            string
	SessionStore            string
	ReceiptTTLInMinutes     int
	TokenTTLInHours         int
	JanitorCronSpec         string
	IdleFlowTTLInMinutes    int
	QuestionCatalogFilePath string
	// Per-client limit on the answer and skip endpoints.
	AnswerRateLimitPerMinute int
	AnswerBlockTimeInSeconds int
}

// Flow holds the assessment pacing.
type Flow struct {
	RevealDelay          time.Duration
	FailureRedirectDelay time.Duration
	LocationTimeout      time.Duration
	SubmitTimeout        time.Duration
}

type AppCareRouter struct {
	BaseUrl              string
	HTTPTimeoutInSeconds int
	SyncBookings         bool
}

type AppMinio struct {
	BucketName                    string
	PreSignedUrlExpiryTimeInHours int
}

type AppRabbitMQ struct {
	BookingQueue string
}
