package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_CLIENT_ID_KEY  ContextKey = "client_id"
)

const (
	REQUEST_ID_PREFIX = "CRW_"
)

const (
	ClientIDCookieName = "carerouter_client"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

// Client storage keys, shared with the browser client.
const (
	StorageKeyAuthToken      = "auth_token"
	StorageKeyPathway        = "pathway"
	StorageKeyBookingReceipt = "carerouter_booking_receipt"
)

// Client views a flow can navigate to.
const (
	ViewAssessment          = "/assessment"
	ViewResults             = "/results"
	ViewLogin               = "/login"
	ViewMap                 = "/map"
	ViewBookingConfirmation = "/map/confirmation"
)

const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
	StoreBackendMongo  = "mongo"
	StoreBackendSQLite = "sqlite"
)

const (
	BookingConfirmedEvent       = "booking.confirmed"
	ChatMessageSkipped          = "(skipped)"
	ChatMessageConnectionFailed = "I'm having trouble connecting right now. I'll take you to your results page."
)
