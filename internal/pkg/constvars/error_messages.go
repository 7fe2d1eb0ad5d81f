package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":             "is required",
	"email":                "must be a valid email",
	"min":                  "must be at least %s characters long",
	"max":                  "maximum at %s characters long",
	"oneof":                "must be one of [%s]",
	"gte":                  "must be greater than or equal to %s",
	"lte":                  "must be less than or equal to %s",
	"latitude":             "must be a valid latitude",
	"longitude":            "must be a valid longitude",
	"datetime":             "must be a valid date in format %s",
	"required_with":        "is required when %s is present",
	"required_without":     "is required when %s is not present",
	"required_without_all": "is required when none of %s are present",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":                  true,
	"max":                  true,
	"oneof":                true,
	"gte":                  true,
	"lte":                  true,
	"datetime":             true,
	"required_with":        true,
	"required_without":     true,
	"required_without_all": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process your request, please try again"
	ErrClientSomethingWrongWithApplication = "something went wrong, please try again later"
	ErrClientServerLongRespond             = "the server is taking too long to respond, please try again"
	ErrClientNotLoggedIn                   = "please log in to continue"
	ErrClientBackendUnavailable            = "we could not reach CareRouter right now, please try again"
	ErrClientInvalidCredentials            = "invalid email or password"
	ErrClientNoActiveAssessment            = "no assessment in progress"
	ErrClientNoPathway                     = "no results found, please take the assessment"
	ErrClientNoBookingReceipt              = "no booking found"
	ErrClientLocationNotFound              = "location not found"
	ErrClientSlotNotAvailable              = "the selected time slot is not available"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientExportFailed                  = "could not prepare your pathway for printing"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevValidationFailed       = "validation failed"
	ErrDevCannotParseJSON        = "cannot parse JSON request body"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevCannotUnmarshalJSON    = "cannot unmarshal JSON"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevDecodeResponse         = "failed to decode HTTP response body"
	ErrDevBackendStatus          = "backend responded with status %d"
	ErrDevBackendUnauthorized    = "backend rejected the bearer token"
	ErrDevMissingToken           = "no bearer token stored for client"
	ErrDevMissingAccessToken     = "backend login response has no token"
	ErrDevStoreGet               = "failed to read key %s from store"
	ErrDevStoreSet               = "failed to write key %s to store"
	ErrDevStoreDelete            = "failed to delete key %s from store"
	ErrDevUnknownStoreBackend    = "unknown store backend %s"
	ErrDevNoActiveFlow           = "no assessment flow registered for client"
	ErrDevNoPathway              = "no stored pathway for client"
	ErrDevNoReceipt              = "no booking receipt for client"
	ErrDevLocationNotFound       = "location %s not found"
	ErrDevSlotNotAvailable       = "slot %s %s not offered for location %s"
	ErrDevMinioPutObject         = "failed to upload object to minio"
	ErrDevMinioPresign           = "failed to presign minio object"
	ErrDevRabbitMQPublish        = "failed to publish message to rabbitmq"
	ErrDevCatalogRead            = "failed to read question catalog file"
	ErrDevCatalogParse           = "failed to parse question catalog file"
	ErrDevCatalogInvalid         = "question catalog is invalid: %s"
	ErrDevRateLimited            = "rate limit exceeded"
	ErrDevRecoveredPanic         = "recovered from panic: %v"
)
