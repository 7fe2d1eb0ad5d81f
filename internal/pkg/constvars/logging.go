package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingClientIDKey      = "client_id"
	LoggingFlowStateKey     = "flow_state"
	LoggingQuestionIndexKey = "question_index"
	LoggingLocationIDKey    = "location_id"
	LoggingRedirectKey      = "redirect_to"
	LoggingStoreKey         = "store_key"
	LoggingBackendPathKey   = "backend_path"
	LoggingStatusCodeKey    = "status_code"
	LoggingErrorTypeKey     = "error_type"
	LoggingDurationKey      = "duration"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingSuccessKey       = "success"
	LoggingResponseCountKey = "response_count"
)
