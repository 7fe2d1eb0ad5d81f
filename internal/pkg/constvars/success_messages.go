package constvars

const (
	ResponseSuccess = "success"
	ResponseUnknown = "unknown"

	ResponseLoggedIn            = "logged in successfully"
	ResponseSignedUp            = "account created successfully"
	ResponseLoggedOut           = "logged out successfully"
	ResponseAssessmentStarted   = "assessment started"
	ResponseAnswerAccepted      = "answer accepted"
	ResponseAnswerIgnored       = "answer ignored"
	ResponseAssessmentAbandoned = "assessment abandoned"
	ResponseRedirect            = "redirect"
	ResponseBookingConfirmed    = "booking confirmed"
	ResponseProfileUpdated      = "profile updated"
	ResponsePathwayExported     = "pathway exported"
)
