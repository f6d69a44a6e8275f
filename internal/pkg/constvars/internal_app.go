package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ADMIN_SESSION_KEY        ContextKey = "admin_session"
)

const (
	REQUEST_ID_PREFIX = "RHB_SVC_"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	DateLayout          = "2006-01-02"
	SlotTimeLayout      = "03:04 PM"
	SlotTimeParseLayout = "3:04 PM"
	DisplayTimeLayout   = "3:04 PM"
	DisplayDayShort     = "Mon, Jan 2"
)

const (
	NextAvailabilityFallbackDisplay = "Today, 9:00 AM"
	NextAvailabilityNoneDisplay     = "Fully booked, check back soon"
)

const (
	RegexPhoneNumber = `^\+?[0-9]{10,15}$`
)

const (
	RetryAfterSeconds = 2
)
