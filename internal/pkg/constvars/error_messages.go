package constvars

// Validation messages for request DTOs, keyed by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email",
	"min":          "must be at least %s characters long",
	"max":          "maximum at %s characters long",
	"gt":           "must be greater than %s",
	"len":          "must be exactly %s characters long",
	"oneof":        "must be one of %s",
	"datetime":     "must follow the %s format",
	"phone_number": "must be a valid phone number with 10 to 15 digits",
	"slot_time":    "must be a time label like 10:00 AM",
}

var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"gt":       true,
	"len":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidUsernameOrPassword     = "invalid admin credentials"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientInvalidDate                   = "date must follow the YYYY-MM-DD format"
	ErrClientSlotNotOffered                = "the selected slot is not available on that date"
	ErrClientSlotPassed                    = "the selected slot has already passed, please choose another slot"
	ErrClientSlotAlreadyBooked             = "this slot has already been booked, please choose another slot"
	ErrClientSlotBusy                      = "this slot is being confirmed for another patient, please retry in a moment"
	ErrClientFeeMismatch                   = "the consultation fee does not match, please refresh and try again"
	ErrClientPaymentVerificationFailed     = "payment verification failed, please contact support with your payment reference"
	ErrClientBookingNotFound               = "booking not found"
	ErrClientBookingNotConfirmed           = "booking is not confirmed yet"
	ErrClientReceiptNotAvailable           = "receipt is not available for this booking"
	ErrClientPaymentGatewayUnavailable     = "payment service is unavailable, please try again"
	ErrClientSlotTakenRefundFormat         = "slot already taken, your payment will be refunded. Please contact support with payment reference %s"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotParseForm            = "cannot parse form body"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevInvalidDate                = "invalid date %q"
	ErrDevURLParamIDValidationFailed = "url param %s is not a valid id"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevServerDeadlineExceeded     = "deadline exceeded"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevPanicRecovered             = "panic recovered"

	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevInvalidCredentials        = "invalid credentials"
	ErrDevFailedToHashPassword      = "failed to hash password"
	ErrDevRateLimited               = "rate limit exceeded for %s"

	ErrDevSlotNotOffered         = "slot %s is not part of the schedule on %s"
	ErrDevSlotPassed             = "slot %s on %s has already passed"
	ErrDevSlotAlreadyBooked      = "slot %s on %s already has a confirmed booking"
	ErrDevSlotLockWaitTimeout    = "timed out waiting for lock %s"
	ErrDevFeeMismatch            = "fee mismatch: got %d %s, expected %d %s"
	ErrDevPaymentSignature       = "payment signature mismatch for order %s"
	ErrDevBookingNotFound        = "booking not found for %s"
	ErrDevBookingNotPending      = "booking %d is %s, expected Pending"
	ErrDevBookingNotConfirmed    = "booking %d is %s, expected Confirmed"
	ErrDevReceiptNotAvailable    = "booking %d has no archived receipt"
	ErrDevPaymentGatewayRequest  = "payment gateway request to %s failed"
	ErrDevPaymentGatewayResponse = "payment gateway %s responded with status %d: %s"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToCreateIndex      = "failed to create index on %s"
	ErrDevDBFailedToIncrementCounter = "failed to increment counter %s"

	ErrDevRedisGetNoData      = "failed to get data from redis with key %s"
	ErrDevRedisSetData        = "failed to set data into redis"
	ErrDevRedisDeleteData     = "failed to delete data from redis"
	ErrDevRedisUnlock         = "failed to release redis lock"
	ErrDevRabbitMQPublish     = "failed to publish message to queue %s"
	ErrDevSMTPSendEmail       = "failed to send email via %s"
	ErrDevMinioCreateObject   = "failed to create object in bucket %s"
	ErrDevMinioPresignedURL   = "failed to create presigned url in bucket %s"
	ErrDevCreateHTTPRequest   = "failed to create HTTP request"
	ErrDevSendHTTPRequest     = "failed to send HTTP request"
	ErrDevDecodeHTTPResponse  = "failed to decode HTTP response from %s"
	ErrDevScheduleInvalidSlot = "invalid schedule slot label %q"
)

const (
	ErrLocationUnknown = "unknown"
)
