package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingRequestKey            = "request"
	LoggingResponseKey           = "response"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingOperationKey          = "operation"
	LoggingErrorTypeKey          = "error_type"
	LoggingErrorCodeKey          = "error_code"
	LoggingErrorMessageKey       = "error_message"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingQueueNameKey          = "queue_name"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"

	LoggingBookingIDKey   = "booking_id"
	LoggingOrderIDKey     = "order_id"
	LoggingPaymentIDKey   = "payment_id"
	LoggingSlotDateKey    = "slot_date"
	LoggingSlotTimeKey    = "slot_time"
	LoggingBookingStatus  = "booking_status"
	LoggingAdminUsername  = "admin_username"
	LoggingSessionIDKey   = "session_id"
	LoggingCountKey       = "count"
	LoggingGatewayURLKey  = "gateway_url"
	LoggingGatewayCodeKey = "gateway_status_code"
)
