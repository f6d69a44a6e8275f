package constvars

const (
	RedisKeyAdminSessionPrefix    = "admin-session:"
	RedisKeySlotLockFormat        = "slot-lock:%s:%s"
	RedisKeyReconcileLeader       = "reconcile:leader"
	RedisKeyNextAvailabilityCache = "cache:next-availability"
)

const (
	RateLimitGroupCreateOrder = "create-order"
)
