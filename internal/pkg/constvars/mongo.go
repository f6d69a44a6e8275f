package constvars

const (
	MongoCollectionBookings = "bookings"
	MongoCollectionCounters = "counters"
	MongoCollectionAdmins   = "admins"

	MongoCounterBookingID = "booking_id"
)
