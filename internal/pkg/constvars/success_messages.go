package constvars

const (
	ResponseSuccess = "success"

	LoginSuccessMessage       = "successfully login"
	LogoutSuccessMessage      = "successfully logout"
	ResendEmailSuccessMessage = "confirmation email queued"
	PaymentVerifiedMessage    = "payment verified, booking confirmed"
	HealthyMessage            = "ok"
)
