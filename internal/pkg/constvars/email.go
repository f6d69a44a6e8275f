package constvars

const (
	EmailSendBasicEmailSubjectFormat = "From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n"
	EmailSendHTMLSubjectFormat       = "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s\r\n"
)

const (
	EmailBookingConfirmedSubject = "[%s] Appointment confirmed for %s at %s"
	EmailBookingConfirmedBody    = "Hi %s,\r\n\r\nYour appointment is confirmed for %s at %s.\r\nBooking ID: %d\r\nPayment reference: %s\r\nAmount paid: %s %s\r\n\r\nSee you soon,\r\n%s"

	EmailRefundRequiredSubject = "[%s] Refund required for payment %s"
	EmailRefundRequiredBody    = "A verified payment lost the slot race and needs a refund.\r\n\r\nBooking ID: %d\r\nOrder: %s\r\nPayment: %s\r\nSlot: %s %s\r\nPatient: %s <%s> %s\r\nAutomatic refund: %s"
)

const (
	MailerMessageTypeBookingConfirmed = "booking_confirmed"
	MailerMessageTypeRefundRequired   = "refund_required"
)
