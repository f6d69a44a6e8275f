package constvars

const (
	GatewayOrderStatusCreated   = "created"
	GatewayOrderStatusAttempted = "attempted"
	GatewayOrderStatusPaid      = "paid"
)

const (
	GatewayNoteDate  = "date"
	GatewayNoteSlot  = "slot"
	GatewayNoteName  = "name"
	GatewayNoteEmail = "email"
	GatewayNotePhone = "phone"
)

const (
	ReceiptObjectKeyFormat = "receipts/%s/booking-%d.txt"
	ReceiptContentType     = "text/plain; charset=utf-8"
)

const (
	GatewayPaymentStatusCaptured   = "captured"
	GatewayPaymentStatusAuthorized = "authorized"
)

const (
	RefundReasonSlotTaken = "slot_taken"
)
