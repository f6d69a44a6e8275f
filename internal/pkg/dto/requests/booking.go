package requests

type CreateOrder struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,len=3"`
	Receipt  string `json:"receipt" validate:"max=40"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Slot     string `json:"slot" validate:"required,slot_time"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone_number"`
}

// VerifyPayment carries the checkout callback plus the patient details the
// widget still holds. Only the three gateway references are authoritative.
type VerifyPayment struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	Date              string `json:"date"`
	Slot              string `json:"slot"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
}

type ListBookings struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}
