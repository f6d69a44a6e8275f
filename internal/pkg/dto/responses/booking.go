package responses

import "time"

type CreateOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type VerifyPayment struct {
	Status    string `json:"status"`
	BookingID int64  `json:"booking_id"`
	Message   string `json:"message"`
}

// Booking is the admin view; Amount is in major currency units.
type Booking struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	OrderID     string     `json:"order_id"`
	PaymentID   string     `json:"payment_id,omitempty"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

type Receipt struct {
	BookingID int64     `json:"booking_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
