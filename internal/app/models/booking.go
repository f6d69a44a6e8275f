package models

import "time"

type BookingStatus string

const (
	BookingStatusPending       BookingStatus = "Pending"
	BookingStatusConfirmed     BookingStatus = "Confirmed"
	BookingStatusExpired       BookingStatus = "Expired"
	BookingStatusRefundPending BookingStatus = "RefundPending"
	BookingStatusRefunded      BookingStatus = "Refunded"
)

func (s BookingStatus) String() string {
	return string(s)
}

// Booking is one patient's claim on a (Date, Time) slot. Amount is kept in
// minor currency units as charged by the payment gateway.
type Booking struct {
	ID                int64         `bson:"_id" json:"id"`
	Name              string        `bson:"name" json:"name"`
	Email             string        `bson:"email" json:"email"`
	Phone             string        `bson:"phone" json:"phone"`
	Date              string        `bson:"date" json:"date"`
	Time              string        `bson:"time" json:"time"`
	Status            BookingStatus `bson:"status" json:"status"`
	OrderID           string        `bson:"order_id" json:"order_id"`
	PaymentID         string        `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Amount            int64         `bson:"amount" json:"amount"`
	Currency          string        `bson:"currency" json:"currency"`
	Receipt           string        `bson:"receipt" json:"receipt"`
	RefundID          string        `bson:"refund_id,omitempty" json:"refund_id,omitempty"`
	ReceiptObject     string        `bson:"receipt_object,omitempty" json:"receipt_object,omitempty"`
	NotificationCount int           `bson:"notification_count" json:"notification_count"`
	CreatedAt         time.Time     `bson:"created_at" json:"created_at"`
	ConfirmedAt       *time.Time    `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	LastNotifiedAt    *time.Time    `bson:"last_notified_at,omitempty" json:"last_notified_at,omitempty"`
	UpdatedAt         time.Time     `bson:"updated_at" json:"updated_at"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// BookingFilter narrows repository reads; zero values match everything.
type BookingFilter struct {
	Date          string
	Statuses      []BookingStatus
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	Limit         int64
}
