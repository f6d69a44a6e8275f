package requests

type EmailPayload struct {
	Type      string   `json:"type"`
	BookingID int64    `json:"booking_id,omitempty"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
}
