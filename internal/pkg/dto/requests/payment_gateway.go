package requests

type GatewayCreateOrder struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type GatewayRefund struct {
	Amount int64             `json:"amount,omitempty"`
	Speed  string            `json:"speed,omitempty"`
	Notes  map[string]string `json:"notes,omitempty"`
}
