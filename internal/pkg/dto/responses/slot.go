package responses

type Slot struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
	Passed bool   `json:"passed"`
}

type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

type NextAvailability struct {
	Display string `json:"display"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
}
