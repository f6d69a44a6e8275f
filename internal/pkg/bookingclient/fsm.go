package bookingclient

import (
	"errors"
	"fmt"
	"rehab-service/internal/pkg/dto/responses"
)

type State int

const (
	StateSlotSelect State = iota
	StateDetailsEntry
	StatePaymentProcessing
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSlotSelect:
		return "SlotSelect"
	case StateDetailsEntry:
		return "DetailsEntry"
	case StatePaymentProcessing:
		return "PaymentProcessing"
	case StateSuccess:
		return "Success"
	case StateFailed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type EventKind int

const (
	EventSlotsLoaded EventKind = iota
	EventSelectSlot
	EventContinue
	EventBack
	EventEditDetails
	EventCheckoutSucceeded
	EventCheckoutCancelled
	EventCheckoutFailed
	EventVerificationSucceeded
	EventVerificationFailed
	EventVerificationConflict
	EventClose
)

func (k EventKind) String() string {
	names := [...]string{
		"SlotsLoaded", "SelectSlot", "Continue", "Back", "EditDetails",
		"CheckoutSucceeded", "CheckoutCancelled", "CheckoutFailed",
		"VerificationSucceeded", "VerificationFailed", "VerificationConflict", "Close",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event carries the payload its Kind needs; other fields are ignored.
type Event struct {
	Kind      EventKind
	Date      string
	Slots     []responses.Slot
	Slot      string
	Details   PatientDetails
	Refs      PaymentRefs
	BookingID int64
	Reason    string
}

// Model is the whole widget state. It is a value: Transition never mutates
// its input.
type Model struct {
	State        State
	Date         string
	Slots        []responses.Slot
	SelectedSlot string
	Details      PatientDetails
	Payment      PaymentRefs
	BookingID    int64
	Notice       string
	Conflict     bool
}

var (
	ErrInvalidTransition = errors.New("bookingclient: invalid transition")
	ErrSlotUnavailable   = errors.New("bookingclient: slot is booked or has passed")
	ErrNoSlotSelected    = errors.New("bookingclient: no slot selected")
)

// Transition returns the model after applying event, or the unchanged model
// and an error when the event is not allowed in the current state.
func Transition(m Model, e Event) (Model, error) {
	next := m
	next.Slots = append([]responses.Slot(nil), m.Slots...)

	switch e.Kind {
	case EventClose:
		// PaymentProcessing ends only with the verification outcome; its
		// payment refs are the patient's reference for support.
		if m.State == StatePaymentProcessing {
			return m, invalid(m, e)
		}
		return Model{State: StateSlotSelect, Date: m.Date}, nil

	case EventSlotsLoaded:
		if m.State != StateSlotSelect {
			return m, invalid(m, e)
		}
		next.Date = e.Date
		next.Slots = append([]responses.Slot(nil), e.Slots...)
		if next.SelectedSlot != "" && !selectable(next.Slots, next.SelectedSlot) {
			next.SelectedSlot = ""
		}
		return next, nil

	case EventSelectSlot:
		if m.State != StateSlotSelect {
			return m, invalid(m, e)
		}
		if !selectable(m.Slots, e.Slot) {
			return m, ErrSlotUnavailable
		}
		next.SelectedSlot = e.Slot
		return next, nil

	case EventContinue:
		if m.State != StateSlotSelect {
			return m, invalid(m, e)
		}
		if m.SelectedSlot == "" {
			return m, ErrNoSlotSelected
		}
		next.State = StateDetailsEntry
		next.Notice = ""
		return next, nil

	case EventBack:
		if m.State != StateDetailsEntry {
			return m, invalid(m, e)
		}
		next.State = StateSlotSelect
		next.Notice = ""
		return next, nil

	case EventEditDetails:
		if m.State != StateDetailsEntry {
			return m, invalid(m, e)
		}
		next.Details = e.Details
		return next, nil

	case EventCheckoutSucceeded:
		if m.State != StateDetailsEntry {
			return m, invalid(m, e)
		}
		next.State = StatePaymentProcessing
		next.Payment = e.Refs
		next.Notice = ""
		return next, nil

	case EventCheckoutCancelled:
		if m.State != StateDetailsEntry {
			return m, invalid(m, e)
		}
		next.Notice = "payment cancelled"
		return next, nil

	case EventCheckoutFailed:
		if m.State != StateDetailsEntry {
			return m, invalid(m, e)
		}
		next.Notice = e.Reason
		return next, nil

	case EventVerificationSucceeded:
		if m.State != StatePaymentProcessing {
			return m, invalid(m, e)
		}
		next.State = StateSuccess
		next.BookingID = e.BookingID
		next.Notice = ""
		return next, nil

	case EventVerificationFailed, EventVerificationConflict:
		if m.State != StatePaymentProcessing {
			return m, invalid(m, e)
		}
		next.State = StateFailed
		next.Notice = e.Reason
		next.Conflict = e.Kind == EventVerificationConflict
		return next, nil
	}

	return m, invalid(m, e)
}

func selectable(slots []responses.Slot, label string) bool {
	for _, slot := range slots {
		if slot.Time == label {
			return !slot.Booked && !slot.Passed
		}
	}
	return false
}

func invalid(m Model, e Event) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, e.Kind, m.State)
}
