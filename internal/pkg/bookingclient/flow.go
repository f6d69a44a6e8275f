package bookingclient

import (
	"context"
	"errors"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"sync"
)

// Fee is the consultation fee the widget sends with every order.
type Fee struct {
	Amount   int64
	Currency string
}

// Flow drives one booking widget: it owns the Model, feeds it events from
// the service and the checkout, and discards slot answers for dates the user
// has already moved away from.
type Flow struct {
	client   *Client
	checkout Checkout
	fee      Fee
	keyID    string
	clinic   string

	mu        sync.Mutex
	model     Model
	wantDate  string
	fetchSeq  uint64
	listeners []func(Model)
}

func NewFlow(client *Client, checkout Checkout, fee Fee, keyID, clinicName string) *Flow {
	return &Flow{
		client:   client,
		checkout: checkout,
		fee:      fee,
		keyID:    keyID,
		clinic:   clinicName,
		model:    Model{State: StateSlotSelect},
	}
}

func (f *Flow) Model() Model {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.model
}

// OnChange registers a callback invoked after every applied event.
func (f *Flow) OnChange(fn func(Model)) {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

func (f *Flow) dispatch(e Event) error {
	f.mu.Lock()
	next, err := Transition(f.model, e)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.model = next
	listeners := append([]func(Model){}, f.listeners...)
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// LoadSlots fetches slots for date. It reports false when a later LoadSlots
// call superseded this one, in which case the answer is dropped. Fetch errors
// show as an empty slot list.
func (f *Flow) LoadSlots(ctx context.Context, date string) (bool, error) {
	f.mu.Lock()
	f.wantDate = date
	f.fetchSeq++
	seq := f.fetchSeq
	f.mu.Unlock()

	slots, fetchErr := f.client.GetSlots(ctx, date)
	if fetchErr != nil {
		slots = []responses.Slot{}
	}

	f.mu.Lock()
	current := f.fetchSeq == seq && f.wantDate == date
	f.mu.Unlock()
	if !current {
		return false, nil
	}

	if err := f.dispatch(Event{Kind: EventSlotsLoaded, Date: date, Slots: slots}); err != nil {
		return false, err
	}
	return true, fetchErr
}

func (f *Flow) SelectSlot(label string) error {
	return f.dispatch(Event{Kind: EventSelectSlot, Slot: label})
}

func (f *Flow) Continue() error {
	return f.dispatch(Event{Kind: EventContinue})
}

func (f *Flow) Back() error {
	return f.dispatch(Event{Kind: EventBack})
}

func (f *Flow) Close() error {
	return f.dispatch(Event{Kind: EventClose})
}

// Pay validates details, creates the order, waits for the checkout and then
// verifies the payment. It returns the final model.
func (f *Flow) Pay(ctx context.Context, details PatientDetails) (Model, error) {
	details = details.normalized()
	if err := ValidateDetails(details); err != nil {
		return f.Model(), err
	}
	if err := f.dispatch(Event{Kind: EventEditDetails, Details: details}); err != nil {
		return f.Model(), err
	}

	m := f.Model()
	order, err := f.client.CreateOrder(ctx, &requests.CreateOrder{
		Amount:   f.fee.Amount,
		Currency: f.fee.Currency,
		Date:     m.Date,
		Slot:     m.SelectedSlot,
		Name:     details.Name,
		Email:    details.Email,
		Phone:    details.Phone,
	})
	if err != nil {
		reason := "payment initialization failed"
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			reason = apiErr.Message
		}
		_ = f.dispatch(Event{Kind: EventCheckoutFailed, Reason: reason})
		return f.Model(), err
	}

	result := awaitPayment(ctx, f.checkout.Open(ctx, CheckoutOptions{
		KeyID:       f.keyID,
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        f.clinic,
		Description: "Doctor Consultation Fee",
		Prefill:     details,
	}))

	switch result.Outcome {
	case PaymentCancelled:
		return f.Model(), f.dispatch(Event{Kind: EventCheckoutCancelled})
	case PaymentFailed:
		return f.Model(), f.dispatch(Event{Kind: EventCheckoutFailed, Reason: result.Reason})
	}

	if err := f.dispatch(Event{Kind: EventCheckoutSucceeded, Refs: result.Refs}); err != nil {
		return f.Model(), err
	}

	verified, err := f.client.VerifyPayment(ctx, &requests.VerifyPayment{
		RazorpayOrderID:   result.Refs.OrderID,
		RazorpayPaymentID: result.Refs.PaymentID,
		RazorpaySignature: result.Refs.Signature,
		Date:              m.Date,
		Slot:              m.SelectedSlot,
		Email:             details.Email,
		Name:              details.Name,
		Phone:             details.Phone,
	})
	switch {
	case err == nil:
		_ = f.dispatch(Event{Kind: EventVerificationSucceeded, BookingID: verified.BookingID})
	case IsConflict(err):
		_ = f.dispatch(Event{Kind: EventVerificationConflict, Reason: messageOf(err)})
	default:
		_ = f.dispatch(Event{Kind: EventVerificationFailed, Reason: "payment successful but verification failed, please contact support"})
	}
	return f.Model(), err
}

func messageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
