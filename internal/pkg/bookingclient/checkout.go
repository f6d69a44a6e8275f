package bookingclient

import "context"

// PaymentRefs are the three values the hosted checkout hands back on success.
type PaymentRefs struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type PaymentOutcome int

const (
	PaymentSucceeded PaymentOutcome = iota
	PaymentCancelled
	PaymentFailed
)

type PaymentResult struct {
	Outcome PaymentOutcome
	Refs    PaymentRefs
	Reason  string
}

func Succeeded(refs PaymentRefs) PaymentResult {
	return PaymentResult{Outcome: PaymentSucceeded, Refs: refs}
}

func Cancelled() PaymentResult {
	return PaymentResult{Outcome: PaymentCancelled}
}

func Failed(reason string) PaymentResult {
	return PaymentResult{Outcome: PaymentFailed, Reason: reason}
}

type CheckoutOptions struct {
	KeyID       string
	OrderID     string
	Amount      int64
	Currency    string
	Name        string
	Description string
	Prefill     PatientDetails
}

// Checkout opens the gateway's hosted payment UI. The returned channel
// delivers exactly one result and is then closed.
type Checkout interface {
	Open(ctx context.Context, options CheckoutOptions) <-chan PaymentResult
}

// CheckoutFunc adapts a function that blocks until the payment UI finishes.
type CheckoutFunc func(ctx context.Context, options CheckoutOptions) PaymentResult

func (f CheckoutFunc) Open(ctx context.Context, options CheckoutOptions) <-chan PaymentResult {
	result := make(chan PaymentResult, 1)
	go func() {
		defer close(result)
		result <- f(ctx, options)
	}()
	return result
}

// awaitPayment treats a cancelled context or a closed channel as a
// cancelled checkout.
func awaitPayment(ctx context.Context, results <-chan PaymentResult) PaymentResult {
	select {
	case <-ctx.Done():
		return Cancelled()
	case result, ok := <-results:
		if !ok {
			return Cancelled()
		}
		return result
	}
}
