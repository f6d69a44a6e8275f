package bookingclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jane = PatientDetails{Name: "Jane Doe", Email: "jane@x.com", Phone: "+911234567890"}

func approvingCheckout(t *testing.T) Checkout {
	return CheckoutFunc(func(ctx context.Context, options CheckoutOptions) PaymentResult {
		assert.Equal(t, "rzp_test_key", options.KeyID)
		assert.Equal(t, int64(50000), options.Amount)
		assert.Equal(t, jane, options.Prefill)
		return Succeeded(PaymentRefs{OrderID: options.OrderID, PaymentID: "pay_1", Signature: "sig"})
	})
}

func newTestFlow(t *testing.T, checkout Checkout) (*Flow, *fakeService) {
	svc, server := newFakeService(t)
	flow := NewFlow(New(server.URL), checkout, Fee{Amount: 50000, Currency: "INR"}, "rzp_test_key", "Rehab Clinic")
	return flow, svc
}

func toDetails(t *testing.T, flow *Flow) {
	t.Helper()
	current, err := flow.LoadSlots(context.Background(), "2025-06-01")
	require.NoError(t, err)
	require.True(t, current)
	require.NoError(t, flow.SelectSlot("10:00 AM"))
	require.NoError(t, flow.Continue())
}

func TestFlow_BookingHappyPath(t *testing.T) {
	ctx := context.Background()
	flow, svc := newTestFlow(t, approvingCheckout(t))

	var states []State
	flow.OnChange(func(m Model) { states = append(states, m.State) })

	toDetails(t, flow)
	m, err := flow.Pay(ctx, PatientDetails{Name: " Jane Doe ", Email: "jane@x.com", Phone: "+911234567890"})
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, m.State)
	assert.Equal(t, int64(1), m.BookingID)
	assert.Contains(t, states, StatePaymentProcessing)

	require.Len(t, svc.orders, 1)
	assert.Equal(t, "Jane Doe", svc.orders[0].Name)
	assert.Equal(t, "10:00 AM", svc.orders[0].Slot)
	require.Len(t, svc.verified, 1)
	assert.Equal(t, "order_1", svc.verified[0].RazorpayOrderID)

	require.NoError(t, flow.Close())
	_, err = flow.LoadSlots(ctx, "2025-06-01")
	require.NoError(t, err)
	reloaded := flow.Model()
	assert.True(t, reloaded.Slots[1].Booked)
	assert.Error(t, flow.SelectSlot("10:00 AM"))
}

func TestFlow_VerificationConflict(t *testing.T) {
	flow, svc := newTestFlow(t, approvingCheckout(t))
	svc.verifyError = http.StatusConflict

	toDetails(t, flow)
	m, err := flow.Pay(context.Background(), jane)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, StateFailed, m.State)
	assert.True(t, m.Conflict)
	assert.Contains(t, m.Notice, "pay_1")
}

func TestFlow_CheckoutCancelled(t *testing.T) {
	cancelled := CheckoutFunc(func(ctx context.Context, options CheckoutOptions) PaymentResult {
		return Cancelled()
	})
	flow, svc := newTestFlow(t, cancelled)

	toDetails(t, flow)
	m, err := flow.Pay(context.Background(), jane)
	require.NoError(t, err)
	assert.Equal(t, StateDetailsEntry, m.State)
	assert.Equal(t, "payment cancelled", m.Notice)
	assert.Empty(t, svc.verified)
}

func TestFlow_InvalidDetailsNeverLeaveTheClient(t *testing.T) {
	flow, svc := newTestFlow(t, approvingCheckout(t))
	toDetails(t, flow)
	before := svc.hits.Load()

	m, err := flow.Pay(context.Background(), PatientDetails{Name: "Jane", Email: "jane@", Phone: "12"})
	assert.ErrorIs(t, err, ErrInvalidDetails)
	assert.Equal(t, StateDetailsEntry, m.State)
	assert.Equal(t, before, svc.hits.Load())
}

func TestFlow_StaleSlotAnswerIsDiscarded(t *testing.T) {
	requested := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "2025-06-01" {
			close(requested)
			<-release
		}
		writeJSON(w, http.StatusOK, []map[string]interface{}{{"date": date, "slots": []map[string]interface{}{{"time": "10:00 AM"}}}})
	}))
	defer server.Close()
	defer close(release)

	flow := NewFlow(New(server.URL), approvingCheckout(t), Fee{Amount: 50000, Currency: "INR"}, "rzp_test_key", "Rehab Clinic")

	var wg sync.WaitGroup
	var staleCurrent bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleCurrent, _ = flow.LoadSlots(context.Background(), "2025-06-01")
	}()
	<-requested

	current, err := flow.LoadSlots(context.Background(), "2025-06-02")
	require.NoError(t, err)
	assert.True(t, current)

	release <- struct{}{}
	wg.Wait()

	assert.False(t, staleCurrent)
	assert.Equal(t, "2025-06-02", flow.Model().Date)
}
