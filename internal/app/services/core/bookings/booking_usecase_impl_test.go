package bookings

import (
	"context"
	"errors"
	"net/http"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/models"
	"rehab-service/internal/app/services/core/slots"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/exceptions"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)

type bookingHarness struct {
	uc      *bookingUsecase
	repo    *memoryBookingRepository
	gateway *fakeGateway
	mailer  *fakeMailer
	storage *fakeStorage
	limiter *fakeLimiter
	slots   *scheduleSlotUsecase
}

func newBookingHarness(t *testing.T) *bookingHarness {
	t.Helper()

	cfg := &config.InternalConfig{}
	cfg.Clinic.Name = "Rehab Clinic"
	cfg.Clinic.FeeAmount = 50000
	cfg.Clinic.FeeCurrency = "INR"
	cfg.Clinic.SlotWindowDays = 3
	cfg.Clinic.NextAvailabilityDays = 3
	cfg.Clinic.SlotLockTTL = 5 * time.Second
	cfg.Clinic.SlotLockWait = 2 * time.Second
	cfg.Clinic.OrderQuotaPerEmail = 5
	cfg.Clinic.OrderQuotaWindow = time.Hour
	cfg.Mailer.OpsEmail = "ops@clinic.test"
	cfg.Minio.ReceiptBucket = "receipts"
	cfg.Minio.PresignedURLTTL = 15 * time.Minute
	cfg.PaymentGateway.PaymentWindow = 30 * time.Minute
	cfg.Reconciler.BatchSize = 50

	schedule, err := slots.NewSchedule([]string{"9:00 AM", "10:00 AM", "11:00 AM"}, nil, time.UTC)
	require.NoError(t, err)

	repo := newMemoryBookingRepository()
	slotUsecase := &scheduleSlotUsecase{schedule: schedule, repo: repo}

	h := &bookingHarness{
		repo:    repo,
		gateway: newFakeGateway("key_secret"),
		mailer:  &fakeMailer{},
		storage: &fakeStorage{},
		limiter: &fakeLimiter{allowed: true},
		slots:   slotUsecase,
	}
	h.uc = NewBookingUsecase(repo, slotUsecase, h.gateway, newFakeLocker(), h.mailer, h.storage, h.limiter, cfg, zap.NewNop()).(*bookingUsecase)
	h.uc.now = func() time.Time { return fixedNow }
	return h
}

func validOrder() *requests.CreateOrder {
	return &requests.CreateOrder{
		Amount:   50000,
		Currency: "INR",
		Date:     "2025-06-01",
		Slot:     "10:00 AM",
		Name:     "Jane Doe",
		Email:    "jane@x.com",
		Phone:    "+911234567890",
	}
}

func (h *bookingHarness) createOrder(t *testing.T, request *requests.CreateOrder) string {
	t.Helper()
	order, err := h.uc.CreateOrder(context.Background(), request)
	require.NoError(t, err)
	return order.ID
}

func (h *bookingHarness) verifyRequest(orderID, paymentID string) *requests.VerifyPayment {
	return &requests.VerifyPayment{
		RazorpayOrderID:   orderID,
		RazorpayPaymentID: paymentID,
		RazorpaySignature: h.gateway.sign(orderID, paymentID),
		Date:              "2025-06-01",
		Slot:              "10:00 AM",
	}
}

func TestBookingUsecase_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates gateway order and pending booking", func(t *testing.T) {
		h := newBookingHarness(t)

		order, err := h.uc.CreateOrder(ctx, validOrder())
		require.NoError(t, err)
		assert.Equal(t, "order_1", order.ID)
		assert.Equal(t, int64(50000), order.Amount)
		assert.Equal(t, "INR", order.Currency)

		booking, err := h.repo.FindByOrderID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, "10:00 AM", booking.Time)
		assert.Equal(t, "Jane Doe", booking.Name)
		assert.NotEmpty(t, booking.Receipt)
	})

	t.Run("fee mismatch", func(t *testing.T) {
		h := newBookingHarness(t)
		request := validOrder()
		request.Amount = 100

		_, err := h.uc.CreateOrder(ctx, request)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, exceptions.StatusCode(err))
		assert.Empty(t, h.gateway.orders)
	})

	t.Run("invalid email", func(t *testing.T) {
		h := newBookingHarness(t)
		request := validOrder()
		request.Email = "jane-at-example"

		_, err := h.uc.CreateOrder(ctx, request)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, exceptions.StatusCode(err))
	})

	t.Run("slot already confirmed", func(t *testing.T) {
		h := newBookingHarness(t)
		require.NoError(t, h.repo.Create(ctx, &models.Booking{ID: 1, Date: "2025-06-01", Time: "10:00 AM", Status: models.BookingStatusConfirmed}))

		_, err := h.uc.CreateOrder(ctx, validOrder())
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, exceptions.StatusCode(err))
		assert.Empty(t, h.gateway.orders)
	})

	t.Run("throttled per email", func(t *testing.T) {
		h := newBookingHarness(t)
		h.limiter.allowed = false

		_, err := h.uc.CreateOrder(ctx, validOrder())
		require.Error(t, err)
		assert.Equal(t, http.StatusTooManyRequests, exceptions.StatusCode(err))
	})

	t.Run("limiter outage does not block bookings", func(t *testing.T) {
		h := newBookingHarness(t)
		h.limiter.allowed = false
		h.limiter.err = errors.New("redis down")

		_, err := h.uc.CreateOrder(ctx, validOrder())
		assert.NoError(t, err)
	})

	t.Run("gateway failure leaves no booking", func(t *testing.T) {
		h := newBookingHarness(t)
		h.gateway.createFn = func(*requests.GatewayCreateOrder) error {
			return exceptions.ErrPaymentGatewayRequest(errors.New("timeout"), "/v1/orders")
		}

		_, err := h.uc.CreateOrder(ctx, validOrder())
		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, exceptions.StatusCode(err))
		bookings, _ := h.repo.Find(ctx, models.BookingFilter{})
		assert.Empty(t, bookings)
	})
}

func TestBookingUsecase_VerifyPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms booking and marks slot booked", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())

		result, err := h.uc.VerifyPayment(ctx, h.verifyRequest(orderID, "pay_1"))
		require.NoError(t, err)
		assert.Equal(t, constvars.ResponseSuccess, result.Status)
		assert.Equal(t, constvars.PaymentVerifiedMessage, result.Message)

		booking := h.repo.get(result.BookingID)
		require.NotNil(t, booking)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, "pay_1", booking.PaymentID)
		assert.Equal(t, 1, booking.NotificationCount)
		assert.NotEmpty(t, booking.ReceiptObject)

		emails := h.mailer.ofType(constvars.MailerMessageTypeBookingConfirmed)
		require.Len(t, emails, 1)
		assert.Equal(t, []string{"jane@x.com"}, emails[0].To)
		assert.True(t, strings.Contains(emails[0].Body, "pay_1"))

		_, err = h.slots.EnsureBookable(ctx, "2025-06-01", "10:00 AM")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, exceptions.StatusCode(err))
	})

	t.Run("bad signature changes nothing", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())
		request := h.verifyRequest(orderID, "pay_1")
		request.RazorpaySignature = strings.Repeat("0", 64)

		_, err := h.uc.VerifyPayment(ctx, request)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, exceptions.StatusCode(err))

		booking, _ := h.repo.FindByOrderID(ctx, orderID)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Empty(t, h.mailer.sent)
	})

	t.Run("missing fields", func(t *testing.T) {
		h := newBookingHarness(t)

		_, err := h.uc.VerifyPayment(ctx, &requests.VerifyPayment{RazorpayOrderID: "order_1"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, exceptions.StatusCode(err))
	})

	t.Run("unknown order", func(t *testing.T) {
		h := newBookingHarness(t)

		_, err := h.uc.VerifyPayment(ctx, h.verifyRequest("order_missing", "pay_1"))
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, exceptions.StatusCode(err))
	})

	t.Run("repeated verification is idempotent", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())

		first, err := h.uc.VerifyPayment(ctx, h.verifyRequest(orderID, "pay_1"))
		require.NoError(t, err)
		second, err := h.uc.VerifyPayment(ctx, h.verifyRequest(orderID, "pay_1"))
		require.NoError(t, err)

		assert.Equal(t, first.BookingID, second.BookingID)
		assert.Len(t, h.mailer.ofType(constvars.MailerMessageTypeBookingConfirmed), 1)
	})

	t.Run("stored slot wins over request fields", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())
		request := h.verifyRequest(orderID, "pay_1")
		request.Slot = "11:00 AM"

		result, err := h.uc.VerifyPayment(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, "10:00 AM", h.repo.get(result.BookingID).Time)
	})

	t.Run("concurrent payments for one slot have a single winner", func(t *testing.T) {
		h := newBookingHarness(t)
		first := validOrder()
		second := validOrder()
		second.Name = "John Roe"
		second.Email = "john@x.com"
		orderIDs := []string{h.createOrder(t, first), h.createOrder(t, second)}

		var wg sync.WaitGroup
		errs := make([]error, len(orderIDs))
		for i, orderID := range orderIDs {
			wg.Add(1)
			go func(i int, orderID string) {
				defer wg.Done()
				_, errs[i] = h.uc.VerifyPayment(ctx, h.verifyRequest(orderID, "pay_"+orderID))
			}(i, orderID)
		}
		wg.Wait()

		succeeded, conflicted := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, exceptions.ErrSlotConflict):
				conflicted++
				assert.Equal(t, http.StatusConflict, exceptions.StatusCode(err))
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, conflicted)

		confirmed, _ := h.repo.Find(ctx, models.BookingFilter{Statuses: []models.BookingStatus{models.BookingStatusConfirmed}})
		assert.Len(t, confirmed, 1)
		refunded, _ := h.repo.Find(ctx, models.BookingFilter{Statuses: []models.BookingStatus{models.BookingStatusRefunded}})
		require.Len(t, refunded, 1)
		assert.NotEmpty(t, refunded[0].RefundID)
		assert.Equal(t, 1, h.gateway.refundCount())
		assert.Len(t, h.mailer.ofType(constvars.MailerMessageTypeRefundRequired), 1)
	})

	t.Run("late verification of refunded payment reports conflict", func(t *testing.T) {
		h := newBookingHarness(t)
		require.NoError(t, h.repo.Create(ctx, &models.Booking{ID: 7, OrderID: "order_x", Date: "2025-06-01", Time: "10:00 AM", Status: models.BookingStatusRefunded, PaymentID: "pay_x"}))

		_, err := h.uc.VerifyPayment(ctx, h.verifyRequest("order_x", "pay_x"))
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, exceptions.StatusCode(err))
		assert.Zero(t, h.gateway.refundCount())
	})
}

func TestBookingUsecase_AdminOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("list bookings by date", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())
		_, err := h.uc.VerifyPayment(ctx, h.verifyRequest(orderID, "pay_1"))
		require.NoError(t, err)

		list, err := h.uc.ListBookings(ctx, &requests.ListBookings{Date: "2025-06-01"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 500.0, list[0].Amount)
		assert.Equal(t, "Confirmed", list[0].Status)

		empty, err := h.uc.ListBookings(ctx, &requests.ListBookings{Date: "2025-06-02"})
		require.NoError(t, err)
		assert.Empty(t, empty)

		_, err = h.uc.ListBookings(ctx, &requests.ListBookings{Date: "01-06-2025"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, exceptions.StatusCode(err))
	})

	t.Run("resend confirmation", func(t *testing.T) {
		h := newBookingHarness(t)
		pendingOrder := h.createOrder(t, validOrder())
		pending, _ := h.repo.FindByOrderID(ctx, pendingOrder)

		err := h.uc.ResendConfirmation(ctx, 999)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, exceptions.StatusCode(err))

		err = h.uc.ResendConfirmation(ctx, pending.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, exceptions.StatusCode(err))

		_, err = h.uc.VerifyPayment(ctx, h.verifyRequest(pendingOrder, "pay_1"))
		require.NoError(t, err)
		require.NoError(t, h.uc.ResendConfirmation(ctx, pending.ID))

		assert.Len(t, h.mailer.ofType(constvars.MailerMessageTypeBookingConfirmed), 2)
		assert.Equal(t, 2, h.repo.get(pending.ID).NotificationCount)
	})

	t.Run("receipt url", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())
		booking, _ := h.repo.FindByOrderID(ctx, orderID)

		_, err := h.uc.GetReceiptURL(ctx, booking.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, exceptions.StatusCode(err))

		_, err = h.uc.VerifyPayment(ctx, h.verifyRequest(orderID, "pay_1"))
		require.NoError(t, err)

		receipt, err := h.uc.GetReceiptURL(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, receipt.BookingID)
		assert.Contains(t, receipt.URL, "receipts/2025-06-01/booking-1.txt")
		assert.Equal(t, fixedNow.Add(15*time.Minute), receipt.ExpiresAt)
		assert.Contains(t, string(h.storage.objects["receipts/2025-06-01/booking-1.txt"]), "pay_1")
	})
}

func TestBookingUsecase_ReconcilePending(t *testing.T) {
	ctx := context.Background()
	h := newBookingHarness(t)

	paidOrder := h.createOrder(t, validOrder())
	abandoned := validOrder()
	abandoned.Slot = "11:00 AM"
	abandonedOrder := h.createOrder(t, abandoned)
	h.gateway.pay(paidOrder, "pay_late")

	// Bookings are created at fixedNow; run the reconciler an hour later.
	h.uc.now = func() time.Time { return fixedNow.Add(time.Hour) }

	summary, err := h.uc.ReconcilePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, 1, summary.Confirmed)
	assert.Equal(t, 1, summary.Expired)

	paid, _ := h.repo.FindByOrderID(ctx, paidOrder)
	assert.Equal(t, models.BookingStatusConfirmed, paid.Status)
	assert.Equal(t, "pay_late", paid.PaymentID)

	expired, _ := h.repo.FindByOrderID(ctx, abandonedOrder)
	assert.Equal(t, models.BookingStatusExpired, expired.Status)

	t.Run("recent orders are left alone", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())

		summary, err := h.uc.ReconcilePending(ctx)
		require.NoError(t, err)
		assert.Zero(t, summary.Checked)

		booking, _ := h.repo.FindByOrderID(ctx, orderID)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
	})

	t.Run("late payment revives an expired booking", func(t *testing.T) {
		h.gateway.pay(abandonedOrder, "pay_very_late")

		result, err := h.uc.VerifyPayment(ctx, h.verifyRequest(abandonedOrder, "pay_very_late"))
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, h.repo.get(result.BookingID).Status)
	})
}

func TestBookingUsecase_ReconcileExpired(t *testing.T) {
	ctx := context.Background()

	expire := func(t *testing.T, h *bookingHarness) string {
		t.Helper()
		orderID := h.createOrder(t, validOrder())
		h.uc.now = func() time.Time { return fixedNow.Add(time.Hour) }
		summary, err := h.uc.ReconcilePending(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, summary.Expired)
		return orderID
	}

	t.Run("payment captured after expiry confirms the booking", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := expire(t, h)

		h.gateway.pay(orderID, "pay_after_expiry")
		h.uc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

		summary, err := h.uc.ReconcilePending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Checked)
		assert.Equal(t, 1, summary.Confirmed)

		booking, _ := h.repo.FindByOrderID(ctx, orderID)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, "pay_after_expiry", booking.PaymentID)
		assert.Zero(t, h.gateway.refundCount())
		assert.Len(t, h.mailer.ofType(constvars.MailerMessageTypeBookingConfirmed), 1)
	})

	t.Run("payment captured after the slot was rebooked is refunded", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := expire(t, h)

		otherOrder := h.createOrder(t, validOrder())
		_, err := h.uc.VerifyPayment(ctx, h.verifyRequest(otherOrder, "pay_other"))
		require.NoError(t, err)

		h.gateway.pay(orderID, "pay_after_expiry")
		h.uc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

		summary, err := h.uc.ReconcilePending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Refunded)

		booking, _ := h.repo.FindByOrderID(ctx, orderID)
		assert.Equal(t, models.BookingStatusRefunded, booking.Status)
		assert.Equal(t, "pay_after_expiry", booking.PaymentID)
		assert.Equal(t, 1, h.gateway.refundCount())
		assert.Len(t, h.mailer.ofType(constvars.MailerMessageTypeRefundRequired), 1)
	})

	t.Run("expired bookings past the lookback are not checked", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := expire(t, h)

		h.gateway.pay(orderID, "pay_after_expiry")
		h.uc.now = func() time.Time { return fixedNow.Add(72 * time.Hour) }

		summary, err := h.uc.ReconcilePending(ctx)
		require.NoError(t, err)
		assert.Zero(t, summary.Checked)

		booking, _ := h.repo.FindByOrderID(ctx, orderID)
		assert.Equal(t, models.BookingStatusExpired, booking.Status)
	})

	t.Run("unpaid expired booking stays expired", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := expire(t, h)

		h.uc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
		summary, err := h.uc.ReconcilePending(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Checked)
		assert.Zero(t, summary.Expired)

		booking, _ := h.repo.FindByOrderID(ctx, orderID)
		assert.Equal(t, models.BookingStatusExpired, booking.Status)
	})
}

func TestBookingUsecase_CompensateLostSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("booking already moved to refund by another caller", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())
		booking, err := h.repo.FindByOrderID(ctx, orderID)
		require.NoError(t, err)
		stale := *booking

		changed, err := h.repo.TransitionStatus(ctx, booking.ID, models.BookingStatusPending, models.BookingStatusRefundPending, contracts.BookingUpdate{PaymentID: "pay_1"})
		require.NoError(t, err)
		require.True(t, changed)

		err = h.uc.compensateLostSlot(ctx, &stale, "pay_1")
		require.Error(t, err)
		assert.ErrorIs(t, err, exceptions.ErrSlotConflict)
		assert.Zero(t, h.gateway.refundCount())
		assert.Empty(t, h.mailer.ofType(constvars.MailerMessageTypeRefundRequired))
		assert.Equal(t, models.BookingStatusRefundPending, h.repo.get(booking.ID).Status)
	})

	t.Run("booking expired concurrently is still refunded once", func(t *testing.T) {
		h := newBookingHarness(t)
		orderID := h.createOrder(t, validOrder())
		booking, err := h.repo.FindByOrderID(ctx, orderID)
		require.NoError(t, err)
		stale := *booking

		changed, err := h.repo.TransitionStatus(ctx, booking.ID, models.BookingStatusPending, models.BookingStatusExpired, contracts.BookingUpdate{})
		require.NoError(t, err)
		require.True(t, changed)

		err = h.uc.compensateLostSlot(ctx, &stale, "pay_1")
		assert.ErrorIs(t, err, exceptions.ErrSlotConflict)
		assert.Equal(t, 1, h.gateway.refundCount())
		assert.Len(t, h.mailer.ofType(constvars.MailerMessageTypeRefundRequired), 1)
		assert.Equal(t, models.BookingStatusRefunded, h.repo.get(booking.ID).Status)
	})
}
