package bookings

import (
	"context"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/responses"
	"rehab-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const (
	// reconcileGrace keeps the reconciler away from orders whose checkout is
	// still in flight.
	reconcileGrace = time.Minute

	defaultExpiredLookback = 48 * time.Hour
)

// ReconcilePending settles bookings whose browser callback never arrived:
// paid orders are confirmed through the same path as /verify-payment (expired
// ones included, within the lookback), unpaid ones past the payment window
// expire, and stuck refunds are retried.
func (uc *bookingUsecase) ReconcilePending(ctx context.Context) (*contracts.ReconcileSummary, error) {
	now := uc.now()
	cutoff := now.Add(-reconcileGrace)
	summary := &contracts.ReconcileSummary{}

	pending, err := uc.BookingRepository.Find(ctx, models.BookingFilter{
		Statuses:      []models.BookingStatus{models.BookingStatusPending},
		CreatedBefore: &cutoff,
		Limit:         int64(uc.InternalConfig.Reconciler.BatchSize),
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.ReconcilePending error calling BookingRepository.Find",
			zap.Error(err),
		)
		return nil, err
	}

	lookback := uc.InternalConfig.Reconciler.ExpiredLookback
	if lookback <= 0 {
		lookback = defaultExpiredLookback
	}
	since := now.Add(-lookback)
	expired, err := uc.BookingRepository.Find(ctx, models.BookingFilter{
		Statuses:     []models.BookingStatus{models.BookingStatusExpired},
		CreatedAfter: &since,
		Limit:        int64(uc.InternalConfig.Reconciler.BatchSize),
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.ReconcilePending error listing expired bookings",
			zap.Error(err),
		)
		return nil, err
	}
	pending = append(pending, expired...)

	for i := range pending {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		booking := &pending[i]
		summary.Checked++

		outcome, err := uc.reconcileBooking(ctx, booking, now)
		if err != nil {
			summary.Failed++
			uc.Log.Warn("bookingUsecase.ReconcilePending booking not settled",
				zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
				zap.String(constvars.LoggingOrderIDKey, booking.OrderID),
				zap.Error(err),
			)
			continue
		}
		switch outcome {
		case models.BookingStatusConfirmed:
			summary.Confirmed++
		case models.BookingStatusExpired:
			summary.Expired++
		case models.BookingStatusRefundPending, models.BookingStatusRefunded:
			summary.Refunded++
		}
	}

	stuck, err := uc.BookingRepository.Find(ctx, models.BookingFilter{
		Statuses: []models.BookingStatus{models.BookingStatusRefundPending},
		Limit:    int64(uc.InternalConfig.Reconciler.BatchSize),
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.ReconcilePending error listing refund-pending bookings",
			zap.Error(err),
		)
		return summary, err
	}
	for i := range stuck {
		booking := &stuck[i]
		summary.Checked++
		uc.refundBooking(ctx, booking)
		if booking.Status == models.BookingStatusRefunded {
			summary.Refunded++
		} else {
			summary.Failed++
		}
	}

	uc.Log.Info("bookingUsecase.ReconcilePending finished",
		zap.Int("checked", summary.Checked),
		zap.Int("confirmed", summary.Confirmed),
		zap.Int("expired", summary.Expired),
		zap.Int("refunded", summary.Refunded),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (uc *bookingUsecase) reconcileBooking(ctx context.Context, booking *models.Booking, now time.Time) (models.BookingStatus, error) {
	order, err := uc.PaymentGatewayService.FetchOrder(ctx, booking.OrderID)
	if err != nil {
		return "", err
	}

	if order.Status == constvars.GatewayOrderStatusPaid || order.Status == constvars.GatewayOrderStatusAttempted {
		payments, err := uc.PaymentGatewayService.FetchOrderPayments(ctx, booking.OrderID)
		if err != nil {
			return "", err
		}
		if payment := settledPayment(payments); payment != nil {
			confirmed, err := uc.confirmPayment(ctx, booking, payment.ID)
			if err != nil {
				if booking.Status == models.BookingStatusRefundPending || booking.Status == models.BookingStatusRefunded {
					return booking.Status, nil
				}
				return "", err
			}
			return confirmed.Status, nil
		}
	}

	if booking.Status != models.BookingStatusPending {
		return "", nil
	}
	if now.Sub(booking.CreatedAt) < uc.InternalConfig.PaymentGateway.PaymentWindow {
		return "", nil
	}

	changed, err := uc.BookingRepository.TransitionStatus(ctx, booking.ID, models.BookingStatusPending, models.BookingStatusExpired, contracts.BookingUpdate{})
	if err != nil {
		return "", err
	}
	if !changed {
		return "", nil
	}
	utils.LogBusinessEvent(uc.Log, "booking_expired", "",
		zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
		zap.String(constvars.LoggingOrderIDKey, booking.OrderID),
	)
	return models.BookingStatusExpired, nil
}

func settledPayment(payments []responses.GatewayPayment) *responses.GatewayPayment {
	for i := range payments {
		switch payments[i].Status {
		case constvars.GatewayPaymentStatusCaptured, constvars.GatewayPaymentStatusAuthorized:
			return &payments[i]
		}
	}
	return nil
}
