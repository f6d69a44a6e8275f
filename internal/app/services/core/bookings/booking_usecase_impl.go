package bookings

import (
	"context"
	"errors"
	"fmt"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

const postCommitTimeout = 10 * time.Second

type bookingUsecase struct {
	BookingRepository     contracts.BookingRepository
	SlotUsecase           contracts.SlotUsecase
	PaymentGatewayService contracts.PaymentGatewayService
	LockerService         contracts.LockerService
	MailerService         contracts.MailerService
	Storage               contracts.Storage
	ResourceLimiter       contracts.ResourceLimiter
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewBookingUsecase(
	bookingRepository contracts.BookingRepository,
	slotUsecase contracts.SlotUsecase,
	paymentGatewayService contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	mailerService contracts.MailerService,
	storage contracts.Storage,
	resourceLimiter contracts.ResourceLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	return &bookingUsecase{
		BookingRepository:     bookingRepository,
		SlotUsecase:           slotUsecase,
		PaymentGatewayService: paymentGatewayService,
		LockerService:         lockerService,
		MailerService:         mailerService,
		Storage:               storage,
		ResourceLimiter:       resourceLimiter,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *bookingUsecase) CreateOrder(ctx context.Context, request *requests.CreateOrder) (*responses.CreateOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotDateKey, request.Date),
		zap.String(constvars.LoggingSlotTimeKey, request.Slot),
	)

	request.Name = strings.TrimSpace(request.Name)
	request.Email = strings.TrimSpace(request.Email)
	request.Phone = strings.TrimSpace(request.Phone)
	if err := utils.ValidateStruct(request); err != nil {
		uc.Log.Error("bookingUsecase.CreateOrder validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	clinic := uc.InternalConfig.Clinic
	if request.Amount != clinic.FeeAmount || !strings.EqualFold(request.Currency, clinic.FeeCurrency) {
		uc.Log.Error("bookingUsecase.CreateOrder fee mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64("amount", request.Amount),
			zap.String("currency", request.Currency),
		)
		return nil, exceptions.ErrFeeMismatch(nil, request.Amount, request.Currency, clinic.FeeAmount, clinic.FeeCurrency)
	}

	allowed, retryAfter, err := uc.ResourceLimiter.Allow(ctx, constvars.RateLimitGroupCreateOrder, request.Email, clinic.OrderQuotaWindow, clinic.OrderQuotaPerEmail)
	if err != nil {
		uc.Log.Warn("bookingUsecase.CreateOrder rate limiter unavailable, continuing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if !allowed {
		utils.LogSecurityEvent(uc.Log, "create_order_throttled", requestID, "medium",
			zap.Duration("retry_after", retryAfter),
		)
		return nil, exceptions.ErrTooManyRequests(nil, request.Email)
	}

	slotLabel, err := uc.SlotUsecase.EnsureBookable(ctx, request.Date, request.Slot)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateOrder slot not bookable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotDateKey, request.Date),
			zap.String(constvars.LoggingSlotTimeKey, request.Slot),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	receipt := request.Receipt
	if receipt == "" {
		receipt = utils.GenerateReceipt(now)
	}

	order, err := uc.PaymentGatewayService.CreateOrder(ctx, &requests.GatewayCreateOrder{
		Amount:   clinic.FeeAmount,
		Currency: clinic.FeeCurrency,
		Receipt:  receipt,
		Notes: map[string]string{
			constvars.GatewayNoteDate:  request.Date,
			constvars.GatewayNoteSlot:  slotLabel,
			constvars.GatewayNoteName:  request.Name,
			constvars.GatewayNoteEmail: request.Email,
			constvars.GatewayNotePhone: request.Phone,
		},
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateOrder error calling PaymentGatewayService.CreateOrder",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	bookingID, err := uc.BookingRepository.NextID(ctx)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateOrder error calling BookingRepository.NextID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	booking := &models.Booking{
		ID:        bookingID,
		Name:      request.Name,
		Email:     request.Email,
		Phone:     request.Phone,
		Date:      request.Date,
		Time:      slotLabel,
		Status:    models.BookingStatusPending,
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		Receipt:   receipt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.BookingRepository.Create(ctx, booking)
	if err != nil {
		uc.Log.Error("bookingUsecase.CreateOrder error calling BookingRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, order.ID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "booking_order_created", requestID,
		zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
		zap.String(constvars.LoggingSlotDateKey, booking.Date),
		zap.String(constvars.LoggingSlotTimeKey, booking.Time),
	)

	return &responses.CreateOrder{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

func (uc *bookingUsecase) VerifyPayment(ctx context.Context, request *requests.VerifyPayment) (*responses.VerifyPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.VerifyPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.RazorpayOrderID),
		zap.String(constvars.LoggingPaymentIDKey, request.RazorpayPaymentID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	if !uc.PaymentGatewayService.VerifyPaymentSignature(request.RazorpayOrderID, request.RazorpayPaymentID, request.RazorpaySignature) {
		utils.LogSecurityEvent(uc.Log, "payment_signature_mismatch", requestID, "high",
			zap.String(constvars.LoggingOrderIDKey, request.RazorpayOrderID),
			zap.String(constvars.LoggingPaymentIDKey, request.RazorpayPaymentID),
		)
		return nil, exceptions.ErrPaymentSignatureMismatch(nil, request.RazorpayOrderID)
	}

	booking, err := uc.BookingRepository.FindByOrderID(ctx, request.RazorpayOrderID)
	if err != nil {
		uc.Log.Error("bookingUsecase.VerifyPayment error calling BookingRepository.FindByOrderID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil, request.RazorpayOrderID)
	}

	if (request.Date != "" && request.Date != booking.Date) || (request.Slot != "" && !sameSlotLabel(request.Slot, booking.Time)) {
		uc.Log.Warn("bookingUsecase.VerifyPayment request slot differs from order, using stored slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
			zap.String("request_date", request.Date),
			zap.String("request_slot", request.Slot),
			zap.String(constvars.LoggingSlotDateKey, booking.Date),
			zap.String(constvars.LoggingSlotTimeKey, booking.Time),
		)
	}

	confirmed, err := uc.confirmPayment(ctx, booking, request.RazorpayPaymentID)
	if err != nil {
		return nil, err
	}

	return &responses.VerifyPayment{
		Status:    constvars.ResponseSuccess,
		BookingID: confirmed.ID,
		Message:   constvars.PaymentVerifiedMessage,
	}, nil
}

// confirmPayment turns a verified payment into a confirmed booking, or into a
// refund when another payment already holds the slot. It is shared by the
// verify endpoint and the reconciler.
func (uc *bookingUsecase) confirmPayment(ctx context.Context, booking *models.Booking, paymentID string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	switch booking.Status {
	case models.BookingStatusConfirmed:
		if booking.PaymentID == paymentID {
			uc.Log.Info("bookingUsecase.confirmPayment already confirmed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
			)
			return booking, nil
		}
		return nil, exceptions.ErrBookingNotPending(nil, booking.ID, booking.Status.String())
	case models.BookingStatusRefundPending, models.BookingStatusRefunded:
		if booking.PaymentID == paymentID {
			return nil, exceptions.ErrSlotTakenRefund(nil, booking.Date, booking.Time, paymentID)
		}
		return nil, exceptions.ErrBookingNotPending(nil, booking.ID, booking.Status.String())
	}

	lockKey := fmt.Sprintf(constvars.RedisKeySlotLockFormat, booking.Date, booking.Time)
	lockValue, err := uc.LockerService.WaitLock(ctx, lockKey, uc.InternalConfig.Clinic.SlotLockTTL, uc.InternalConfig.Clinic.SlotLockWait)
	if err != nil {
		uc.Log.Error("bookingUsecase.confirmPayment error acquiring slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(err),
		)
		return nil, err
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
		defer cancel()
		if err := uc.LockerService.Unlock(unlockCtx, lockKey, lockValue); err != nil {
			uc.Log.Warn("bookingUsecase.confirmPayment error releasing slot lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	confirmed, err := uc.BookingRepository.Confirm(ctx, booking.ID, paymentID, uc.now())
	switch {
	case err == nil:
	case errors.Is(err, exceptions.ErrSlotConflict):
		return nil, uc.compensateLostSlot(ctx, booking, paymentID)
	case errors.Is(err, exceptions.ErrStatusConflict):
		current, findErr := uc.BookingRepository.FindByID(ctx, booking.ID)
		if findErr == nil && current != nil && current.IsConfirmed() && current.PaymentID == paymentID {
			return current, nil
		}
		return nil, err
	default:
		uc.Log.Error("bookingUsecase.confirmPayment error calling BookingRepository.Confirm",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "booking_confirmed", requestID,
		zap.Int64(constvars.LoggingBookingIDKey, confirmed.ID),
		zap.String(constvars.LoggingOrderIDKey, confirmed.OrderID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
		zap.String(constvars.LoggingSlotDateKey, confirmed.Date),
		zap.String(constvars.LoggingSlotTimeKey, confirmed.Time),
	)

	uc.afterConfirm(ctx, confirmed)
	return confirmed, nil
}

// afterConfirm runs once the booking is durably Confirmed. Failures here are
// logged only; the confirmation stands.
func (uc *bookingUsecase) afterConfirm(ctx context.Context, booking *models.Booking) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	postCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	if err := uc.SlotUsecase.InvalidateNextAvailability(postCtx); err != nil {
		uc.Log.Warn("bookingUsecase.afterConfirm error invalidating next availability cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if err := uc.queueConfirmationEmail(postCtx, booking); err != nil {
		uc.Log.Warn("bookingUsecase.afterConfirm error queueing confirmation email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
			zap.Error(err),
		)
	}

	if _, err := uc.archiveReceipt(postCtx, booking); err != nil {
		uc.Log.Warn("bookingUsecase.afterConfirm error archiving receipt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
			zap.Error(err),
		)
	}
}

// compensateLostSlot handles a verified payment whose slot was confirmed for
// someone else first: mark the booking RefundPending, ask the gateway for a
// refund and alert operations. It always returns the conflict error for the
// client.
func (uc *bookingUsecase) compensateLostSlot(ctx context.Context, booking *models.Booking, paymentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	postCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	utils.LogBusinessEvent(uc.Log, "booking_slot_lost", requestID,
		zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
		zap.String(constvars.LoggingSlotDateKey, booking.Date),
		zap.String(constvars.LoggingSlotTimeKey, booking.Time),
	)

	conflictErr := exceptions.ErrSlotTakenRefund(exceptions.ErrSlotConflict, booking.Date, booking.Time, paymentID)

	// Only the caller that moves the row to RefundPending issues the refund.
	// A row already moved by a concurrent verify or reconciler run is left
	// to that caller.
	if !uc.markRefundPending(postCtx, booking, paymentID, requestID) {
		return conflictErr
	}
	booking.Status = models.BookingStatusRefundPending
	booking.PaymentID = paymentID

	refundStatus := uc.refundBooking(postCtx, booking)

	alertErr := uc.MailerService.SendEmail(postCtx, &requests.EmailPayload{
		Type:      constvars.MailerMessageTypeRefundRequired,
		BookingID: booking.ID,
		To:        []string{uc.InternalConfig.Mailer.OpsEmail},
		Subject:   fmt.Sprintf(constvars.EmailRefundRequiredSubject, uc.InternalConfig.Clinic.Name, paymentID),
		Body: fmt.Sprintf(constvars.EmailRefundRequiredBody,
			booking.ID, booking.OrderID, paymentID, booking.Date, booking.Time,
			booking.Name, booking.Email, booking.Phone, refundStatus),
	})
	if alertErr != nil {
		uc.Log.Error("bookingUsecase.compensateLostSlot error queueing ops alert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
			zap.Error(alertErr),
		)
	}

	return conflictErr
}

// markRefundPending moves the booking to RefundPending from whatever
// refundable status it holds. It reports whether this call changed the row.
func (uc *bookingUsecase) markRefundPending(ctx context.Context, booking *models.Booking, paymentID, requestID string) bool {
	from := booking.Status
	for attempt := 0; attempt < 2; attempt++ {
		changed, err := uc.BookingRepository.TransitionStatus(ctx, booking.ID, from, models.BookingStatusRefundPending, contracts.BookingUpdate{PaymentID: paymentID})
		if err != nil {
			uc.Log.Error("bookingUsecase.markRefundPending error marking booking RefundPending",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
				zap.Error(err),
			)
			return false
		}
		if changed {
			return true
		}

		current, err := uc.BookingRepository.FindByID(ctx, booking.ID)
		if err != nil || current == nil {
			uc.Log.Error("bookingUsecase.markRefundPending error reloading booking",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
				zap.Error(err),
			)
			return false
		}
		if current.Status != models.BookingStatusPending && current.Status != models.BookingStatusExpired {
			uc.Log.Info("bookingUsecase.markRefundPending booking already settled elsewhere",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
				zap.String("status", current.Status.String()),
			)
			*booking = *current
			return false
		}
		from = current.Status
	}
	return false
}

// refundBooking asks the gateway to refund a RefundPending booking and moves
// it to Refunded on success. It returns a short status for the ops alert.
func (uc *bookingUsecase) refundBooking(ctx context.Context, booking *models.Booking) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	refund, err := uc.PaymentGatewayService.RefundPayment(ctx, booking.PaymentID, &requests.GatewayRefund{
		Amount: booking.Amount,
		Notes: map[string]string{
			"reason":     constvars.RefundReasonSlotTaken,
			"booking_id": fmt.Sprintf("%d", booking.ID),
		},
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.refundBooking error calling PaymentGatewayService.RefundPayment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
			zap.String(constvars.LoggingPaymentIDKey, booking.PaymentID),
			zap.Error(err),
		)
		return "failed, retry pending"
	}

	changed, err := uc.BookingRepository.TransitionStatus(ctx, booking.ID, models.BookingStatusRefundPending, models.BookingStatusRefunded, contracts.BookingUpdate{RefundID: refund.ID})
	if err != nil || !changed {
		uc.Log.Error("bookingUsecase.refundBooking error marking booking Refunded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
			zap.String("refund_id", refund.ID),
			zap.Error(err),
		)
	} else {
		booking.Status = models.BookingStatusRefunded
		booking.RefundID = refund.ID
	}

	utils.LogBusinessEvent(uc.Log, "booking_refunded", requestID,
		zap.Int64(constvars.LoggingBookingIDKey, booking.ID),
		zap.String(constvars.LoggingPaymentIDKey, booking.PaymentID),
		zap.String("refund_id", refund.ID),
	)
	return "initiated " + refund.ID
}

func (uc *bookingUsecase) ListBookings(ctx context.Context, request *requests.ListBookings) ([]responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListBookings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotDateKey, request.Date),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInvalidDate(err, request.Date)
	}

	bookings, err := uc.BookingRepository.Find(ctx, models.BookingFilter{Date: request.Date})
	if err != nil {
		uc.Log.Error("bookingUsecase.ListBookings error calling BookingRepository.Find",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.Booking, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, toBookingResponse(booking))
	}

	uc.Log.Info("bookingUsecase.ListBookings succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

func (uc *bookingUsecase) ResendConfirmation(ctx context.Context, bookingID int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ResendConfirmation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingBookingIDKey, bookingID),
	)

	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return exceptions.ErrBookingNotFound(nil, fmt.Sprintf("id %d", bookingID))
	}
	if !booking.IsConfirmed() {
		return exceptions.ErrBookingNotConfirmed(nil, booking.ID, booking.Status.String())
	}

	if err := uc.queueConfirmationEmail(ctx, booking); err != nil {
		uc.Log.Error("bookingUsecase.ResendConfirmation error queueing email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err),
		)
		return err
	}

	utils.LogBusinessEvent(uc.Log, "booking_confirmation_resent", requestID,
		zap.Int64(constvars.LoggingBookingIDKey, bookingID),
	)
	return nil
}

func (uc *bookingUsecase) GetReceiptURL(ctx context.Context, bookingID int64) (*responses.Receipt, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.GetReceiptURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingBookingIDKey, bookingID),
	)

	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil, fmt.Sprintf("id %d", bookingID))
	}

	objectName := booking.ReceiptObject
	if objectName == "" {
		if !booking.IsConfirmed() {
			return nil, exceptions.ErrReceiptNotAvailable(nil, booking.ID)
		}
		objectName, err = uc.archiveReceipt(ctx, booking)
		if err != nil {
			return nil, err
		}
		if objectName == "" {
			return nil, exceptions.ErrReceiptNotAvailable(nil, booking.ID)
		}
	}

	ttl := uc.InternalConfig.Minio.PresignedURLTTL
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.ReceiptBucket, objectName, ttl)
	if err != nil {
		uc.Log.Error("bookingUsecase.GetReceiptURL error calling Storage.GetObjectUrlWithExpiryTime",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.Receipt{
		BookingID: booking.ID,
		URL:       url,
		ExpiresAt: uc.now().Add(ttl),
	}, nil
}

func (uc *bookingUsecase) queueConfirmationEmail(ctx context.Context, booking *models.Booking) error {
	clinic := uc.InternalConfig.Clinic
	err := uc.MailerService.SendEmail(ctx, &requests.EmailPayload{
		Type:      constvars.MailerMessageTypeBookingConfirmed,
		BookingID: booking.ID,
		To:        []string{booking.Email},
		Subject:   fmt.Sprintf(constvars.EmailBookingConfirmedSubject, clinic.Name, booking.Date, booking.Time),
		Body: fmt.Sprintf(constvars.EmailBookingConfirmedBody,
			booking.Name, booking.Date, booking.Time, booking.ID, booking.PaymentID,
			utils.FormatMinorUnits(booking.Amount), booking.Currency, clinic.Name),
	})
	if err != nil {
		return err
	}
	return uc.BookingRepository.RecordNotification(ctx, booking.ID, uc.now())
}

func (uc *bookingUsecase) archiveReceipt(ctx context.Context, booking *models.Booking) (string, error) {
	if uc.InternalConfig.Minio.ReceiptArchiveOff {
		return "", nil
	}

	objectName, err := uc.Storage.UploadObject(ctx, &requests.UploadObject{
		BucketName:  uc.InternalConfig.Minio.ReceiptBucket,
		ObjectName:  utils.GenerateReceiptObjectName(booking.Date, booking.ID),
		ContentType: constvars.ReceiptContentType,
		Data:        []byte(renderReceipt(uc.InternalConfig.Clinic.Name, booking)),
	})
	if err != nil {
		return "", err
	}

	if err := uc.BookingRepository.SetReceiptObject(ctx, booking.ID, objectName); err != nil {
		return "", err
	}
	booking.ReceiptObject = objectName
	return objectName, nil
}

func toBookingResponse(booking models.Booking) responses.Booking {
	return responses.Booking{
		ID:          booking.ID,
		Name:        booking.Name,
		Email:       booking.Email,
		Phone:       booking.Phone,
		Date:        booking.Date,
		Time:        booking.Time,
		Status:      booking.Status.String(),
		OrderID:     booking.OrderID,
		PaymentID:   booking.PaymentID,
		Amount:      utils.MinorToMajorUnits(booking.Amount),
		Currency:    booking.Currency,
		CreatedAt:   booking.CreatedAt,
		ConfirmedAt: booking.ConfirmedAt,
	}
}

func sameSlotLabel(a, b string) bool {
	parsedA, errA := time.Parse(constvars.SlotTimeParseLayout, strings.ToUpper(strings.TrimSpace(a)))
	parsedB, errB := time.Parse(constvars.SlotTimeParseLayout, strings.ToUpper(strings.TrimSpace(b)))
	if errA != nil || errB != nil {
		return a == b
	}
	return parsedA.Equal(parsedB)
}
