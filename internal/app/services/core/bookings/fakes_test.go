package bookings

import (
	"context"
	"fmt"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/models"
	"rehab-service/internal/app/services/core/slots"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryBookingRepository mirrors the Mongo repository, including the unique
// index on confirmed (date, time) pairs.
type memoryBookingRepository struct {
	mu       sync.Mutex
	seq      int64
	bookings map[int64]*models.Booking
}

func newMemoryBookingRepository() *memoryBookingRepository {
	return &memoryBookingRepository{bookings: make(map[int64]*models.Booking)}
}

func (r *memoryBookingRepository) NextID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *booking
	r.bookings[booking.ID] = &stored
	if booking.ID > r.seq {
		r.seq = booking.ID
	}
	return nil
}

func (r *memoryBookingRepository) get(id int64) *models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking, ok := r.bookings[id]; ok {
		copied := *booking
		return &copied
	}
	return nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	return r.get(id), nil
}

func (r *memoryBookingRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, booking := range r.bookings {
		if booking.OrderID == orderID {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryBookingRepository) Find(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Booking{}
	for _, booking := range r.bookings {
		if filter.Date != "" && booking.Date != filter.Date {
			continue
		}
		if filter.CreatedBefore != nil && !booking.CreatedAt.Before(*filter.CreatedBefore) {
			continue
		}
		if filter.CreatedAfter != nil && booking.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, status := range filter.Statuses {
				matched = matched || booking.Status == status
			}
			if !matched {
				continue
			}
		}
		result = append(result, *booking)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if filter.Limit > 0 && int64(len(result)) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *memoryBookingRepository) FindConfirmedSlots(ctx context.Context, dates []string) (map[string]map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booked := make(map[string]map[string]bool, len(dates))
	for _, date := range dates {
		for _, booking := range r.bookings {
			if booking.Date != date || !booking.IsConfirmed() {
				continue
			}
			if booked[date] == nil {
				booked[date] = make(map[string]bool)
			}
			booked[date][booking.Time] = true
		}
	}
	return booked, nil
}

func (r *memoryBookingRepository) Confirm(ctx context.Context, id int64, paymentID string, confirmedAt time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, exceptions.ErrBookingNotFound(nil, fmt.Sprintf("id %d", id))
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusExpired {
		return nil, exceptions.ErrBookingNotPending(exceptions.ErrStatusConflict, id, booking.Status.String())
	}
	for _, other := range r.bookings {
		if other.ID != id && other.IsConfirmed() && other.Date == booking.Date && other.Time == booking.Time {
			return nil, exceptions.ErrSlotAlreadyBooked(exceptions.ErrSlotConflict, booking.Date, booking.Time)
		}
	}
	booking.Status = models.BookingStatusConfirmed
	booking.PaymentID = paymentID
	booking.ConfirmedAt = &confirmedAt
	booking.UpdatedAt = confirmedAt
	copied := *booking
	return &copied, nil
}

func (r *memoryBookingRepository) TransitionStatus(ctx context.Context, id int64, from, to models.BookingStatus, update contracts.BookingUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	if update.PaymentID != "" {
		booking.PaymentID = update.PaymentID
	}
	if update.RefundID != "" {
		booking.RefundID = update.RefundID
	}
	if update.ConfirmedAt != nil {
		booking.ConfirmedAt = update.ConfirmedAt
	}
	return true, nil
}

func (r *memoryBookingRepository) RecordNotification(ctx context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking, ok := r.bookings[id]; ok {
		booking.NotificationCount++
		booking.LastNotifiedAt = &at
	}
	return nil
}

func (r *memoryBookingRepository) SetReceiptObject(ctx context.Context, id int64, objectName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking, ok := r.bookings[id]; ok {
		booking.ReceiptObject = objectName
	}
	return nil
}

func (r *memoryBookingRepository) EnsureIndexes(ctx context.Context) error { return nil }

type fakeGateway struct {
	mu       sync.Mutex
	secret   string
	seq      int
	orders   map[string]*responses.GatewayOrder
	payments map[string][]responses.GatewayPayment
	refunds  []string
	createFn func(request *requests.GatewayCreateOrder) error
}

func newFakeGateway(secret string) *fakeGateway {
	return &fakeGateway{
		secret:   secret,
		orders:   make(map[string]*responses.GatewayOrder),
		payments: make(map[string][]responses.GatewayPayment),
	}
}

func (g *fakeGateway) sign(orderID, paymentID string) string {
	return utils.SignHMACSHA256(g.secret, orderID+"|"+paymentID)
}

func (g *fakeGateway) pay(orderID, paymentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders[orderID].Status = "paid"
	g.payments[orderID] = append(g.payments[orderID], responses.GatewayPayment{ID: paymentID, OrderID: orderID, Status: "captured", Captured: true})
}

func (g *fakeGateway) refundCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.refunds)
}

func (g *fakeGateway) CreateOrder(ctx context.Context, request *requests.GatewayCreateOrder) (*responses.GatewayOrder, error) {
	if g.createFn != nil {
		if err := g.createFn(request); err != nil {
			return nil, err
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	order := &responses.GatewayOrder{
		ID:       fmt.Sprintf("order_%d", g.seq),
		Amount:   request.Amount,
		Currency: request.Currency,
		Receipt:  request.Receipt,
		Status:   "created",
	}
	g.orders[order.ID] = order
	copied := *order
	return &copied, nil
}

func (g *fakeGateway) FetchOrder(ctx context.Context, orderID string) (*responses.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	order, ok := g.orders[orderID]
	if !ok {
		return nil, exceptions.ErrPaymentGatewayResponse(nil, orderID, 404, "not found")
	}
	copied := *order
	return &copied, nil
}

func (g *fakeGateway) FetchOrderPayments(ctx context.Context, orderID string) ([]responses.GatewayPayment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]responses.GatewayPayment(nil), g.payments[orderID]...), nil
}

func (g *fakeGateway) RefundPayment(ctx context.Context, paymentID string, request *requests.GatewayRefund) (*responses.GatewayRefund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refunds = append(g.refunds, paymentID)
	return &responses.GatewayRefund{ID: "rfnd_" + paymentID, PaymentID: paymentID, Amount: request.Amount, Status: "processed"}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	return utils.VerifyHMACSHA256(g.secret, orderID+"|"+paymentID, signature)
}

type fakeLocker struct {
	mu    sync.Mutex
	locks map[string]string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{locks: make(map[string]string)}
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.locks[key]; held {
		return false, "", nil
	}
	token := uuid.NewString()
	l.locks[key] = token
	return true, token, nil
}

func (l *fakeLocker) WaitLock(ctx context.Context, key string, expiration, wait time.Duration) (string, error) {
	deadline := time.Now().Add(wait)
	for {
		ok, token, err := l.TryLock(ctx, key, expiration)
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		if time.Now().After(deadline) {
			return "", exceptions.ErrSlotLockWaitTimeout(nil, key)
		}
		time.Sleep(time.Millisecond)
	}
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks[key] == lockValue {
		delete(l.locks, key)
	}
	return nil
}

func (l *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []requests.EmailPayload
	err  error
}

func (m *fakeMailer) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, *request)
	return nil
}

func (m *fakeMailer) ofType(messageType string) []requests.EmailPayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []requests.EmailPayload
	for _, payload := range m.sent {
		if payload.Type == messageType {
			result = append(result, payload)
		}
	}
	return result
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *fakeStorage) EnsureBucket(ctx context.Context, bucketName string) error { return nil }

func (s *fakeStorage) UploadObject(ctx context.Context, request *requests.UploadObject) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[request.ObjectName] = request.Data
	return request.ObjectName, nil
}

func (s *fakeStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	return fmt.Sprintf("http://minio.local/%s/%s?expires=%d", bucketName, objectName, int(expiryTime.Seconds())), nil
}

type fakeLimiter struct {
	allowed bool
	err     error
}

func (l *fakeLimiter) Allow(ctx context.Context, group, resource string, window time.Duration, quota int) (bool, time.Duration, error) {
	return l.allowed, time.Minute, l.err
}

// scheduleSlotUsecase resolves labels against a real schedule and the
// repository's confirmed slots, without the wall-clock "passed" check.
type scheduleSlotUsecase struct {
	schedule    *slots.Schedule
	repo        contracts.BookingRepository
	invalidated int
}

func (s *scheduleSlotUsecase) GetSlots(ctx context.Context, date string) ([]responses.DaySlots, error) {
	return nil, nil
}

func (s *scheduleSlotUsecase) GetNextAvailability(ctx context.Context) (*responses.NextAvailability, error) {
	return &responses.NextAvailability{}, nil
}

func (s *scheduleSlotUsecase) EnsureBookable(ctx context.Context, date, slot string) (string, error) {
	day, err := utils.ParseDate(date, time.UTC)
	if err != nil {
		return "", exceptions.ErrInvalidDate(err, date)
	}
	label, ok := s.schedule.Resolve(day, slot)
	if !ok {
		return "", exceptions.ErrSlotNotOffered(nil, date, slot)
	}
	booked, err := s.repo.FindConfirmedSlots(ctx, []string{date})
	if err != nil {
		return "", err
	}
	if booked[date][label] {
		return "", exceptions.ErrSlotAlreadyBooked(nil, date, label)
	}
	return label, nil
}

func (s *scheduleSlotUsecase) InvalidateNextAvailability(ctx context.Context) error {
	s.invalidated++
	return nil
}
