package slots

import (
	"context"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/models"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type confirmedSlotsRepository struct {
	booked map[string]map[string]bool
	calls  int
	err    error
}

func (r *confirmedSlotsRepository) book(date, slot string) {
	if r.booked == nil {
		r.booked = make(map[string]map[string]bool)
	}
	if r.booked[date] == nil {
		r.booked[date] = make(map[string]bool)
	}
	r.booked[date][slot] = true
}

func (r *confirmedSlotsRepository) FindConfirmedSlots(ctx context.Context, dates []string) (map[string]map[string]bool, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	result := make(map[string]map[string]bool, len(dates))
	for _, date := range dates {
		if slots, ok := r.booked[date]; ok {
			result[date] = slots
		}
	}
	return result, nil
}

func (r *confirmedSlotsRepository) NextID(ctx context.Context) (int64, error) { return 0, nil }
func (r *confirmedSlotsRepository) Create(ctx context.Context, booking *models.Booking) error {
	return nil
}
func (r *confirmedSlotsRepository) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	return nil, nil
}
func (r *confirmedSlotsRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	return nil, nil
}
func (r *confirmedSlotsRepository) Find(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	return nil, nil
}
func (r *confirmedSlotsRepository) Confirm(ctx context.Context, id int64, paymentID string, confirmedAt time.Time) (*models.Booking, error) {
	return nil, nil
}
func (r *confirmedSlotsRepository) TransitionStatus(ctx context.Context, id int64, from, to models.BookingStatus, update contracts.BookingUpdate) (bool, error) {
	return false, nil
}
func (r *confirmedSlotsRepository) RecordNotification(ctx context.Context, id int64, at time.Time) error {
	return nil
}
func (r *confirmedSlotsRepository) SetReceiptObject(ctx context.Context, id int64, objectName string) error {
	return nil
}
func (r *confirmedSlotsRepository) EnsureIndexes(ctx context.Context) error { return nil }

type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.values[key], nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = string(encoded)
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return false, nil
}
func (c *memoryCache) DeleteIfValue(ctx context.Context, key string, value interface{}) (bool, error) {
	return false, nil
}
func (c *memoryCache) ExpireIfValue(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return false, nil
}
func (c *memoryCache) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	return 0, nil
}
