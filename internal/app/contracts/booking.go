package contracts

import (
	"context"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"time"
)

type BookingUsecase interface {
	CreateOrder(ctx context.Context, request *requests.CreateOrder) (*responses.CreateOrder, error)
	VerifyPayment(ctx context.Context, request *requests.VerifyPayment) (*responses.VerifyPayment, error)
	ListBookings(ctx context.Context, request *requests.ListBookings) ([]responses.Booking, error)
	ResendConfirmation(ctx context.Context, bookingID int64) error
	GetReceiptURL(ctx context.Context, bookingID int64) (*responses.Receipt, error)
	ReconcilePending(ctx context.Context) (*ReconcileSummary, error)
}

type ReconcileSummary struct {
	Checked   int
	Confirmed int
	Expired   int
	Refunded  int
	Failed    int
}

// BookingUpdate lists the optional fields written alongside a status change.
type BookingUpdate struct {
	PaymentID   string
	RefundID    string
	ConfirmedAt *time.Time
}

// BookingRepository finders return a nil booking and nil error when nothing
// matches.
type BookingRepository interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id int64) (*models.Booking, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	Find(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	// FindConfirmedSlots maps date -> time label for confirmed bookings on
	// the given dates.
	FindConfirmedSlots(ctx context.Context, dates []string) (map[string]map[string]bool, error)
	// Confirm moves a Pending or Expired booking to Confirmed. A second
	// confirmed booking for the same slot yields an error wrapping
	// exceptions.ErrSlotConflict; any other current status yields one
	// wrapping exceptions.ErrStatusConflict.
	Confirm(ctx context.Context, id int64, paymentID string, confirmedAt time.Time) (*models.Booking, error)
	// TransitionStatus applies from -> to only when the stored status still
	// equals from. It reports whether a document was changed.
	TransitionStatus(ctx context.Context, id int64, from, to models.BookingStatus, update BookingUpdate) (bool, error)
	RecordNotification(ctx context.Context, id int64, at time.Time) error
	SetReceiptObject(ctx context.Context, id int64, objectName string) error
	EnsureIndexes(ctx context.Context) error
}
