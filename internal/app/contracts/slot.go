package contracts

import (
	"context"
	"rehab-service/internal/pkg/dto/responses"
)

type SlotUsecase interface {
	// GetSlots returns one entry for date, or SlotWindowDays entries starting
	// today when date is empty.
	GetSlots(ctx context.Context, date string) ([]responses.DaySlots, error)
	GetNextAvailability(ctx context.Context) (*responses.NextAvailability, error)
	// EnsureBookable returns the canonical slot label. It fails with a 400
	// when the slot is not offered or has passed and with a 409 when it
	// already has a confirmed booking.
	EnsureBookable(ctx context.Context, date, slot string) (string, error)
	InvalidateNextAvailability(ctx context.Context) error
}
