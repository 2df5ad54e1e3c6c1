package availability

import "context"

// DateWindow restricts a fetch to a date or date range. Exactly one rule
// applies, in this order: Date set -> that day only (range bounds are
// ignored); both bounds set -> inclusive range; only StartDate -> open
// upper bound; only EndDate -> open lower bound. Both resolver fetches
// apply the same window so they stay aligned.
type DateWindow struct {
	Date      string
	StartDate string
	EndDate   string
}

// BookingReader fetches confirmed bookings from the bookings table.
// Non-confirmed bookings never occupy a slot and are filtered at the
// query level.
type BookingReader interface {
	ConfirmedTimes(ctx context.Context, practitionerID string, w DateWindow) ([]BookingTime, error)
}

// BlockRepository persists and fetches manual availability blocks.
type BlockRepository interface {
	// ForDate returns the block row for (practitionerID, date), or
	// (nil, nil) when no row exists.
	ForDate(ctx context.Context, practitionerID, date string) (*AvailabilityBlock, error)
	InWindow(ctx context.Context, practitionerID string, w DateWindow) ([]*AvailabilityBlock, error)
	ListByPractitioner(ctx context.Context, practitionerID string, limit, offset int) ([]*AvailabilityBlock, int, error)
	Upsert(ctx context.Context, b *AvailabilityBlock) error
}
