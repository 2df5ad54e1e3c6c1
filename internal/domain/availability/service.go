package availability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// Service resolves bookable slots for practitioners and maintains their
// manual blocks. It is stateless; every invocation is independent and
// safe to run concurrently.
type Service struct {
	bookings BookingReader
	blocks   BlockRepository
}

func NewService(bookings BookingReader, blocks BlockRepository) *Service {
	return &Service{bookings: bookings, blocks: blocks}
}

// ResolveDay computes the free slots for one practitioner on one date.
// A slot is free iff it is neither taken by a confirmed booking nor
// manually blocked. A failed booking fetch fails the whole query; a
// failed block fetch is treated as "no manual block".
func (s *Service) ResolveDay(ctx context.Context, practitionerID, date string) (*DayAvailability, error) {
	if practitionerID == "" {
		return nil, fmt.Errorf("%w: practitioner_id is required", ErrInvalidArgument)
	}
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidArgument)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidArgument)
	}

	times, err := s.bookings.ConfirmedTimes(ctx, practitionerID, DateWindow{Date: date})
	if err != nil {
		return nil, fmt.Errorf("%w: fetch bookings: %v", ErrDependencyFailure, err)
	}

	blocked := []string{}
	if block, err := s.blocks.ForDate(ctx, practitionerID, date); err == nil && block != nil {
		blocked = append(blocked, block.UnavailableSlots...)
	}

	booked := []string{}
	occupied := make(map[string]bool)
	for _, t := range times {
		if !occupied[t.Time] {
			booked = append(booked, t.Time)
		}
		occupied[t.Time] = true
	}
	for _, label := range blocked {
		occupied[label] = true
	}

	return &DayAvailability{
		Date:                 date,
		Availability:         freeSlots(occupied),
		BookedSlots:          booked,
		ManuallyBlockedSlots: blocked,
	}, nil
}

// ResolveRange computes per-day availability over a date window. The two
// underlying reads are issued concurrently and joined; either both
// succeed or the whole query fails with no partial result.
func (s *Service) ResolveRange(ctx context.Context, q RangeQuery) (*RangeAvailability, error) {
	if q.PractitionerID == "" {
		return nil, fmt.Errorf("%w: practitioner_id is required", ErrInvalidArgument)
	}
	start, end, err := q.bounds(time.Now())
	if err != nil {
		return nil, err
	}

	w := DateWindow{Date: q.Date, StartDate: q.StartDate, EndDate: q.EndDate}

	var (
		times  []BookingTime
		blocks []*AvailabilityBlock
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		times, err = s.bookings.ConfirmedTimes(gctx, q.PractitionerID, w)
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = s.blocks.InWindow(gctx, q.PractitionerID, w)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyFailure, err)
	}
	_ = blocks // see TODO below

	byDate := make(map[string][]string)
	for _, t := range times {
		byDate[t.Date] = append(byDate[t.Date], t.Time)
	}

	result := &RangeAvailability{
		Availability:     make(map[string]RangeDay),
		DefaultTimeSlots: freeSlots(nil),
	}

	// TODO: manual blocks are fetched for the window but not subtracted
	// per day; only the single-date path applies them. Align the two
	// paths once the booking wizard consumes range availability.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		booked := []string{}
		occupied := make(map[string]bool)
		for _, label := range byDate[key] {
			if !occupied[label] {
				booked = append(booked, label)
			}
			occupied[label] = true
		}
		free := freeSlots(occupied)
		result.Availability[key] = RangeDay{
			Availability:   free,
			BookedSlots:    booked,
			TotalAvailable: len(free.Morning) + len(free.Afternoon),
			TotalSlots:     TotalSlots,
		}
	}

	return result, nil
}

// UpsertBlock replaces the manual block row for (practitioner, date),
// creating it if absent. A missing slot list clears the block; the
// updated_at timestamp is refreshed on every write. Slot labels are
// stored as supplied: labels outside the catalog are never matched by
// the resolver and so have no effect on availability.
func (s *Service) UpsertBlock(ctx context.Context, in UpsertBlockInput) (*AvailabilityBlock, error) {
	if in.PractitionerID == "" {
		return nil, fmt.Errorf("%w: practitioner_id is required", ErrInvalidArgument)
	}
	if in.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidArgument)
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidArgument)
	}

	slots := in.UnavailableSlots
	if slots == nil {
		slots = []string{}
	}
	b := &AvailabilityBlock{
		PractitionerID:   in.PractitionerID,
		Date:             in.Date,
		UnavailableSlots: slots,
	}
	if err := s.blocks.Upsert(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: upsert block: %v", ErrDependencyFailure, err)
	}
	return b, nil
}

// ListBlocks returns a practitioner's manual blocks for the admin UI.
func (s *Service) ListBlocks(ctx context.Context, practitionerID string, limit, offset int) ([]*AvailabilityBlock, int, error) {
	if practitionerID == "" {
		return nil, 0, fmt.Errorf("%w: practitioner_id is required", ErrInvalidArgument)
	}
	items, total, err := s.blocks.ListByPractitioner(ctx, practitionerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list blocks: %v", ErrDependencyFailure, err)
	}
	return items, total, nil
}

// bounds resolves the iteration window: the exact date when set, else the
// supplied range, defaulting the start to the current date and the end to
// the start day.
func (q RangeQuery) bounds(now time.Time) (time.Time, time.Time, error) {
	if q.Date != "" {
		d, err := time.Parse(dateLayout, q.Date)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidArgument)
		}
		return d, d, nil
	}

	start := now.Truncate(24 * time.Hour)
	if q.StartDate != "" {
		d, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidArgument)
		}
		start = d
	}
	end := start
	if q.EndDate != "" {
		d, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidArgument)
		}
		end = d
	}
	return start, end, nil
}

// freeSlots walks the catalog in order and keeps the slots not present in
// the occupied set. A nil set yields the full grid.
func freeSlots(occupied map[string]bool) DaySlots {
	day := DaySlots{Morning: []Slot{}, Afternoon: []Slot{}}
	for _, label := range morningSlots {
		if !occupied[label] {
			day.Morning = append(day.Morning, Slot{Time: label, Display: DisplayLabel(label)})
		}
	}
	for _, label := range afternoonSlots {
		if !occupied[label] {
			day.Afternoon = append(day.Afternoon, Slot{Time: label, Display: DisplayLabel(label)})
		}
	}
	return day
}
