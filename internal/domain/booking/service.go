package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kaizenmindbody/kaizen-sub003/internal/platform/calendar"
)

// Service drives the booking status workflow and mirrors each change to
// the external calendar. Booking creation and payment live in a
// separate workflow; this service only moves existing rows between
// statuses.
type Service struct {
	repo     Repository
	notifier calendar.Notifier
	logger   zerolog.Logger
}

func NewService(repo Repository, notifier calendar.Notifier, logger zerolog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPractitioner(ctx context.Context, practitionerID string, limit, offset int) ([]*Booking, int, error) {
	if practitionerID == "" {
		return nil, 0, fmt.Errorf("practitioner_id is required")
	}
	return s.repo.ListByPractitioner(ctx, practitionerID, limit, offset)
}

// Confirm marks the booking confirmed, making its slot unavailable from
// the next availability query onward, and mirrors it to the calendar.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.SetStatus(ctx, id, StatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b, s.notifier.EventCreated)
	return b, nil
}

// Cancel releases the booking's slot and removes the calendar mirror.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.SetStatus(ctx, id, StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b, s.notifier.EventCancelled)
	return b, nil
}

// Reschedule moves the booking to a new date and slot and updates the
// calendar mirror.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, date, slot string) (*Booking, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}
	if slot == "" {
		return nil, fmt.Errorf("time is required")
	}
	b, err := s.repo.Reschedule(ctx, id, date, slot)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b, s.notifier.EventUpdated)
	return b, nil
}

// notify delivers the calendar side effect. Failures are logged and
// swallowed: the booking state change has already been persisted and the
// calendar is a mirror, not a source of truth.
func (s *Service) notify(ctx context.Context, b *Booking, send func(context.Context, calendar.Event) error) {
	err := send(ctx, calendar.Event{
		BookingID:      b.ID.String(),
		PractitionerID: b.PractitionerID,
		PatientID:      b.PatientID,
		Date:           b.Date,
		Time:           b.Time,
		Attendees:      []string{b.PractitionerID, b.PatientID},
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("booking_id", b.ID.String()).
			Str("status", b.Status).
			Msg("calendar notification failed")
	}
}
