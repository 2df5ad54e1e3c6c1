package booking

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error)
	Reschedule(ctx context.Context, id uuid.UUID, date, time string) (*Booking, error)
	ListByPractitioner(ctx context.Context, practitionerID string, limit, offset int) ([]*Booking, int, error)
}
