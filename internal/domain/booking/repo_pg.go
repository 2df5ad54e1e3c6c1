package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const bookingCols = `id, practitioner_id, patient_id, date::text, time, status, created_at, updated_at`

func (r *repoPG) scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.PractitionerID, &b.PatientID, &b.Date, &b.Time, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return r.scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = $1`, id))
}

func (r *repoPG) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Booking, error) {
	return r.scanBooking(r.pool.QueryRow(ctx, `
		UPDATE bookings SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+bookingCols, id, status))
}

func (r *repoPG) Reschedule(ctx context.Context, id uuid.UUID, date, time string) (*Booking, error) {
	return r.scanBooking(r.pool.QueryRow(ctx, `
		UPDATE bookings SET date = $2::date, time = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+bookingCols, id, date, time))
}

func (r *repoPG) ListByPractitioner(ctx context.Context, practitionerID string, limit, offset int) ([]*Booking, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE practitioner_id = $1`, practitionerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE practitioner_id = $1 ORDER BY date DESC, time DESC LIMIT $2 OFFSET $3`,
		practitionerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}
