package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Booking Reader ===========

type bookingReaderPG struct{ pool *pgxpool.Pool }

func NewBookingReaderPG(pool *pgxpool.Pool) BookingReader { return &bookingReaderPG{pool: pool} }

func (r *bookingReaderPG) ConfirmedTimes(ctx context.Context, practitionerID string, w DateWindow) ([]BookingTime, error) {
	query := `SELECT date::text, time FROM bookings WHERE practitioner_id = $1 AND status = 'confirmed'`
	args := []interface{}{practitionerID}
	query, args = w.apply(query, args)
	query += ` ORDER BY date, time`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BookingTime
	for rows.Next() {
		var t BookingTime
		if err := rows.Scan(&t.Date, &t.Time); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// =========== Block Repository ===========

type blockRepoPG struct{ pool *pgxpool.Pool }

func NewBlockRepoPG(pool *pgxpool.Pool) BlockRepository { return &blockRepoPG{pool: pool} }

const blockCols = `id, practitioner_id, date::text, unavailable_slots, created_at, updated_at`

func (r *blockRepoPG) scanBlock(row pgx.Row) (*AvailabilityBlock, error) {
	var b AvailabilityBlock
	err := row.Scan(&b.ID, &b.PractitionerID, &b.Date, &b.UnavailableSlots, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *blockRepoPG) ForDate(ctx context.Context, practitionerID, date string) (*AvailabilityBlock, error) {
	b, err := r.scanBlock(r.pool.QueryRow(ctx,
		`SELECT `+blockCols+` FROM availability_blocks WHERE practitioner_id = $1 AND date = $2::date`,
		practitionerID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *blockRepoPG) InWindow(ctx context.Context, practitionerID string, w DateWindow) ([]*AvailabilityBlock, error) {
	query := `SELECT ` + blockCols + ` FROM availability_blocks WHERE practitioner_id = $1`
	args := []interface{}{practitionerID}
	query, args = w.apply(query, args)
	query += ` ORDER BY date`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AvailabilityBlock
	for rows.Next() {
		b, err := r.scanBlock(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *blockRepoPG) ListByPractitioner(ctx context.Context, practitionerID string, limit, offset int) ([]*AvailabilityBlock, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM availability_blocks WHERE practitioner_id = $1`, practitionerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+blockCols+` FROM availability_blocks WHERE practitioner_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`,
		practitionerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*AvailabilityBlock
	for rows.Next() {
		b, err := r.scanBlock(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

// Upsert relies on the UNIQUE (practitioner_id, date) constraint; the
// last write wins and updated_at is refreshed whether or not the slot
// set changed.
func (r *blockRepoPG) Upsert(ctx context.Context, b *AvailabilityBlock) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO availability_blocks (id, practitioner_id, date, unavailable_slots)
		VALUES ($1, $2, $3::date, $4)
		ON CONFLICT (practitioner_id, date)
		DO UPDATE SET unavailable_slots = EXCLUDED.unavailable_slots, updated_at = NOW()
		RETURNING `+blockCols,
		b.ID, b.PractitionerID, b.Date, b.UnavailableSlots)
	saved, err := r.scanBlock(row)
	if err != nil {
		return err
	}
	*b = *saved
	return nil
}

// apply appends the window's date filter. Both resolver fetches go
// through here so the two queries always cover the same days.
func (w DateWindow) apply(query string, args []interface{}) (string, []interface{}) {
	idx := len(args) + 1
	switch {
	case w.Date != "":
		query += fmt.Sprintf(` AND date = $%d::date`, idx)
		args = append(args, w.Date)
	case w.StartDate != "" && w.EndDate != "":
		query += fmt.Sprintf(` AND date >= $%d::date AND date <= $%d::date`, idx, idx+1)
		args = append(args, w.StartDate, w.EndDate)
	case w.StartDate != "":
		query += fmt.Sprintf(` AND date >= $%d::date`, idx)
		args = append(args, w.StartDate)
	case w.EndDate != "":
		query += fmt.Sprintf(` AND date <= $%d::date`, idx)
		args = append(args, w.EndDate)
	}
	return query, args
}
