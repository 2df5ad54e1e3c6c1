package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking maps to the bookings table. Only confirmed bookings occupy a
// slot; the availability resolver filters on status at the query level.
type Booking struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PractitionerID string    `db:"practitioner_id" json:"practitioner_id"`
	PatientID      string    `db:"patient_id" json:"patient_id"`
	Date           string    `db:"date" json:"date"`
	Time           string    `db:"time" json:"time"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)
