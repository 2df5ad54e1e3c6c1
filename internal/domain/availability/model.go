package availability

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityBlock maps to the availability_blocks table: one row per
// (practitioner_id, date) holding the slot labels the practitioner has
// manually closed, independent of any bookings.
type AvailabilityBlock struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PractitionerID   string    `db:"practitioner_id" json:"practitioner_id"`
	Date             string    `db:"date" json:"date"`
	UnavailableSlots []string  `db:"unavailable_slots" json:"unavailable_slots"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// BookingTime is a confirmed booking projected to the fields the resolver
// needs: the day it falls on and its slot label.
type BookingTime struct {
	Date string
	Time string
}

// Slot pairs a raw slot label with its patient-facing display string.
type Slot struct {
	Time    string `json:"time"`
	Display string `json:"display"`
}

// DaySlots holds the free slots of one day, split into the two halves of
// the grid and ordered as the catalog orders them.
type DaySlots struct {
	Morning   []Slot `json:"morning"`
	Afternoon []Slot `json:"afternoon"`
}

// DayAvailability is the single-date query result.
type DayAvailability struct {
	Date                 string   `json:"date"`
	Availability         DaySlots `json:"availability"`
	BookedSlots          []string `json:"bookedSlots"`
	ManuallyBlockedSlots []string `json:"manuallyBlockedSlots"`
}

// RangeDay is the per-day entry of a range query result.
type RangeDay struct {
	Availability   DaySlots `json:"availability"`
	BookedSlots    []string `json:"bookedSlots"`
	TotalAvailable int      `json:"totalAvailable"`
	TotalSlots     int      `json:"totalSlots"`
}

// RangeAvailability is the range query result, keyed by ISO date.
type RangeAvailability struct {
	Availability     map[string]RangeDay `json:"availability"`
	DefaultTimeSlots DaySlots            `json:"defaultTimeSlots"`
}

// RangeQuery carries the caller-supplied filters of a range query. Date
// takes precedence over the range bounds when set.
type RangeQuery struct {
	PractitionerID string
	Date           string
	StartDate      string
	EndDate        string
}

// UpsertBlockInput is the writer's request body.
type UpsertBlockInput struct {
	PractitionerID   string   `json:"practitioner_id"`
	Date             string   `json:"date"`
	UnavailableSlots []string `json:"unavailable_slots"`
}
