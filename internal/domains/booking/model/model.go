package model

import (
	"time"

	"camargue/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"
)

// Status is the reservation lifecycle state. There is no pending state:
// a reservation is confirmed the moment it is created.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Booking reserves the boat for the half-open date range [StartDate, EndDate).
// EndDate is the checkout day and is free for the next guest.
type Booking struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    Status    `db:"status"`
	model.Metadata
}

// Overlaps reports whether the reservation intersects [start, end).
// Back-to-back ranges sharing a boundary day do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartDate.Before(end) && b.EndDate.After(start)
}
