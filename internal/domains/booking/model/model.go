package model

import (
	"slices"
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldGuestID     = "guest_id"
	FieldRoomID      = "room_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldTotalAmount = "total_amount"
	FieldStatus      = "status"
	FieldIsPaid      = "is_paid"
)

const (
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked-in"
	StatusCheckedOut = "checked-out"
)

// ActiveStatuses hold a room for their interval.
var ActiveStatuses = []string{StatusConfirmed, StatusCheckedIn}

type Booking struct {
	ID          string    `db:"id"`
	GuestID     string    `db:"guest_id"`
	RoomID      string    `db:"room_id"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	TotalAmount float64   `db:"total_amount"`
	Status      string    `db:"status"`
	IsPaid      bool      `db:"is_paid"`
	model.Metadata
}

func IsActiveStatus(status string) bool {
	return slices.Contains(ActiveStatuses, status)
}

func (b Booking) IsActive() bool {
	return IsActiveStatus(b.Status)
}

// Overlaps uses half-open intervals: a stay ending on the day another begins does not collide.
func (b Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn)
}
