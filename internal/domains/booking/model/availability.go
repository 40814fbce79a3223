package model

import "time"

const (
	ReasonMaintenance = "room_under_maintenance"
	ReasonOverlap     = "overlapping_booking"
)

// StayQuery asks whether a room can host the interval [CheckIn, CheckOut).
// ExcludeBookingID skips a booking that is being moved.
type StayQuery struct {
	RoomID           string
	CheckIn          time.Time
	CheckOut         time.Time
	ExcludeBookingID string
}

type Availability struct {
	RoomID               string
	CheckIn              time.Time
	CheckOut             time.Time
	Admissible           bool
	Reason               string
	ConflictingBookingID string
	Nights               int
	TotalAmount          float64
}
