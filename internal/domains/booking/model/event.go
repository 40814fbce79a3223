package model

import "time"

const (
	EventCreated    = "booking.created"
	EventUpdated    = "booking.updated"
	EventCheckedIn  = "booking.checked_in"
	EventCheckedOut = "booking.checked_out"
	EventDeleted    = "booking.deleted"
)

// Event is published after a booking write. RoomStatus is empty when the room was not touched.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	GuestID    string    `json:"guest_id"`
	Status     string    `json:"status"`
	RoomStatus string    `json:"room_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, booking Booking, roomStatus string, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		GuestID:    booking.GuestID,
		Status:     booking.Status,
		RoomStatus: roomStatus,
		OccurredAt: at,
	}
}
