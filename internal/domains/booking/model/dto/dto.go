package dto

import (
	"time"

	"hotel/internal/domains/booking/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// ParseStayTime accepts an RFC3339 timestamp or a YYYY-MM-DD day in the application timezone.
func ParseStayTime(value string) (time.Time, error) {
	return timezone.ParseFirst(value, constant.DateFormat, constant.StayDayFormat) //nolint:wrapcheck
}

// ParseStay parses both ends of a stay and requires check_out to be strictly after check_in.
func ParseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := ParseStayTime(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check_in must be an RFC3339 timestamp or a YYYY-MM-DD date") //nolint:wrapcheck
	}

	out, err := ParseStayTime(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check_out must be an RFC3339 timestamp or a YYYY-MM-DD date") //nolint:wrapcheck
	}

	if err = ValidateStay(in, out); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return in, out, nil
}

func ValidateStay(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString("check_out must be after check_in") //nolint:wrapcheck
	}

	return nil
}

type CreateBookingRequest struct {
	GuestID  string `json:"guest_id"  validate:"required,uuid"`
	RoomID   string `json:"room_id"   validate:"required,uuid"`
	CheckIn  string `json:"check_in"  validate:"required,staydate"`
	CheckOut string `json:"check_out" validate:"required,staydate"`
	IsPaid   *bool  `json:"is_paid"   validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel(user string, availability model.Availability) model.Booking {
	isPaid := false
	if c.IsPaid != nil {
		isPaid = *c.IsPaid
	}

	return model.Booking{
		ID:          uuid.NewString(),
		GuestID:     c.GuestID,
		RoomID:      c.RoomID,
		CheckIn:     availability.CheckIn,
		CheckOut:    availability.CheckOut,
		TotalAmount: availability.TotalAmount,
		Status:      model.StatusConfirmed,
		IsPaid:      isPaid,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateBookingRequest is a partial update. Status only moves through check-in and check-out.
type UpdateBookingRequest struct {
	GuestID  string `db:"guest_id" json:"guest_id"  validate:"omitempty,uuid"`
	RoomID   string `db:"room_id"  json:"room_id"   validate:"omitempty,uuid"`
	CheckIn  string `json:"check_in"  validate:"omitempty,staydate"`
	CheckOut string `json:"check_out" validate:"omitempty,staydate"`
	IsPaid   *bool  `db:"is_paid"  json:"is_paid"   validate:"omitempty"`
	Status   string `json:"status"    validate:"empty"`
}

func (u *UpdateBookingRequest) IsEmpty() bool {
	return u.GuestID == "" && u.RoomID == "" && u.CheckIn == "" && u.CheckOut == "" && u.IsPaid == nil
}

func (u *UpdateBookingRequest) ChangesStay() bool {
	return u.RoomID != "" || u.CheckIn != "" || u.CheckOut != ""
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,staydate"`
	CheckOut string `json:"check_out" validate:"required,staydate"`
}

type AvailableRoomsRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,staydate"`
	CheckOut string `json:"check_out" validate:"required,staydate"`
	Type     string `json:"type"      validate:"omitempty,oneof=single double deluxe suite"`
}

type AvailabilityResponse struct {
	RoomID               string  `json:"room_id"`
	CheckIn              string  `json:"check_in"`
	CheckOut             string  `json:"check_out"`
	Available            bool    `json:"available"`
	Reason               string  `json:"reason,omitempty"`
	ConflictingBookingID string  `json:"conflicting_booking_id,omitempty"`
	Nights               int     `json:"nights"`
	TotalAmount          float64 `json:"total_amount"`
}

func (a *AvailabilityResponse) FromModel(model model.Availability) {
	a.RoomID = model.RoomID
	a.CheckIn = timezone.Format(model.CheckIn, constant.DateFormat)
	a.CheckOut = timezone.Format(model.CheckOut, constant.DateFormat)
	a.Available = model.Admissible
	a.Reason = model.Reason
	a.ConflictingBookingID = model.ConflictingBookingID
	a.Nights = model.Nights
	a.TotalAmount = model.TotalAmount
}

type AvailableRoomsResponse struct {
	CheckIn  string                 `json:"check_in"`
	CheckOut string                 `json:"check_out"`
	Nights   int                    `json:"nights"`
	Rooms    []roomDto.RoomResponse `json:"rooms"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	GuestID     string  `json:"guest_id"`
	RoomID      string  `json:"room_id"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	IsPaid      bool    `json:"is_paid"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.GuestID = booking.GuestID
	r.RoomID = booking.RoomID
	r.CheckIn = timezone.Format(booking.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(booking.CheckOut, constant.DateFormat)
	r.Nights = model.Nights(booking.CheckIn, booking.CheckOut)
	r.TotalAmount = booking.TotalAmount
	r.Status = booking.Status
	r.IsPaid = booking.IsPaid
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
