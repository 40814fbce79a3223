package dto_test

import (
	"net/http"
	"testing"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStay(t *testing.T) {
	in, out, err := dto.ParseStay("2024-01-10", "2024-01-12T10:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, 10, in.Day())
	assert.True(t, out.After(in))
}

func TestParseStay_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{name: "equal dates", checkIn: "2024-01-10", checkOut: "2024-01-10"},
		{name: "reversed dates", checkIn: "2024-01-12", checkOut: "2024-01-10"},
		{name: "unparseable check_in", checkIn: "soon", checkOut: "2024-01-10"},
		{name: "unparseable check_out", checkIn: "2024-01-10", checkOut: "later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := dto.ParseStay(tt.checkIn, tt.checkOut)

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	paid := true
	req := dto.CreateBookingRequest{GuestID: "g", RoomID: "r", CheckIn: "2024-01-10", CheckOut: "2024-01-12", IsPaid: &paid}
	availability := model.Availability{
		CheckIn:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		Admissible:  true,
		Nights:      2,
		TotalAmount: 100,
	}

	booking := req.ToModel("desk", availability)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, model.StatusConfirmed, booking.Status)
	assert.True(t, booking.IsPaid)
	assert.InDelta(t, 100.0, booking.TotalAmount, 0)
	assert.Equal(t, availability.CheckIn, booking.CheckIn)
	assert.Equal(t, "desk", booking.CreatedBy)
}

func TestCreateBookingRequest_DefaultsUnpaid(t *testing.T) {
	req := dto.CreateBookingRequest{}

	assert.False(t, req.ToModel("desk", model.Availability{}).IsPaid)
}

func TestUpdateBookingRequest(t *testing.T) {
	paid := false

	assert.True(t, (&dto.UpdateBookingRequest{}).IsEmpty())
	assert.False(t, (&dto.UpdateBookingRequest{IsPaid: &paid}).IsEmpty())
	assert.False(t, (&dto.UpdateBookingRequest{IsPaid: &paid}).ChangesStay())
	assert.True(t, (&dto.UpdateBookingRequest{CheckOut: "2024-01-12"}).ChangesStay())
	assert.True(t, (&dto.UpdateBookingRequest{RoomID: "r"}).ChangesStay())
}

func TestBookingResponse_FromModel(t *testing.T) {
	booking := model.Booking{
		ID:          "b",
		CheckIn:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC),
		TotalAmount: 300,
		Status:      model.StatusCheckedIn,
	}

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, model.StatusCheckedIn, res.Status)
	assert.InDelta(t, 300.0, res.TotalAmount, 0)
}
