package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/model/dto"
	serviceMocks "hotel/internal/domains/booking/service/mocks"
	"hotel/internal/handlers/booking"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	bookingID = "7f1c2f0e-9d4b-4b7a-8a51-3c2f5b1d9e01"
	guestID   = "0d8e4a6c-2b1f-4c3d-9e7a-5f6b8c9d0e12"
	roomID    = "a3b4c5d6-e7f8-4a9b-8c0d-1e2f3a4b5c6d"
)

func setup(t *testing.T) (*serviceMocks.MockBooking, http.Handler) {
	t.Helper()

	svc := serviceMocks.NewMockBooking(gomock.NewController(t))
	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestCreateBooking(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Create(gomock.Any(), dto.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   roomID,
		CheckIn:  "2024-01-10",
		CheckOut: "2024-01-14",
	}).Return(dto.BookingResponse{ID: bookingID, Nights: 4, TotalAmount: 200, Status: "confirmed"}, nil)

	rec := do(router, http.MethodPost, "/bookings",
		`{"guest_id":"`+guestID+`","room_id":"`+roomID+`","check_in":"2024-01-10","check_out":"2024-01-14"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data dto.BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, bookingID, body.Data.ID)
	assert.InDelta(t, 200, body.Data.TotalAmount, 0)
}

func TestCreateBooking_InvalidBody(t *testing.T) {
	_, router := setup(t)

	rec := do(router, http.MethodPost, "/bookings", `{"guest_id":"not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_ConflictCarriesDetails(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{},
		failure.ConflictWithDetails("room is already booked for the requested dates", map[string]any{"conflicting_booking_id": bookingID}))

	rec := do(router, http.MethodPost, "/bookings",
		`{"guest_id":"`+guestID+`","room_id":"`+roomID+`","check_in":"2024-01-12","check_out":"2024-01-13"}`)

	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "room is already booked for the requested dates", body.Error)
	assert.Equal(t, bookingID, body.Details["conflicting_booking_id"])
}

func TestGetBookings_Filters(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, 2, params.Page)
			require.Len(t, filter.Filters, 3)
			assert.Equal(t, gDto.Filter{
				Field:    "is_paid",
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    "bookings",
			}, filter.Filters[2])

			return dto.GetBookingsResponse{Bookings: []dto.BookingResponse{{ID: bookingID}}, TotalData: 1, TotalPage: 1}, nil
		})

	rec := do(router, http.MethodGet, "/bookings?page=2&room_id="+roomID+"&status=confirmed&is_paid=true", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetBookings_InvalidStatus(t *testing.T) {
	_, router := setup(t)

	rec := do(router, http.MethodGet, "/bookings?status=cancelled", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBookingByID_NotFound(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Get(gomock.Any(), bookingID).Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

	rec := do(router, http.MethodGet, "/bookings/"+bookingID, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBooking_StatusRejected(t *testing.T) {
	_, router := setup(t)

	rec := do(router, http.MethodPatch, "/bookings/"+bookingID, `{"status":"checked-in"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBooking(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Update(gomock.Any(), dto.UpdateBookingRequest{CheckOut: "2024-01-16"}, bookingID).
		Return(dto.BookingResponse{ID: bookingID, Nights: 6, TotalAmount: 300}, nil)

	rec := do(router, http.MethodPatch, "/bookings/"+bookingID, `{"check_out":"2024-01-16"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLifecycleRoutes(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().CheckIn(gomock.Any(), bookingID).Return(dto.BookingResponse{ID: bookingID, Status: "checked-in"}, nil)
	svc.EXPECT().CheckOut(gomock.Any(), bookingID).Return(dto.BookingResponse{}, failure.Conflict("booking is already checked out"))
	svc.EXPECT().Delete(gomock.Any(), bookingID).Return(nil)

	assert.Equal(t, http.StatusOK, do(router, http.MethodPatch, "/bookings/"+bookingID+"/checkin", "").Code)
	assert.Equal(t, http.StatusConflict, do(router, http.MethodPatch, "/bookings/"+bookingID+"/checkout", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/bookings/"+bookingID, "").Code)
}
