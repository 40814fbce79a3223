package room_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/infras/otel/mocks"
	bookingDto "hotel/internal/domains/booking/model/dto"
	serviceMocks "hotel/internal/domains/booking/service/mocks"
	"hotel/internal/handlers/room"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomID = "a3b4c5d6-e7f8-4a9b-8c0d-1e2f3a4b5c6d"

// The availability routes only reach the booking service.
func setup(t *testing.T) (*serviceMocks.MockBooking, http.Handler) {
	t.Helper()

	bookings := serviceMocks.NewMockBooking(gomock.NewController(t))
	handler := room.New(nil, bookings, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return bookings, router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestGetRoomAvailability_RejectionIsOK(t *testing.T) {
	bookings, router := setup(t)

	bookings.EXPECT().CheckAvailability(gomock.Any(), roomID, bookingDto.AvailabilityRequest{
		CheckIn:  "2024-01-12",
		CheckOut: "2024-01-13",
	}).Return(bookingDto.AvailabilityResponse{
		RoomID:               roomID,
		Available:            false,
		Reason:               "overlap",
		ConflictingBookingID: "b-1",
		Nights:               1,
		TotalAmount:          50,
	}, nil)

	rec := get(router, "/rooms/"+roomID+"/availability?check_in=2024-01-12&check_out=2024-01-13")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data bookingDto.AvailabilityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Data.Available)
	assert.Equal(t, "b-1", body.Data.ConflictingBookingID)
}

func TestGetRoomAvailability_MissingDates(t *testing.T) {
	_, router := setup(t)

	rec := get(router, "/rooms/"+roomID+"/availability?check_in=2024-01-12")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailableRooms(t *testing.T) {
	bookings, router := setup(t)

	bookings.EXPECT().AvailableRooms(gomock.Any(), bookingDto.AvailableRoomsRequest{
		CheckIn:  "2024-01-10",
		CheckOut: "2024-01-14",
		Type:     "suite",
	}).Return(bookingDto.AvailableRoomsResponse{Nights: 4}, nil)

	rec := get(router, "/rooms/available?check_in=2024-01-10&check_out=2024-01-14&type=suite")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetAvailableRooms_InvalidType(t *testing.T) {
	_, router := setup(t)

	rec := get(router, "/rooms/available?check_in=2024-01-10&check_out=2024-01-14&type=penthouse")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
