package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guestPayload struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type roomPayload struct {
	Number string  `json:"number" validate:"required,notblank"`
	Type   string  `json:"type"   validate:"required,oneof=single double deluxe suite"`
	Price  float64 `json:"price"  validate:"required,gt=0"`
}

type stayPayload struct {
	RoomID   string `json:"room_id"   validate:"required,uuid"`
	CheckIn  string `json:"check_in"  validate:"required,staydate"`
	CheckOut string `json:"check_out" validate:"required,staydate"`
	Status   string `json:"status"    validate:"empty"`
}

const roomID = "a3b4c5d6-e7f8-4a9b-8c0d-1e2f3a4b5c6d"

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "missing guest name",
			err:     validator.ValidateStruct(&guestPayload{Email: "ada@example.com"}),
			message: "name is required",
		},
		{
			name:    "invalid guest email",
			err:     validator.ValidateStruct(&guestPayload{Name: "Ada", Email: "ada"}),
			message: "email must be a valid email address",
		},
		{
			name:    "unknown room type",
			err:     validator.ValidateStruct(&roomPayload{Number: "101", Type: "penthouse", Price: 80}),
			message: "type must be one of single double deluxe suite",
		},
		{
			name:    "blank room number",
			err:     validator.ValidateStruct(&roomPayload{Number: "   ", Type: "suite", Price: 80}),
			message: "number cannot be blank",
		},
		{
			name:    "non positive price",
			err:     validator.ValidateStruct(&roomPayload{Number: "101", Type: "suite", Price: -5}),
			message: "price must be greater than 0",
		},
		{
			name:    "room id not a uuid",
			err:     validator.ValidateStruct(&stayPayload{RoomID: "101", CheckIn: "2024-01-10", CheckOut: "2024-01-14"}),
			message: "room_id must be a valid UUID",
		},
		{
			name:    "status on a patch",
			err:     validator.ValidateStruct(&stayPayload{RoomID: roomID, CheckIn: "2024-01-10", CheckOut: "2024-01-14", Status: "checked-in"}),
			message: "status cannot be set on this request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(tt.err))
		})
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&guestPayload{Name: "Ada", Email: "ada@example.com"}))
	assert.NoError(t, validator.ValidateStruct(&roomPayload{Number: "101", Type: "deluxe", Price: 120.5}))
	assert.NoError(t, validator.ValidateStruct(&stayPayload{RoomID: roomID, CheckIn: "2024-01-10", CheckOut: "2024-01-14T11:00:00Z"}))
}

func TestStayDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "calendar day", value: "2024-01-10", valid: true},
		{name: "rfc3339 timestamp", value: "2024-01-10T14:00:00Z", valid: true},
		{name: "rfc3339 with offset", value: "2024-01-10T14:00:00+07:00", valid: true},
		{name: "free text", value: "next tuesday", valid: false},
		{name: "day first", value: "10-01-2024", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&stayPayload{RoomID: roomID, CheckIn: tt.value, CheckOut: "2024-02-01"})

			if tt.valid {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, "check_in must be an RFC3339 timestamp or a YYYY-MM-DD date")
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("checked-in", "oneof=confirmed checked-in checked-out"))

	err := validator.ValidateVar("cancelled", "oneof=confirmed checked-in checked-out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of confirmed checked-in checked-out")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid body",
			body: `{"number":"204","type":"double","price":95}`,
		},
		{
			name:    "fails validation",
			body:    `{"number":"204","type":"double"}`,
			wantErr: "price is required",
		},
		{
			name:    "malformed json",
			body:    `{"number":`,
			wantErr: "failed to decode request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload roomPayload

			err := validator.Validate(strings.NewReader(tt.body), &payload)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "204", payload.Number)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}
