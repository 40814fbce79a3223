package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "check_out must be after check_in",
	}

	assert.Equal(t, "check_out must be after check_in", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("invalid check_in")),
			code:    http.StatusBadRequest,
			message: "invalid check_in",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("update request cannot be empty"),
			code:    http.StatusBadRequest,
			message: "update request cannot be empty",
		},
		{
			name:    "not found",
			err:     failure.NotFound("guest not found"),
			code:    http.StatusNotFound,
			message: "guest not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("room is under maintenance"),
			code:    http.StatusConflict,
			message: "room is under maintenance",
		},
		{
			name:    "internal",
			err:     failure.InternalError(errors.New("connection reset")),
			code:    http.StatusInternalServerError,
			message: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			require.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
			assert.Nil(t, f.Details)
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestConflictWithDetails(t *testing.T) {
	err := failure.ConflictWithDetails("room already booked", map[string]any{"conflicting_booking_id": "b-1"})

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, "b-1", failure.GetDetails(err)["conflicting_booking_id"])
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to create booking: %w", failure.Conflict("overlap")),
			expected: http.StatusConflict,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestGetDetails_NonFailure(t *testing.T) {
	assert.Nil(t, failure.GetDetails(errors.New("plain")))
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", failure.NotFound("booking not found"))

	assert.True(t, failure.IsCode(err, http.StatusNotFound))
	assert.False(t, failure.IsCode(err, http.StatusConflict))
	assert.False(t, failure.IsCode(errors.New("plain"), http.StatusNotFound))
}
