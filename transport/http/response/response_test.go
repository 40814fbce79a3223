package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	t.Run("conflict carries details", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, failure.ConflictWithDetails("room is already booked for the requested dates", map[string]any{
			"conflicting_booking_id": "b-1",
		}))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		body := decode(t, rec)
		assert.Equal(t, "room is already booked for the requested dates", body["error"])
		assert.Equal(t, map[string]any{"conflicting_booking_id": "b-1"}, body["details"])
	})

	t.Run("plain errors are internal and omit details", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, errors.New("connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decode(t, rec)
		assert.NotContains(t, body, "details")
	})
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "r-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]any{"data": map[string]any{"id": "r-1"}}, decode(t, rec))
}

func TestDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	response.WithUnhealthy(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVER UNHEALTHY", decode(t, rec)["message"])
}
