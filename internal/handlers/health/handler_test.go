package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/handlers/health"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return &postgres.Connection{Read: conn, Write: conn}, mock
}

func serve(t *testing.T, handler health.Handler) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	return rec
}

func TestHealth_Up(t *testing.T) {
	conn, mock := newConnection(t)
	mock.ExpectPing()
	mock.ExpectPing()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	rec := serve(t, health.New(conn, client, mocks.NewOtel()))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data health.Status `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "up", body.Data.Postgres)
	assert.Equal(t, "up", body.Data.Redis)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth_RedisDown(t *testing.T) {
	conn, mock := newConnection(t)
	mock.ExpectPing()
	mock.ExpectPing()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	rec := serve(t, health.New(conn, client, mocks.NewOtel()))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVER UNHEALTHY")
}

func TestHealth_PostgresDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	rec := serve(t, health.New(&postgres.Connection{}, client, mocks.NewOtel()))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
