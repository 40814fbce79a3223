package postgres

import (
	"errors"
	"net/url"
	"testing"

	"hotel/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubConnect(t *testing.T, dbs ...*sqlx.DB) *int {
	t.Helper()

	calls := 0
	original := connect

	connect = func(_ string) (*sqlx.DB, error) {
		if calls >= len(dbs) {
			return nil, errors.New("connection refused")
		}

		db := dbs[calls]
		calls++

		return db, nil
	}

	t.Cleanup(func() {
		connect = original
		current = nil
	})

	return &calls
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	return sqlx.NewDb(db, "postgres"), mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DB.Postgres.MaxRetry = 1

	return cfg
}

func TestNew_ReusesLiveConnection(t *testing.T) {
	write, writeMock := newMockDB(t)
	read, readMock := newMockDB(t)
	calls := stubConnect(t, write, read)

	first, err := New(testConfig())
	require.NoError(t, err)

	writeMock.ExpectPing()
	readMock.ExpectPing()

	second, err := New(testConfig())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, *calls)
	assert.NoError(t, writeMock.ExpectationsWereMet())
	assert.NoError(t, readMock.ExpectationsWereMet())
}

func TestNew_ReconnectsWhenStale(t *testing.T) {
	write, writeMock := newMockDB(t)
	read, _ := newMockDB(t)
	freshWrite, _ := newMockDB(t)
	freshRead, _ := newMockDB(t)
	calls := stubConnect(t, write, read, freshWrite, freshRead)

	first, err := New(testConfig())
	require.NoError(t, err)

	writeMock.ExpectPing().WillReturnError(errors.New("broken pipe"))

	second, err := New(testConfig())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Same(t, freshWrite, second.Write)
	assert.Equal(t, 4, *calls)
}

func TestNew_FailureIsNotCached(t *testing.T) {
	calls := stubConnect(t)

	conn, err := New(testConfig())
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Nil(t, current)

	_, err = New(testConfig())
	require.Error(t, err)
	assert.Equal(t, 0, *calls)
}

func TestLive_NilConnection(t *testing.T) {
	var conn *Connection

	assert.ErrorIs(t, conn.Live(t.Context()), errNoConnection)
}

func TestDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     string
	}{
		{
			name:     "plain credentials",
			username: "hotel",
			password: "secret",
			want:     "postgres://hotel:secret@db:5432/hotel?sslmode=disable",
		},
		{
			name:     "reserved characters in password",
			username: "hotel",
			password: "p@ss/w0rd:?",
			want:     "postgres://hotel:p%40ss%2Fw0rd%3A%3F@db:5432/hotel?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor := Descriptor(tt.username, tt.password, "db", "5432", "hotel", "disable")
			assert.Equal(t, tt.want, descriptor)

			parsed, err := url.Parse(descriptor)
			require.NoError(t, err)
			assert.Equal(t, "db:5432", parsed.Host)
			assert.Equal(t, "/hotel", parsed.Path)

			password, _ := parsed.User.Password()
			assert.Equal(t, tt.password, password)
		})
	}
}
