package repository_test

import (
	"context"
	"errors"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (repository.Room, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func TestFindDuplicateNumbers(t *testing.T) {
	repo, mock := newRepo(t)

	rows := sqlmock.NewRows([]string{"number", "count", "ids"}).
		AddRow("101", 2, "{a1,b2}").
		AddRow("A7", 3, "{c3,d4,e5}")

	mock.ExpectQuery(`SELECT UPPER\(BTRIM\(number\)\) AS number, COUNT\(id\) AS count`).WillReturnRows(rows)

	res, err := repo.FindDuplicateNumbers(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, "101", res[0].Number)
	assert.Equal(t, 2, res[0].Count)
	assert.Equal(t, []string{"a1", "b2"}, []string(res[0].IDs))
	assert.Equal(t, []string{"c3", "d4", "e5"}, []string(res[1].IDs))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDuplicateNumbers_None(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`HAVING COUNT\(id\) > 1`).WillReturnRows(sqlmock.NewRows([]string{"number", "count", "ids"}))

	res, err := repo.FindDuplicateNumbers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFindDuplicateNumbers_Error(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindDuplicateNumbers(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}
