package mocks

import (
	"context"

	"hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

// PassthroughTransactor runs fn directly with a nil transaction, for service tests whose repositories are mocked.
type PassthroughTransactor struct{}

func (PassthroughTransactor) WithTransaction(ctx context.Context, fn repository.TxFunc) error {
	var tx *sqlx.Tx

	return fn(ctx, tx)
}

var _ repository.Transactor = PassthroughTransactor{}
