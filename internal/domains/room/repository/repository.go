package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	FindDuplicateNumbers(ctx context.Context) ([]model.DuplicateNumber, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FindDuplicateNumbers groups rooms by their case and whitespace insensitive number.
// The unique index only guards exact matches, so this catches near-duplicates from imports.
func (r *repositoryImpl) FindDuplicateNumbers(ctx context.Context) (res []model.DuplicateNumber, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.FindDuplicateNumbers")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := fmt.Sprintf(`SELECT UPPER(BTRIM(%[1]s)) AS number, COUNT(%[2]s) AS count, ARRAY_AGG(%[2]s::text ORDER BY %[2]s) AS ids
		FROM %[3]s
		GROUP BY UPPER(BTRIM(%[1]s))
		HAVING COUNT(%[2]s) > 1
		ORDER BY number`, model.FieldNumber, model.FieldID, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	res = []model.DuplicateNumber{}

	if err = r.db.Read.SelectContext(ctx, &res, query); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to find duplicate room numbers: %w", err)
	}

	return res, nil
}
