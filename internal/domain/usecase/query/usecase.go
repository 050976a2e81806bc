package query

import (
	"context"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/model"
)

type UseCase interface {
	// Create validates the request, resolves the location, aggregates the forecast and stores the query
	Create(ctx context.Context, dto model.CreateQueryDTO) (*entity.LocationQuery, error)

	// Update applies a partial update and always re-aggregates the forecast
	Update(ctx context.Context, id string, dto model.UpdateQueryDTO) (*entity.LocationQuery, error)

	FindByID(ctx context.Context, id string) (*entity.LocationQuery, error)

	// FindAll lists saved queries, newest first
	FindAll(ctx context.Context) ([]entity.LocationQuery, error)

	DeleteByID(ctx context.Context, id string) error

	// ExtendRange moves the end date one day later
	ExtendRange(ctx context.Context, id string) (*entity.LocationQuery, error)

	// ReduceRange moves the end date one day earlier, keeping at least one day
	ReduceRange(ctx context.Context, id string) (*entity.LocationQuery, error)

	// Refresh re-aggregates the stored query without changing its inputs
	Refresh(ctx context.Context, id string) (*entity.LocationQuery, error)
}
