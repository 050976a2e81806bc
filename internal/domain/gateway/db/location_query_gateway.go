package db

import (
	"context"

	"weatherapp/internal/domain/entity"
)

// LocationQueryGateway stores saved queries. Lookups of a missing id return nil without error.
type LocationQueryGateway interface {
	// FindAll returns every saved query, newest first
	FindAll(ctx context.Context) ([]entity.LocationQuery, error)
	FindByID(ctx context.Context, id string) (*entity.LocationQuery, error)

	// FindIDsAfter pages through ids in ascending order, starting after lastID
	FindIDsAfter(ctx context.Context, lastID string, limit int) ([]string, error)

	// Create assigns ID and timestamps and returns the stored record
	Create(ctx context.Context, query entity.LocationQuery) (*entity.LocationQuery, error)

	// UpdateByID writes only the fields set in patch and returns the stored record
	UpdateByID(ctx context.Context, id string, patch entity.QueryPatch) (*entity.LocationQuery, error)

	// DeleteByID reports whether a record was removed
	DeleteByID(ctx context.Context, id string) (bool, error)
}
