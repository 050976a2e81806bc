package geocode

import (
	"context"

	"weatherapp/internal/domain/entity"
)

type UseCase interface {
	// Validate checks the location descriptor without touching the provider
	Validate(input entity.LocationInput) error

	// Resolve validates the descriptor and resolves it to a normalized location
	Resolve(ctx context.Context, input entity.LocationInput) (*entity.NormalizedLocation, error)

	// LookupPlace reverse geocodes a coordinate pair for display
	LookupPlace(ctx context.Context, lat float64, lon float64) (*entity.Place, error)
}
