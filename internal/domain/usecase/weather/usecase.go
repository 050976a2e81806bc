package weather

import (
	"context"

	"weatherapp/internal/domain/model"
)

type UseCase interface {
	// Lookup fetches current conditions and the forecast preview for a ZIP or coordinate pair
	Lookup(ctx context.Context, request model.LookupRequest) (*model.LookupResponse, error)
}
