package forecast

import (
	"context"

	"weatherapp/internal/domain/entity"
)

type UseCase interface {
	// Aggregate fetches the 5 day forecast for the coordinates and summarizes it over window
	Aggregate(ctx context.Context, lat float64, lon float64, units entity.Units, window entity.Window) (*entity.ForecastAggregate, error)
}
