package forecast

import (
	"context"
	"errors"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/gateway/api"
	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/model/external"
	"weatherapp/pkg/msg"
)

type forecastUseCase struct {
	apiGateway api.WeatherGateway
}

func NewForecastUseCase(apiGateway api.WeatherGateway) UseCase {
	return &forecastUseCase{
		apiGateway: apiGateway,
	}
}

// Aggregate fetches the 5 day forecast for the coordinates and summarizes it over window
func (uc *forecastUseCase) Aggregate(ctx context.Context, lat float64, lon float64, units entity.Units, window entity.Window) (*entity.ForecastAggregate, error) {
	response, err := uc.apiGateway.GetForecast(ctx, api.CoordsTarget(lat, lon), units)
	if err != nil {
		return nil, FetchError(err)
	}

	aggregate, err := Aggregate(ToSamples(response.List), response.City.Timezone, window)
	if err != nil {
		return nil, err
	}

	aggregate.NormalizedLocation = entity.NormalizedLocation{
		City:    entity.StringOrNil(response.City.Name),
		Country: entity.StringOrNil(response.City.Country),
		Lat:     lat,
		Lon:     lon,
	}

	return aggregate, nil
}

// FetchError maps a failed forecast call to an aggregation error carrying the provider's
// message, or the generic one. Configuration errors pass through untouched.
func FetchError(err error) error {
	if model.IsKind(err, model.KindConfiguration) {
		return err
	}

	message := msg.GetMessage("error.aggregation.unavailable")
	var providerErr *api.ProviderError
	if errors.As(err, &providerErr) && providerErr.Message != "" {
		message = providerErr.Message
	}
	return model.NewAggregationError(message, err)
}

// ToSamples converts the provider's forecast list, keeping its order.
func ToSamples(items []external.ForecastItem) []entity.ForecastSample {
	samples := make([]entity.ForecastSample, 0, len(items))
	for _, item := range items {
		sample := entity.ForecastSample{
			Time:    item.Dt,
			Temp:    item.Main.Temp,
			TempMin: item.Main.TempMin,
			TempMax: item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		samples = append(samples, sample)
	}
	return samples
}
