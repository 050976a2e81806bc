package weather

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/gateway/api"
	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/model/external"
	"weatherapp/internal/domain/usecase/geocode"
	"weatherapp/pkg/log"
	"weatherapp/pkg/msg"
)

type weatherUseCase struct {
	apiGateway api.WeatherGateway
}

func NewWeatherUseCase(apiGateway api.WeatherGateway) UseCase {
	return &weatherUseCase{
		apiGateway: apiGateway,
	}
}

// Lookup fetches current conditions and the forecast preview for a ZIP or coordinate pair
func (uc *weatherUseCase) Lookup(ctx context.Context, request model.LookupRequest) (*model.LookupResponse, error) {
	target, units, err := parseLookup(request)
	if err != nil {
		return nil, err
	}

	now, fc, err := uc.fetchNowAndForecastInParallel(ctx, target, units)
	if err != nil {
		return nil, err
	}

	return &model.LookupResponse{
		Now:      NormalizeNow(now),
		Forecast: NormalizeForecastPreview(fc.List),
		Source:   entity.SourceOpenWeather,
	}, nil
}

// fetchNowAndForecastInParallel runs both provider calls to completion. When either
// fails, the current observation's error is reported first.
func (uc *weatherUseCase) fetchNowAndForecastInParallel(ctx context.Context, target api.Target, units entity.Units) (*external.CurrentWeatherResponse, *external.ForecastResponse, error) {
	var g errgroup.Group
	var now *external.CurrentWeatherResponse
	var fc *external.ForecastResponse
	var nowErr, fcErr error

	g.Go(func() error {
		now, nowErr = uc.apiGateway.GetCurrentWeather(ctx, target, units)
		return nowErr
	})

	g.Go(func() error {
		fc, fcErr = uc.apiGateway.GetForecast(ctx, target, units)
		return fcErr
	})

	if err := g.Wait(); err != nil {
		log.Warn("Weather lookup failed",
			zap.NamedError("current_error", nowErr),
			zap.NamedError("forecast_error", fcErr))
		return nil, nil, lookupError(nowErr, fcErr)
	}

	return now, fc, nil
}

func lookupError(errs ...error) error {
	for _, err := range errs {
		if model.IsKind(err, model.KindConfiguration) {
			return err
		}
	}

	var cause error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if cause == nil {
			cause = err
		}
		var providerErr *api.ProviderError
		if errors.As(err, &providerErr) && providerErr.Message != "" {
			return model.NewUpstreamError(providerErr.Message, err)
		}
	}

	return model.NewUpstreamError(msg.GetMessage("error.aggregation.unavailable"), cause)
}

func parseLookup(request model.LookupRequest) (api.Target, entity.Units, error) {
	units := entity.UnitsImperial
	if request.Units != "" {
		units = entity.Units(request.Units)
		if !units.IsValid() {
			return api.Target{}, "", model.NewValidationError(msg.GetMessage("error.validation.units"))
		}
	}

	zip := strings.TrimSpace(request.Zip)
	if zip != "" {
		if !geocode.IsValidZip(zip) {
			return api.Target{}, "", model.NewValidationError(msg.GetMessage("error.validation.zip"))
		}
		return api.ZipTarget(zip), units, nil
	}

	if request.Lat == "" || request.Lon == "" {
		return api.Target{}, "", model.NewValidationError(msg.GetMessage("error.validation.zip-or-coords"))
	}

	lat, lon, err := geocode.ParseCoordinates(entity.NewCoordinateFromString(request.Lat), entity.NewCoordinateFromString(request.Lon))
	if err != nil {
		return api.Target{}, "", err
	}
	return api.CoordsTarget(lat, lon), units, nil
}
