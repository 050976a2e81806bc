package geocode

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/gateway/api"
	"weatherapp/internal/domain/model"
	"weatherapp/pkg/log"
	"weatherapp/pkg/msg"
	"weatherapp/pkg/util/numberutils"
)

const (
	zipLength   = 5
	resultLimit = 1
)

type geocodeUseCase struct {
	apiGateway api.WeatherGateway
}

func NewGeocodeUseCase(apiGateway api.WeatherGateway) UseCase {
	return &geocodeUseCase{
		apiGateway: apiGateway,
	}
}

// Validate checks the location descriptor without touching the provider
func (uc *geocodeUseCase) Validate(input entity.LocationInput) error {
	switch input.Type {
	case entity.LocationZip:
		if !IsValidZip(input.Zip) {
			return model.NewValidationError(msg.GetMessage("error.validation.zip"))
		}
	case entity.LocationCoords:
		if _, _, err := ParseCoordinates(input.Lat, input.Lon); err != nil {
			return err
		}
	case entity.LocationPlace:
		if strings.TrimSpace(input.Query) == "" {
			return model.NewValidationError(msg.GetMessage("error.validation.search-text"))
		}
	default:
		return model.NewValidationError(msg.GetMessage("error.validation.location-type"))
	}
	return nil
}

// Resolve validates the descriptor and resolves it to a normalized location
func (uc *geocodeUseCase) Resolve(ctx context.Context, input entity.LocationInput) (*entity.NormalizedLocation, error) {
	if err := uc.Validate(input); err != nil {
		return nil, err
	}

	switch input.Type {
	case entity.LocationZip:
		return uc.resolveZip(ctx, strings.TrimSpace(input.Zip))
	case entity.LocationCoords:
		lat, lon, _ := ParseCoordinates(input.Lat, input.Lon)
		return uc.resolveCoords(ctx, lat, lon)
	default:
		return uc.resolveQuery(ctx, input.Query)
	}
}

func (uc *geocodeUseCase) resolveZip(ctx context.Context, zip string) (*entity.NormalizedLocation, error) {
	result, err := uc.apiGateway.GeocodeZip(ctx, zip)
	if err != nil {
		if model.IsKind(err, model.KindConfiguration) {
			return nil, err
		}
		// only an answer from the provider says anything about the ZIP itself
		var providerErr *api.ProviderError
		if errors.As(err, &providerErr) {
			return nil, model.NewGeocodeError(msg.GetMessage("error.geocode.invalid-zip"), err)
		}
		return nil, model.NewGeocodeError(msg.GetMessage("error.aggregation.unavailable"), err)
	}

	return &entity.NormalizedLocation{
		City:    entity.StringOrNil(result.Name),
		Country: entity.StringOrNil(result.Country),
		Lat:     result.Lat,
		Lon:     result.Lon,
		Zip:     &zip,
	}, nil
}

func (uc *geocodeUseCase) resolveQuery(ctx context.Context, query string) (*entity.NormalizedLocation, error) {
	results, err := uc.apiGateway.GeocodeDirect(ctx, query, resultLimit)
	if err != nil {
		if model.IsKind(err, model.KindConfiguration) {
			return nil, err
		}
		return nil, model.NewGeocodeError(msg.GetMessage("error.geocode.failed"), err)
	}
	if len(results) == 0 {
		return nil, model.NewGeocodeError(msg.GetMessage("error.geocode.not-found"), nil)
	}

	first := results[0]
	return &entity.NormalizedLocation{
		City:    entity.StringOrNil(first.Name),
		State:   entity.StringOrNil(first.State),
		Country: entity.StringOrNil(first.Country),
		Lat:     first.Lat,
		Lon:     first.Lon,
	}, nil
}

// resolveCoords never fails on provider trouble: the coordinates are kept and the
// place names stay empty.
func (uc *geocodeUseCase) resolveCoords(ctx context.Context, lat float64, lon float64) (*entity.NormalizedLocation, error) {
	location := &entity.NormalizedLocation{Lat: lat, Lon: lon}

	results, err := uc.apiGateway.GeocodeReverse(ctx, lat, lon, resultLimit)
	if err != nil {
		if model.IsKind(err, model.KindConfiguration) {
			return nil, err
		}
		log.Warn("Reverse geocoding failed, keeping raw coordinates",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return location, nil
	}
	if len(results) == 0 {
		return location, nil
	}

	first := results[0]
	location.City = entity.StringOrNil(first.Name)
	location.State = entity.StringOrNil(first.State)
	location.Country = entity.StringOrNil(first.Country)
	return location, nil
}

// LookupPlace reverse geocodes a coordinate pair for display
func (uc *geocodeUseCase) LookupPlace(ctx context.Context, lat float64, lon float64) (*entity.Place, error) {
	results, err := uc.apiGateway.GeocodeReverse(ctx, lat, lon, resultLimit)
	if err != nil {
		if model.IsKind(err, model.KindConfiguration) {
			return nil, model.NewConfigurationError(msg.GetMessage("error.config.reverse-lookup"))
		}
		return nil, model.NewUpstreamError(msg.GetMessage("error.geocode.reverse-failed"), err)
	}
	if len(results) == 0 {
		return nil, model.NewNotFoundError(msg.GetMessage("error.geocode.not-found"))
	}

	first := results[0]
	return &entity.Place{
		City:    entity.StringOrNil(first.Name),
		State:   entity.StringOrNil(first.State),
		Country: entity.StringOrNil(first.Country),
		Zip:     entity.StringOrNil(first.Zip),
	}, nil
}

// IsValidZip accepts exactly five ASCII digits once surrounding whitespace is trimmed.
func IsValidZip(zip string) bool {
	return numberutils.IsFixedLengthDigits(strings.TrimSpace(zip), zipLength)
}

// ParseCoordinates requires both values to be present and finite.
func ParseCoordinates(lat, lon *entity.Coordinate) (float64, float64, error) {
	invalid := model.NewValidationError(msg.GetMessage("error.validation.coords"))
	if lat == nil || lon == nil {
		return 0, 0, invalid
	}
	latValue, err := lat.Float64()
	if err != nil {
		return 0, 0, invalid
	}
	lonValue, err := lon.Float64()
	if err != nil {
		return 0, 0, invalid
	}
	return latValue, lonValue, nil
}
