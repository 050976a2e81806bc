package query

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/gateway/db"
	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/usecase/forecast"
	"weatherapp/internal/domain/usecase/geocode"
	"weatherapp/pkg/log"
	"weatherapp/pkg/metrics"
	"weatherapp/pkg/msg"
)

type queryUseCase struct {
	gateway         db.LocationQueryGateway
	geocodeUseCase  geocode.UseCase
	forecastUseCase forecast.UseCase
}

func NewQueryUseCase(gateway db.LocationQueryGateway, geocodeUseCase geocode.UseCase, forecastUseCase forecast.UseCase) UseCase {
	return &queryUseCase{
		gateway:         gateway,
		geocodeUseCase:  geocodeUseCase,
		forecastUseCase: forecastUseCase,
	}
}

// Create validates the request, resolves the location, aggregates the forecast and stores the query
func (uc *queryUseCase) Create(ctx context.Context, dto model.CreateQueryDTO) (created *entity.LocationQuery, err error) {
	defer observe("create", &err)

	failed := invalidFields(dto)
	if failed["Location"] || failed["DateRange"] {
		return nil, model.NewValidationError(msg.GetMessage("error.validation.required-location-range"))
	}
	if err = uc.geocodeUseCase.Validate(*dto.Location); err != nil {
		return nil, err
	}
	dateRange, window, err := parseDateRange(*dto.DateRange)
	if err != nil {
		return nil, err
	}
	if failed["Units"] {
		return nil, model.NewValidationError(msg.GetMessage("error.validation.units"))
	}
	units := entity.UnitsImperial
	if dto.Units != "" {
		units = entity.Units(dto.Units)
	}

	resolved, err := uc.geocodeUseCase.Resolve(ctx, *dto.Location)
	if err != nil {
		return nil, err
	}

	aggregate, err := uc.forecastUseCase.Aggregate(ctx, resolved.Lat, resolved.Lon, units, window)
	if err != nil {
		return nil, err
	}

	fromForecast := aggregate.NormalizedLocation
	query := entity.LocationQuery{
		LocationInput: *dto.Location,
		NormalizedLocation: entity.NormalizedLocation{
			City:    entity.FirstNonNil(resolved.City, fromForecast.City),
			State:   entity.FirstNonNil(resolved.State, fromForecast.State),
			Country: entity.FirstNonNil(resolved.Country, fromForecast.Country),
			Lat:     resolved.Lat,
			Lon:     resolved.Lon,
			Zip:     resolved.Zip,
		},
		DateRange: dateRange,
		Units:     units,
		Source:    entity.SourceOpenWeather,
		Result:    entity.QueryResult{Summary: aggregate.Summary, Series: aggregate.Series},
		Notes:     dto.Notes,
	}

	created, err = uc.gateway.Create(ctx, query)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}

	log.Info("Saved query created",
		zap.String("query_id", created.ID),
		zap.String("location_type", string(created.LocationInput.Type)),
		zap.String("start", created.DateRange.Start),
		zap.String("end", created.DateRange.End))
	return created, nil
}

// Update applies a partial update and always re-aggregates the forecast, even when only
// notes change.
func (uc *queryUseCase) Update(ctx context.Context, id string, dto model.UpdateQueryDTO) (updated *entity.LocationQuery, err error) {
	defer observe("update", &err)

	if dto.Location != nil {
		if err = uc.geocodeUseCase.Validate(*dto.Location); err != nil {
			return nil, err
		}
	}
	var newRange *entity.DateRange
	if dto.DateRange != nil {
		dateRange, _, err := parseDateRange(*dto.DateRange)
		if err != nil {
			return nil, err
		}
		newRange = &dateRange
	}

	existing, err := uc.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	var resolved *entity.NormalizedLocation
	if dto.Location != nil {
		if resolved, err = uc.geocodeUseCase.Resolve(ctx, *dto.Location); err != nil {
			return nil, err
		}
	}

	dateRange := existing.DateRange
	if newRange != nil {
		dateRange = *newRange
	}
	_, window, err := parseDateRange(dateRange)
	if err != nil {
		return nil, fmt.Errorf("stored date range of query %s: %w", id, err)
	}

	lat, lon := existing.NormalizedLocation.Lat, existing.NormalizedLocation.Lon
	if resolved != nil {
		lat, lon = resolved.Lat, resolved.Lon
	}

	aggregate, err := uc.forecastUseCase.Aggregate(ctx, lat, lon, existing.Units, window)
	if err != nil {
		return nil, err
	}

	normalized := mergeNormalizedLocation(resolved, existing.NormalizedLocation, aggregate.NormalizedLocation)
	normalized.Lat, normalized.Lon = lat, lon

	patch := entity.QueryPatch{
		LocationInput:      dto.Location,
		NormalizedLocation: &normalized,
		DateRange:          newRange,
		Result:             &entity.QueryResult{Summary: aggregate.Summary, Series: aggregate.Series},
		Notes:              dto.Notes,
	}

	updated, err = uc.gateway.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if updated == nil {
		return nil, notFound(id)
	}

	log.Info("Saved query updated",
		zap.String("query_id", id),
		zap.Bool("location_changed", dto.Location != nil),
		zap.Bool("range_changed", newRange != nil),
		zap.Bool("notes_changed", dto.Notes != nil))
	return updated, nil
}

// mergeNormalizedLocation picks each field from this update's resolution, then the stored
// value, then the forecast response. State and zip never come from the forecast.
func mergeNormalizedLocation(resolved *entity.NormalizedLocation, existing entity.NormalizedLocation, fromForecast entity.NormalizedLocation) entity.NormalizedLocation {
	var fresh entity.NormalizedLocation
	if resolved != nil {
		fresh = *resolved
	}

	return entity.NormalizedLocation{
		City:    entity.FirstNonNil(fresh.City, existing.City, fromForecast.City),
		State:   entity.FirstNonNil(fresh.State, existing.State),
		Country: entity.FirstNonNil(fresh.Country, existing.Country, fromForecast.Country),
		Zip:     entity.FirstNonNil(fresh.Zip, existing.Zip),
	}
}

func (uc *queryUseCase) FindByID(ctx context.Context, id string) (*entity.LocationQuery, error) {
	return uc.findExisting(ctx, id)
}

// FindAll lists saved queries, newest first
func (uc *queryUseCase) FindAll(ctx context.Context) ([]entity.LocationQuery, error) {
	queries, err := uc.gateway.FindAll(ctx)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return queries, nil
}

func (uc *queryUseCase) DeleteByID(ctx context.Context, id string) (err error) {
	defer observe("delete", &err)

	deleted, err := uc.gateway.DeleteByID(ctx, id)
	if err != nil {
		return model.NewPersistenceError(err)
	}
	if !deleted {
		return notFound(id)
	}

	log.Info("Saved query deleted", zap.String("query_id", id))
	return nil
}

// ExtendRange moves the end date one day later
func (uc *queryUseCase) ExtendRange(ctx context.Context, id string) (*entity.LocationQuery, error) {
	return uc.shiftRange(ctx, id, 1)
}

// ReduceRange moves the end date one day earlier, keeping at least one day
func (uc *queryUseCase) ReduceRange(ctx context.Context, id string) (*entity.LocationQuery, error) {
	return uc.shiftRange(ctx, id, -1)
}

func (uc *queryUseCase) shiftRange(ctx context.Context, id string, days int) (*entity.LocationQuery, error) {
	existing, err := uc.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	dateRange, err := shiftEnd(existing.DateRange, days)
	if err != nil {
		return nil, err
	}

	return uc.Update(ctx, id, model.UpdateQueryDTO{DateRange: &dateRange})
}

// Refresh re-aggregates the stored query without changing its inputs
func (uc *queryUseCase) Refresh(ctx context.Context, id string) (*entity.LocationQuery, error) {
	return uc.Update(ctx, id, model.UpdateQueryDTO{})
}

func (uc *queryUseCase) findExisting(ctx context.Context, id string) (*entity.LocationQuery, error) {
	existing, err := uc.gateway.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if existing == nil {
		return nil, notFound(id)
	}
	return existing, nil
}

func notFound(id string) error {
	return model.NewNotFoundError(msg.GetMessage("error.query.not-found", id))
}

func observe(operation string, err *error) {
	result := "ok"
	if *err != nil {
		result = string(model.KindOf(*err))
	}
	metrics.ObserveQueryOperation(operation, result)
}
