package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/gateway/db"
	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/usecase/query"
)

// --- Mocks ---

type mockGeocodeUseCase struct {
	resolveCalls int
	resolveFn    func(ctx context.Context, input entity.LocationInput) (*entity.NormalizedLocation, error)
}

func (m *mockGeocodeUseCase) Validate(input entity.LocationInput) error {
	switch input.Type {
	case entity.LocationZip, entity.LocationPlace, entity.LocationCoords:
		if input.Type == entity.LocationZip && len(input.Zip) != 5 {
			return model.NewValidationError("Enter a valid 5-digit US ZIP.")
		}
		return nil
	}
	return model.NewValidationError("location.type must be zip | coords | q")
}

func (m *mockGeocodeUseCase) Resolve(ctx context.Context, input entity.LocationInput) (*entity.NormalizedLocation, error) {
	m.resolveCalls++
	if m.resolveFn != nil {
		return m.resolveFn(ctx, input)
	}
	return &entity.NormalizedLocation{Lat: 1, Lon: 2}, nil
}

func (m *mockGeocodeUseCase) LookupPlace(ctx context.Context, lat float64, lon float64) (*entity.Place, error) {
	return nil, nil
}

type aggregateCall struct {
	lat, lon float64
	units    entity.Units
	window   entity.Window
}

type mockForecastUseCase struct {
	calls       []aggregateCall
	aggregateFn func(ctx context.Context, lat, lon float64, units entity.Units, window entity.Window) (*entity.ForecastAggregate, error)
}

func (m *mockForecastUseCase) Aggregate(ctx context.Context, lat float64, lon float64, units entity.Units, window entity.Window) (*entity.ForecastAggregate, error) {
	m.calls = append(m.calls, aggregateCall{lat: lat, lon: lon, units: units, window: window})
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, lat, lon, units, window)
	}
	return aggregateFor(window, 20), nil
}

// aggregateFor returns one day per window day, all at temp.
func aggregateFor(window entity.Window, temp int) *entity.ForecastAggregate {
	var series []entity.DailyForecast
	for d := window.Start; d.Before(window.End); d = d.AddDate(0, 0, 1) {
		series = append(series, entity.DailyForecast{Date: d.Format(entity.DateLayout), Hi: temp, Lo: temp, Avg: temp, Description: "clear sky", Icon: "01d"})
	}
	return &entity.ForecastAggregate{
		Summary: entity.DaySummary{Min: temp, Max: temp, Avg: temp, Count: len(series)},
		Series:  series,
		NormalizedLocation: entity.NormalizedLocation{
			City:    str("Forecast City"),
			Country: str("FC"),
		},
	}
}

type failingGateway struct {
	*db.MemoryLocationQueryGateway
}

func (f failingGateway) Create(ctx context.Context, q entity.LocationQuery) (*entity.LocationQuery, error) {
	return nil, errors.New("duplicate key value violates unique constraint")
}

func str(s string) *string { return &s }

func zipLocation(zip string) *entity.LocationInput {
	return &entity.LocationInput{Type: entity.LocationZip, Zip: zip}
}

func dates(start, end string) *entity.DateRange {
	return &entity.DateRange{Start: start, End: end}
}

type fixture struct {
	gateway  *db.MemoryLocationQueryGateway
	geocode  *mockGeocodeUseCase
	forecast *mockForecastUseCase
	uc       query.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		gateway:  db.NewMemoryLocationQueryGateway(),
		geocode:  &mockGeocodeUseCase{},
		forecast: &mockForecastUseCase{},
	}
	f.uc = query.NewQueryUseCase(f.gateway, f.geocode, f.forecast)
	return f
}

func (f *fixture) create(t *testing.T) *entity.LocationQuery {
	t.Helper()
	f.geocode.resolveFn = func(ctx context.Context, input entity.LocationInput) (*entity.NormalizedLocation, error) {
		return &entity.NormalizedLocation{City: str("Jupiter"), Country: str("US"), Lat: 26.93, Lon: -80.09, Zip: str("33458")}, nil
	}
	created, err := f.uc.Create(context.Background(), model.CreateQueryDTO{
		Location:  zipLocation("33458"),
		DateRange: dates("2024-03-01", "2024-03-02"),
		Units:     "metric",
		Notes:     str("first trip"),
	})
	require.NoError(t, err)
	f.geocode.resolveFn = nil
	f.geocode.resolveCalls = 0
	f.forecast.calls = nil
	return created
}

// --- Tests ---

func TestQueryUseCase_Create(t *testing.T) {
	f := newFixture()

	created := f.create(t)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entity.UnitsMetric, created.Units)
	assert.Equal(t, "openweathermap", created.Source)
	assert.Equal(t, entity.DateRange{Start: "2024-03-01", End: "2024-03-02"}, created.DateRange)
	assert.Equal(t, "Jupiter", *created.NormalizedLocation.City)
	assert.Nil(t, created.NormalizedLocation.State)
	assert.Equal(t, "33458", *created.NormalizedLocation.Zip)
	assert.Equal(t, 2, created.Result.Summary.Count)
	assert.Len(t, created.Result.Series, created.Result.Summary.Count)
	assert.Equal(t, "first trip", *created.Notes)
}

func TestQueryUseCase_Create_FallsBackToForecastPlace(t *testing.T) {
	f := newFixture()

	created, err := f.uc.Create(context.Background(), model.CreateQueryDTO{
		Location:  &entity.LocationInput{Type: entity.LocationCoords},
		DateRange: dates("2024-03-01", "2024-03-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.UnitsImperial, created.Units)
	assert.Equal(t, "Forecast City", *created.NormalizedLocation.City)
	assert.Equal(t, "FC", *created.NormalizedLocation.Country)
	assert.Nil(t, created.Notes)
}

func TestQueryUseCase_Create_RoundTrip(t *testing.T) {
	f := newFixture()
	created := f.create(t)

	fetched, err := f.uc.FindByID(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.LocationInput, fetched.LocationInput)
	assert.Equal(t, created.DateRange, fetched.DateRange)
	assert.Equal(t, created.Units, fetched.Units)
	assert.Equal(t, created.Notes, fetched.Notes)
	assert.Equal(t, created.Result, fetched.Result)
}

func TestQueryUseCase_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		dto     model.CreateQueryDTO
		message string
	}{
		{"missing location", model.CreateQueryDTO{DateRange: dates("2024-03-01", "2024-03-01")}, "location and dateRange are required"},
		{"missing range", model.CreateQueryDTO{Location: zipLocation("33458")}, "location and dateRange are required"},
		{"bad type", model.CreateQueryDTO{Location: &entity.LocationInput{Type: "city"}, DateRange: dates("2024-03-01", "2024-03-01")}, "location.type must be zip | coords | q"},
		{"short zip", model.CreateQueryDTO{Location: zipLocation("3341"), DateRange: dates("2024-03-01", "2024-03-01")}, "Enter a valid 5-digit US ZIP."},
		{"missing end", model.CreateQueryDTO{Location: zipLocation("33458"), DateRange: dates("2024-03-01", "")}, "Both start and end dates are required (YYYY-MM-DD)."},
		{"bad format", model.CreateQueryDTO{Location: zipLocation("33458"), DateRange: dates("03/01/2024", "2024-03-02")}, "Invalid date format (use YYYY-MM-DD)."},
		{"reversed", model.CreateQueryDTO{Location: zipLocation("33458"), DateRange: dates("2024-03-03", "2024-03-02")}, "start must be on/before end."},
		{"bad units", model.CreateQueryDTO{Location: zipLocation("33458"), DateRange: dates("2024-03-01", "2024-03-02"), Units: "kelvin"}, "units must be imperial | metric | standard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Create(context.Background(), tt.dto)

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.True(t, model.IsKind(err, model.KindValidation))
			assert.Equal(t, 0, f.geocode.resolveCalls)
			assert.Empty(t, f.forecast.calls)
		})
	}
}

func TestQueryUseCase_Create_AggregationFailureStoresNothing(t *testing.T) {
	f := newFixture()
	f.forecast.aggregateFn = func(ctx context.Context, lat, lon float64, units entity.Units, window entity.Window) (*entity.ForecastAggregate, error) {
		return nil, model.NewAggregationError("Requested date range is outside the 5-day forecast window.", nil)
	}

	_, err := f.uc.Create(context.Background(), model.CreateQueryDTO{Location: zipLocation("33458"), DateRange: dates("2030-01-01", "2030-01-02")})

	require.Error(t, err)
	assert.Equal(t, "Requested date range is outside the 5-day forecast window.", err.Error())
	all, _ := f.uc.FindAll(context.Background())
	assert.Empty(t, all)
}

func TestQueryUseCase_Create_PersistenceFailure(t *testing.T) {
	uc := query.NewQueryUseCase(failingGateway{db.NewMemoryLocationQueryGateway()}, &mockGeocodeUseCase{}, &mockForecastUseCase{})

	_, err := uc.Create(context.Background(), model.CreateQueryDTO{Location: zipLocation("33458"), DateRange: dates("2024-03-01", "2024-03-01")})

	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindPersistence))
	assert.Equal(t, "duplicate key value violates unique constraint", err.Error())
}

func TestQueryUseCase_Update_DateRangeOnly(t *testing.T) {
	f := newFixture()
	created := f.create(t)

	updated, err := f.uc.Update(context.Background(), created.ID, model.UpdateQueryDTO{DateRange: dates("2024-03-02", "2024-03-04")})
	require.NoError(t, err)

	assert.Equal(t, 0, f.geocode.resolveCalls)
	require.Len(t, f.forecast.calls, 1)
	assert.Equal(t, entity.UnitsMetric, f.forecast.calls[0].units)
	assert.Equal(t, 26.93, f.forecast.calls[0].lat)

	assert.Equal(t, created.LocationInput, updated.LocationInput)
	assert.Equal(t, created.NormalizedLocation, updated.NormalizedLocation)
	assert.Equal(t, entity.DateRange{Start: "2024-03-02", End: "2024-03-04"}, updated.DateRange)
	assert.Equal(t, 3, updated.Result.Summary.Count)
	assert.Equal(t, created.Notes, updated.Notes)
}

func TestQueryUseCase_Update_LocationOnly(t *testing.T) {
	f := newFixture()
	created := f.create(t)
	f.geocode.resolveFn = func(ctx context.Context, input entity.LocationInput) (*entity.NormalizedLocation, error) {
		return &entity.NormalizedLocation{City: str("Boca Raton"), State: str("Florida"), Country: str("US"), Lat: 26.36, Lon: -80.08}, nil
	}

	newLocation := &entity.LocationInput{Type: entity.LocationPlace, Query: "Boca Raton"}
	updated, err := f.uc.Update(context.Background(), created.ID, model.UpdateQueryDTO{Location: newLocation})
	require.NoError(t, err)

	assert.Equal(t, *newLocation, updated.LocationInput)
	assert.Equal(t, created.DateRange, updated.DateRange)
	assert.Equal(t, "Boca Raton", *updated.NormalizedLocation.City)
	assert.Equal(t, "Florida", *updated.NormalizedLocation.State)
	assert.Equal(t, 26.36, updated.NormalizedLocation.Lat)
	assert.Equal(t, -80.08, updated.NormalizedLocation.Lon)
	// zip falls back to the stored value when the new resolution has none
	assert.Equal(t, "33458", *updated.NormalizedLocation.Zip)
	require.Len(t, f.forecast.calls, 1)
	assert.Equal(t, 26.36, f.forecast.calls[0].lat)
}

func TestQueryUseCase_Update_FieldPrecedence(t *testing.T) {
	f := newFixture()
	f.geocode.resolveFn = func(ctx context.Context, input entity.LocationInput) (*entity.NormalizedLocation, error) {
		return &entity.NormalizedLocation{Lat: 10, Lon: 20}, nil
	}
	created, err := f.uc.Create(context.Background(), model.CreateQueryDTO{
		Location:  &entity.LocationInput{Type: entity.LocationCoords},
		DateRange: dates("2024-03-01", "2024-03-01"),
	})
	require.NoError(t, err)
	require.Equal(t, "Forecast City", *created.NormalizedLocation.City)

	// the stored city outranks the forecast one; a fresh resolution outranks both
	f.geocode.resolveFn = func(ctx context.Context, input entity.LocationInput) (*entity.NormalizedLocation, error) {
		return &entity.NormalizedLocation{Country: str("CA"), Lat: 11, Lon: 21}, nil
	}
	f.forecast.aggregateFn = func(ctx context.Context, lat, lon float64, units entity.Units, window entity.Window) (*entity.ForecastAggregate, error) {
		agg := aggregateFor(window, 5)
		agg.NormalizedLocation.City = str("Other City")
		return agg, nil
	}

	updated, err := f.uc.Update(context.Background(), created.ID, model.UpdateQueryDTO{Location: &entity.LocationInput{Type: entity.LocationCoords}})
	require.NoError(t, err)

	assert.Equal(t, "Forecast City", *updated.NormalizedLocation.City)
	assert.Equal(t, "CA", *updated.NormalizedLocation.Country)
	assert.Nil(t, updated.NormalizedLocation.State)
	assert.Nil(t, updated.NormalizedLocation.Zip)
	assert.Equal(t, 11.0, updated.NormalizedLocation.Lat)
}

func TestQueryUseCase_Update_NotesOnlyStillReaggregates(t *testing.T) {
	f := newFixture()
	created := f.create(t)
	f.forecast.aggregateFn = func(ctx context.Context, lat, lon float64, units entity.Units, window entity.Window) (*entity.ForecastAggregate, error) {
		return aggregateFor(window, 31), nil
	}

	updated, err := f.uc.Update(context.Background(), created.ID, model.UpdateQueryDTO{Notes: str("bring umbrellas")})
	require.NoError(t, err)

	require.Len(t, f.forecast.calls, 1)
	assert.Equal(t, "bring umbrellas", *updated.Notes)
	assert.Equal(t, 31, updated.Result.Summary.Max)
	assert.Equal(t, created.DateRange, updated.DateRange)
}

func TestQueryUseCase_Update_Errors(t *testing.T) {
	f := newFixture()
	created := f.create(t)

	_, err := f.uc.Update(context.Background(), "missing", model.UpdateQueryDTO{})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindNotFound))
	assert.Equal(t, "Query missing not found", err.Error())

	_, err = f.uc.Update(context.Background(), created.ID, model.UpdateQueryDTO{DateRange: dates("2024-03-05", "2024-03-01")})
	require.Error(t, err)
	assert.Equal(t, "start must be on/before end.", err.Error())

	_, err = f.uc.Update(context.Background(), created.ID, model.UpdateQueryDTO{Location: zipLocation("123")})
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindValidation))

	assert.Empty(t, f.forecast.calls)
	assert.Equal(t, 0, f.geocode.resolveCalls)
}

func TestQueryUseCase_ExtendAndReduceRange(t *testing.T) {
	f := newFixture()
	created := f.create(t)

	extended, err := f.uc.ExtendRange(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DateRange{Start: "2024-03-01", End: "2024-03-03"}, extended.DateRange)

	reduced, err := f.uc.ReduceRange(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DateRange{Start: "2024-03-01", End: "2024-03-02"}, reduced.DateRange)

	reduced, err = f.uc.ReduceRange(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DateRange{Start: "2024-03-01", End: "2024-03-01"}, reduced.DateRange)

	_, err = f.uc.ReduceRange(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, "At least 1 day must remain.", err.Error())
}

func TestQueryUseCase_Refresh(t *testing.T) {
	f := newFixture()
	created := f.create(t)

	refreshed, err := f.uc.Refresh(context.Background(), created.ID)
	require.NoError(t, err)

	require.Len(t, f.forecast.calls, 1)
	assert.Equal(t, created.LocationInput, refreshed.LocationInput)
	assert.Equal(t, created.DateRange, refreshed.DateRange)
}

func TestQueryUseCase_DeleteAndList(t *testing.T) {
	f := newFixture()
	first := f.create(t)
	second := f.create(t)

	all, err := f.uc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, f.uc.DeleteByID(context.Background(), first.ID))

	all, err = f.uc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)

	err = f.uc.DeleteByID(context.Background(), first.ID)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindNotFound))

	_, err = f.uc.FindByID(context.Background(), first.ID)
	assert.True(t, model.IsKind(err, model.KindNotFound))
}
