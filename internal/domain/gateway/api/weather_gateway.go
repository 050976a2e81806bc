package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/model/external"
)

// WeatherGateway defines the OpenWeather endpoints the service consumes
type WeatherGateway interface {
	// GeocodeZip resolves a US postal code
	GeocodeZip(ctx context.Context, zip string) (*external.ZipGeocodeResponse, error)

	// GeocodeDirect searches places by free text
	GeocodeDirect(ctx context.Context, query string, limit int) ([]external.GeocodeResponse, error)

	// GeocodeReverse finds places near a coordinate pair
	GeocodeReverse(ctx context.Context, lat, lon float64, limit int) ([]external.GeocodeResponse, error)

	// GetCurrentWeather returns the latest observation for the target
	GetCurrentWeather(ctx context.Context, target Target, units entity.Units) (*external.CurrentWeatherResponse, error)

	// GetForecast returns the 5 day / 3 hour forecast for the target
	GetForecast(ctx context.Context, target Target, units entity.Units) (*external.ForecastResponse, error)
}

// ProviderError reports a non-success HTTP status from the provider.
// Message holds the provider's own explanation when the body carried one.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}

// Retryable reports whether the same call may succeed later: server errors, throttling
// and a rejected API key, which an operator can fix without touching the request.
func (e *ProviderError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusUnauthorized
}

// Target selects the place a weather call refers to: a US ZIP or a coordinate pair.
type Target struct {
	Zip string
	Lat float64
	Lon float64
}

func ZipTarget(zip string) Target {
	return Target{Zip: zip}
}

func CoordsTarget(lat, lon float64) Target {
	return Target{Lat: lat, Lon: lon}
}

func (t Target) queryParams() map[string]string {
	if t.Zip != "" {
		return map[string]string{"zip": t.Zip + ",US"}
	}
	return map[string]string{
		"lat": formatCoordinate(t.Lat),
		"lon": formatCoordinate(t.Lon),
	}
}

func formatCoordinate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
