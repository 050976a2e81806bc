package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/model/external"
	"weatherapp/pkg/http"
	"weatherapp/pkg/log"
	"weatherapp/pkg/metrics"
	"weatherapp/pkg/msg"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
	limiter    CallLimiter
	breaker    *gobreaker.CircuitBreaker
}

// breakerFailureThreshold consecutive provider failures open the circuit for breakerOpenTimeout
const (
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client.
// An empty apiKey is accepted; every call then fails with a configuration error.
// limiter may be nil.
func NewWeatherGateway(baseUrl string, apiKey string, clientOptions http.ClientOptions, limiter CallLimiter) WeatherGateway {
	if clientOptions.Logger == nil {
		clientOptions.Logger = NewProviderHTTPLogger()
	}

	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		apiKey:     apiKey,
		limiter:    limiter,
		breaker:    newProviderBreaker(),
	}
}

func newProviderBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: countsAsHealthy,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Provider circuit breaker changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// countsAsHealthy keeps client errors and caller cancellations from tripping the breaker
func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode < 500 && providerErr.StatusCode != 429
	}
	var domainErr *model.DomainError
	return errors.As(err, &domainErr)
}

// GeocodeZip resolves a US postal code
func (w *weatherGatewayImpl) GeocodeZip(ctx context.Context, zip string) (*external.ZipGeocodeResponse, error) {
	response := &external.ZipGeocodeResponse{}
	err := w.get(ctx, "geocode_zip", "/geo/1.0/zip", map[string]string{"zip": zip + ",US"}, response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GeocodeDirect searches places by free text
func (w *weatherGatewayImpl) GeocodeDirect(ctx context.Context, query string, limit int) ([]external.GeocodeResponse, error) {
	var response []external.GeocodeResponse
	err := w.get(ctx, "geocode_direct", "/geo/1.0/direct", map[string]string{
		"q":     query,
		"limit": strconv.Itoa(limit),
	}, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GeocodeReverse finds places near a coordinate pair
func (w *weatherGatewayImpl) GeocodeReverse(ctx context.Context, lat, lon float64, limit int) ([]external.GeocodeResponse, error) {
	var response []external.GeocodeResponse
	err := w.get(ctx, "geocode_reverse", "/geo/1.0/reverse", map[string]string{
		"lat":   formatCoordinate(lat),
		"lon":   formatCoordinate(lon),
		"limit": strconv.Itoa(limit),
	}, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetCurrentWeather returns the latest observation for the target
func (w *weatherGatewayImpl) GetCurrentWeather(ctx context.Context, target Target, units entity.Units) (*external.CurrentWeatherResponse, error) {
	params := target.queryParams()
	params["units"] = string(units)

	response := &external.CurrentWeatherResponse{}
	if err := w.get(ctx, "current_weather", "/data/2.5/weather", params, response); err != nil {
		return nil, err
	}
	return response, nil
}

// GetForecast returns the 5 day / 3 hour forecast for the target
func (w *weatherGatewayImpl) GetForecast(ctx context.Context, target Target, units entity.Units) (*external.ForecastResponse, error) {
	params := target.queryParams()
	params["units"] = string(units)

	response := &external.ForecastResponse{}
	if err := w.get(ctx, "forecast", "/data/2.5/forecast", params, response); err != nil {
		return nil, err
	}
	return response, nil
}

// get performs one GET against the provider, paced by the limiter and guarded by the circuit breaker. A non-2xx answer
// becomes a *ProviderError; an open circuit yields gobreaker.ErrOpenState.
func (w *weatherGatewayImpl) get(ctx context.Context, endpoint string, path string, params map[string]string, successResp any) error {
	if w.apiKey == "" {
		return model.NewConfigurationError(msg.GetMessage("error.config.missing-api-key"))
	}
	params["appid"] = w.apiKey

	call := func() error {
		_, errResp, status, err := w.httpClient.Request().
			WithContext(ctx).
			WithMethod(http.GET).
			WithPath(path).
			WithQueryParams(params).
			WithSuccessResp(successResp).
			WithErrorResp(&external.APIErrorResponse{}).
			Execute()

		if err == nil {
			return nil
		}

		var statusErr *http.StatusError
		if errors.As(err, &statusErr) {
			providerErr := &ProviderError{StatusCode: status}
			if errorResponse, ok := errResp.(*external.APIErrorResponse); ok && errorResponse != nil {
				providerErr.Message = errorResponse.Message
			}
			return providerErr
		}

		return fmt.Errorf("%s request failed: %w", endpoint, redactError(err))
	}

	// the limiter sits outside the breaker: a throttled call never reaches the provider
	// and must not count against its health
	guarded := func() error {
		_, err := w.breaker.Execute(func() (interface{}, error) {
			return nil, call()
		})
		return err
	}

	start := time.Now()
	var err error
	if w.limiter != nil {
		err = w.limiter.WithTransaction(ctx, guarded)
	} else {
		err = guarded()
	}
	metrics.ObserveProviderCall(endpoint, providerOutcome(err), time.Since(start))

	return err
}

func providerOutcome(err error) string {
	if err == nil {
		return "success"
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return strconv.Itoa(providerErr.StatusCode)
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "circuit_open"
	}
	return "error"
}
