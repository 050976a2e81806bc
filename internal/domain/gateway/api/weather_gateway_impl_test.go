package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/model"
	httpclient "weatherapp/pkg/http"
)

// rejectingLimiter refuses the first rejections calls, then lets calls through
type rejectingLimiter struct {
	rejections int
}

var errBudgetSpent = errors.New("rate limit exceeded")

func (l *rejectingLimiter) WithTransaction(_ context.Context, fn func() error) error {
	if l.rejections > 0 {
		l.rejections--
		return errBudgetSpent
	}
	return fn()
}

type countingLimiter struct {
	calls int
}

func (l *countingLimiter) WithTransaction(_ context.Context, fn func() error) error {
	l.calls++
	return fn()
}

func newTestGateway(t *testing.T, apiKey string, limiter CallLimiter, handler http.HandlerFunc) WeatherGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewWeatherGateway(server.URL, apiKey, httpclient.ClientOptions{}, limiter)
}

func TestGeocodeZipSendsKeyAndCountry(t *testing.T) {
	var received url.Values
	gateway := newTestGateway(t, "secret", nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/zip", r.URL.Path)
		received = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"zip":"10001","name":"New York","country":"US","lat":40.75,"lon":-73.99}`))
	})

	response, err := gateway.GeocodeZip(context.Background(), "10001")

	require.NoError(t, err)
	assert.Equal(t, "New York", response.Name)
	assert.Equal(t, 40.75, response.Lat)
	assert.Equal(t, "10001,US", received.Get("zip"))
	assert.Equal(t, "secret", received.Get("appid"))
}

func TestGetForecastUsesCoordinatesAndUnits(t *testing.T) {
	var received url.Values
	gateway := newTestGateway(t, "secret", nil, func(w http.ResponseWriter, r *http.Request) {
		received = r.URL.Query()
		_, _ = w.Write([]byte(`{"city":{"name":"Austin","country":"US","timezone":-18000},"list":[{"dt":1700000000,"main":{"temp":20.5}}]}`))
	})

	response, err := gateway.GetForecast(context.Background(), CoordsTarget(30.27, -97.74), entity.UnitsMetric)

	require.NoError(t, err)
	assert.Equal(t, "30.27", received.Get("lat"))
	assert.Equal(t, "-97.74", received.Get("lon"))
	assert.Equal(t, "metric", received.Get("units"))
	require.Len(t, response.List, 1)
	assert.Equal(t, -18000, int(response.City.Timezone))
}

func TestProviderStatusBecomesProviderError(t *testing.T) {
	gateway := newTestGateway(t, "bad", nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	})

	_, err := gateway.GeocodeDirect(context.Background(), "Paris", 1)

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	assert.Equal(t, "Invalid API key.", providerErr.Message)
}

func TestMissingAPIKeyFailsWithoutCallingProvider(t *testing.T) {
	called := false
	gateway := newTestGateway(t, "", nil, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := gateway.GeocodeReverse(context.Background(), 1, 2, 1)

	assert.True(t, model.IsKind(err, model.KindConfiguration))
	assert.False(t, called)
}

func TestCallsGoThroughLimiter(t *testing.T) {
	limiter := &countingLimiter{}
	gateway := newTestGateway(t, "secret", limiter, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Austin","main":{"temp":21},"weather":[],"wind":{},"dt":1}`))
	})

	_, err := gateway.GetCurrentWeather(context.Background(), ZipTarget("73301"), entity.UnitsImperial)

	require.NoError(t, err)
	assert.Equal(t, 1, limiter.calls)
}

func TestRedactURLHidesKey(t *testing.T) {
	redacted := redactURL("https://api.openweathermap.org/geo/1.0/zip?appid=secret&zip=10001%2CUS")

	assert.NotContains(t, redacted, "secret")
	assert.Contains(t, redacted, "appid=REDACTED")
	assert.Contains(t, redacted, "zip=10001%2CUS")
}

func TestRedactErrorRewritesURLError(t *testing.T) {
	err := redactError(&url.Error{Op: "Get", URL: "http://x/y?appid=secret", Err: errors.New("timeout")})

	assert.NotContains(t, err.Error(), "secret")
}

func TestLocalCallLimiter(t *testing.T) {
	assert.Nil(t, NewLocalCallLimiter(0))

	limiter := NewLocalCallLimiter(60)
	calls := 0
	err := limiter.WithTransaction(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestBreakerOpensAfterRepeatedServerErrors(t *testing.T) {
	var hits atomic.Int32
	gateway := newTestGateway(t, "secret", nil, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for i := 0; i < breakerFailureThreshold; i++ {
		_, err := gateway.GetForecast(context.Background(), ZipTarget("10001"), entity.UnitsImperial)
		require.Error(t, err)
	}
	_, err := gateway.GetForecast(context.Background(), ZipTarget("10001"), entity.UnitsImperial)

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(breakerFailureThreshold), hits.Load())
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	var hits atomic.Int32
	gateway := newTestGateway(t, "secret", nil, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < breakerFailureThreshold+2; i++ {
		_, err := gateway.GeocodeZip(context.Background(), "00000")
		var providerErr *ProviderError
		require.True(t, errors.As(err, &providerErr))
	}

	assert.Equal(t, int32(breakerFailureThreshold+2), hits.Load())
}

func TestLimiterRejectionsDoNotOpenBreaker(t *testing.T) {
	var hits atomic.Int32
	limiter := &rejectingLimiter{rejections: breakerFailureThreshold + 1}
	gateway := newTestGateway(t, "secret", limiter, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"city":{"name":"Austin"},"list":[]}`))
	})

	for i := 0; i < breakerFailureThreshold+1; i++ {
		_, err := gateway.GetForecast(context.Background(), ZipTarget("73301"), entity.UnitsImperial)
		require.ErrorIs(t, err, errBudgetSpent)
	}
	_, err := gateway.GetForecast(context.Background(), ZipTarget("73301"), entity.UnitsImperial)

	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
