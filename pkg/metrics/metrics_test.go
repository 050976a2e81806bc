package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	e := echo.New()
	e.GET("/metrics", Handler())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/queries/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/queries/abc", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	body := scrape(t)
	assert.Contains(t, body, `weatherapp_http_requests_total{method="GET",path="/queries/:id",status="204"} 1`)
	assert.NotContains(t, body, "/queries/abc")
}

func TestMiddlewareRecordsHTTPErrorStatus(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Contains(t, scrape(t), `weatherapp_http_requests_total{method="GET",path="/boom",status="418"} 1`)
}

func TestObserveHelpers(t *testing.T) {
	ObserveProviderCall("forecast", "401", 20*time.Millisecond)
	ObserveQueryOperation("create", "VALIDATION")

	body := scrape(t)
	assert.Contains(t, body, `weatherapp_provider_calls_total{endpoint="forecast",outcome="401"} 1`)
	assert.Contains(t, body, `weatherapp_queries_operations_total{operation="create",result="VALIDATION"} 1`)
	assert.Contains(t, body, "weatherapp_provider_call_duration_seconds_bucket")
}
