package controller

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/usecase/geocode"
	"weatherapp/internal/domain/usecase/weather"
	"weatherapp/pkg/msg"
)

type WeatherController struct {
	api            *echo.Group
	weatherUseCase weather.UseCase
	geocodeUseCase geocode.UseCase
}

func NewWeatherController(api *echo.Group, weatherUseCase weather.UseCase, geocodeUseCase geocode.UseCase) *WeatherController {
	return &WeatherController{api: api, weatherUseCase: weatherUseCase, geocodeUseCase: geocodeUseCase}
}

// InitWeatherRoutes initializes the quick lookup routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.Lookup)
	controller.api.GET("/location", controller.ReverseLookup)
}

// Lookup godoc
// @Summary Current conditions and a 5 day preview
// @Description Look up current weather by US ZIP or by coordinates. ZIP wins when both are sent.
// @Tags weather
// @Produce json
// @Param zip query string false "5-digit US ZIP" example(33410)
// @Param lat query number false "Latitude"
// @Param lon query number false "Longitude"
// @Param units query string false "imperial | metric | standard" default(imperial)
// @Success 200 {object} model.LookupResponse
// @Failure 400 {object} map[string]string "Invalid ZIP, coordinates or units"
// @Failure 500 {object} map[string]string "Server missing OPENWEATHER_API_KEY"
// @Failure 502 {object} map[string]string "Weather service unavailable"
// @Router /weather [get]
func (controller *WeatherController) Lookup(c echo.Context) error {
	response, err := controller.weatherUseCase.Lookup(c.Request().Context(), model.LookupRequest{
		Zip:   c.QueryParam("zip"),
		Lat:   c.QueryParam("lat"),
		Lon:   c.QueryParam("lon"),
		Units: c.QueryParam("units"),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// ReverseLookup godoc
// @Summary Place name for a coordinate pair
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} entity.Place
// @Failure 400 {object} map[string]string "Missing latitude or longitude"
// @Failure 404 {object} map[string]string "Location not found"
// @Failure 500 {object} map[string]string "Server configuration error"
// @Failure 502 {object} map[string]string "Unable to get location"
// @Router /location [get]
func (controller *WeatherController) ReverseLookup(c echo.Context) error {
	lat := strings.TrimSpace(c.QueryParam("lat"))
	lon := strings.TrimSpace(c.QueryParam("lon"))
	if lat == "" || lon == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("error.validation.missing-lat-lon")})
	}

	latitude, longitude, err := geocode.ParseCoordinates(entity.NewCoordinateFromString(lat), entity.NewCoordinateFromString(lon))
	if err != nil {
		return errorJSON(c, err)
	}

	place, err := controller.geocodeUseCase.LookupPlace(c.Request().Context(), latitude, longitude)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, place)
}
