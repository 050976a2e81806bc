package controller

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"weatherapp/internal/domain/model"
	"weatherapp/internal/domain/usecase/query"
	"weatherapp/internal/domain/usecase/refresh"
)

type QueryController struct {
	api            *echo.Group
	useCase        query.UseCase
	refreshUseCase refresh.UseCase
}

// NewQueryController wires the saved query routes. refreshUseCase may be nil, in which
// case the refresh route is not registered.
func NewQueryController(api *echo.Group, useCase query.UseCase, refreshUseCase refresh.UseCase) *QueryController {
	return &QueryController{api: api, useCase: useCase, refreshUseCase: refreshUseCase}
}

// InitQueryRoutes initializes saved query routes
func (controller *QueryController) InitQueryRoutes() {
	controller.api.GET("/queries", controller.FindAll)
	controller.api.POST("/queries", controller.Create)
	if controller.refreshUseCase != nil {
		controller.api.POST("/queries/refresh", controller.RefreshAll)
	}
	controller.api.GET("/queries/:id", controller.FindByID)
	controller.api.PATCH("/queries/:id", controller.Update)
	controller.api.DELETE("/queries/:id", controller.DeleteByID)
	controller.api.POST("/queries/:id/extend", controller.ExtendRange)
	controller.api.POST("/queries/:id/reduce", controller.ReduceRange)
}

// FindAll godoc
// @Summary List saved queries
// @Description Every saved query, newest first
// @Tags queries
// @Produce json
// @Success 200 {array} entity.LocationQuery
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /queries [get]
func (controller *QueryController) FindAll(c echo.Context) error {
	queries, err := controller.useCase.FindAll(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, queries)
}

// FindByID godoc
// @Summary Get a saved query
// @Tags queries
// @Produce json
// @Param id path string true "Query id"
// @Success 200 {object} entity.LocationQuery
// @Failure 404 {object} map[string]string "Query not found"
// @Router /queries/{id} [get]
func (controller *QueryController) FindByID(c echo.Context) error {
	saved, err := controller.useCase.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Create godoc
// @Summary Save a query
// @Description Resolve the location, aggregate the forecast over the date range and store the result
// @Tags queries
// @Accept json
// @Produce json
// @Param query body model.CreateQueryDTO true "Location, date range, units and notes"
// @Success 201 {object} entity.LocationQuery
// @Failure 400 {object} map[string]string "Validation, geocoding or aggregation error"
// @Failure 500 {object} map[string]string "Configuration or persistence error"
// @Router /queries [post]
func (controller *QueryController) Create(c echo.Context) error {
	var dto model.CreateQueryDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	saved, err := controller.useCase.Create(c.Request().Context(), dto)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Update godoc
// @Summary Update a saved query
// @Description Partial update of location, date range and notes. The forecast is always re-aggregated.
// @Tags queries
// @Accept json
// @Produce json
// @Param id path string true "Query id"
// @Param query body model.UpdateQueryDTO true "Fields to change"
// @Success 200 {object} entity.LocationQuery
// @Failure 400 {object} map[string]string "Validation, geocoding or aggregation error"
// @Failure 404 {object} map[string]string "Query not found"
// @Router /queries/{id} [patch]
func (controller *QueryController) Update(c echo.Context) error {
	var dto model.UpdateQueryDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	saved, err := controller.useCase.Update(c.Request().Context(), c.Param("id"), dto)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteByID godoc
// @Summary Delete a saved query
// @Tags queries
// @Produce json
// @Param id path string true "Query id"
// @Success 200 {object} map[string]bool "ok"
// @Failure 404 {object} map[string]string "Query not found"
// @Router /queries/{id} [delete]
func (controller *QueryController) DeleteByID(c echo.Context) error {
	if err := controller.useCase.DeleteByID(c.Request().Context(), c.Param("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// ExtendRange godoc
// @Summary Extend the date range by one day
// @Tags queries
// @Produce json
// @Param id path string true "Query id"
// @Success 200 {object} entity.LocationQuery
// @Failure 400 {object} map[string]string "Aggregation error"
// @Failure 404 {object} map[string]string "Query not found"
// @Router /queries/{id}/extend [post]
func (controller *QueryController) ExtendRange(c echo.Context) error {
	saved, err := controller.useCase.ExtendRange(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// ReduceRange godoc
// @Summary Reduce the date range by one day
// @Tags queries
// @Produce json
// @Param id path string true "Query id"
// @Success 200 {object} entity.LocationQuery
// @Failure 400 {object} map[string]string "At least 1 day must remain."
// @Failure 404 {object} map[string]string "Query not found"
// @Router /queries/{id}/reduce [post]
func (controller *QueryController) ReduceRange(c echo.Context) error {
	saved, err := controller.useCase.ReduceRange(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// RefreshAll godoc
// @Summary Enqueue every saved query for re-aggregation
// @Tags queries
// @Produce json
// @Success 202 {object} refresh.Summary
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /queries/refresh [post]
func (controller *QueryController) RefreshAll(c echo.Context) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	summary, err := controller.refreshUseCase.RefreshAll(c.Request().Context(), requestID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusAccepted, summary)
}
