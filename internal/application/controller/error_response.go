package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weatherapp/internal/domain/model"
	"weatherapp/pkg/log"
	"weatherapp/pkg/msg"
)

// errorStatus maps a domain error kind to its HTTP status
func errorStatus(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation, model.KindGeocode, model.KindAggregation:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorJSON writes {"error": message} with the status of err's kind.
// Errors outside the domain taxonomy are logged and hidden behind a generic message.
func errorJSON(c echo.Context, err error) error {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		log.Error("unexpected error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg.GetMessage("error.internal")})
	}
	return c.JSON(errorStatus(domainErr.Kind), map[string]string{"error": domainErr.Message})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("error.invalid-body")})
}
