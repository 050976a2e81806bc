package query

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/model"
	"weatherapp/pkg/msg"
)

var validate = validator.New()

// invalidFields runs the struct tags of dto and returns the names of the failing fields.
func invalidFields(dto any) map[string]bool {
	failed := make(map[string]bool)

	var validationErrors validator.ValidationErrors
	if err := validate.Struct(dto); errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			failed[fieldErr.Field()] = true
		}
	}
	return failed
}

// parseDateRange checks a caller-supplied range and returns it normalized together with
// its UTC window.
func parseDateRange(dateRange entity.DateRange) (entity.DateRange, entity.Window, error) {
	start := strings.TrimSpace(dateRange.Start)
	end := strings.TrimSpace(dateRange.End)
	if start == "" || end == "" {
		return entity.DateRange{}, entity.Window{}, model.NewValidationError(msg.GetMessage("error.validation.dates-required"))
	}

	startDate, startErr := time.Parse(entity.DateLayout, start)
	endDate, endErr := time.Parse(entity.DateLayout, end)
	if startErr != nil || endErr != nil {
		return entity.DateRange{}, entity.Window{}, model.NewValidationError(msg.GetMessage("error.validation.date-format"))
	}

	if startDate.After(endDate) {
		return entity.DateRange{}, entity.Window{}, model.NewValidationError(msg.GetMessage("error.validation.date-order"))
	}

	normalized := entity.DateRange{
		Start: startDate.Format(entity.DateLayout),
		End:   endDate.Format(entity.DateLayout),
	}
	return normalized, entity.NewWindow(startDate, endDate), nil
}

// shiftEnd moves the end date by days, refusing to leave an empty range.
func shiftEnd(dateRange entity.DateRange, days int) (entity.DateRange, error) {
	normalized, window, err := parseDateRange(dateRange)
	if err != nil {
		return entity.DateRange{}, err
	}

	end := window.End.AddDate(0, 0, days)
	if end.Before(window.Start) {
		return entity.DateRange{}, model.NewValidationError(msg.GetMessage("error.validation.min-range"))
	}

	normalized.End = end.Format(entity.DateLayout)
	return normalized, nil
}
