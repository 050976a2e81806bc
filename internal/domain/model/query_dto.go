package model

import "weatherapp/internal/domain/entity"

type CreateQueryDTO struct {
	Location  *entity.LocationInput `json:"location" validate:"required"`
	DateRange *entity.DateRange     `json:"dateRange" validate:"required"`
	Units     string                `json:"units" validate:"omitempty,oneof=imperial metric standard" example:"imperial"`
	Notes     *string               `json:"notes" example:"Beach weekend"`
}

// UpdateQueryDTO is a partial update: absent fields keep their stored value.
type UpdateQueryDTO struct {
	Location  *entity.LocationInput `json:"location"`
	DateRange *entity.DateRange     `json:"dateRange"`
	Notes     *string               `json:"notes"`
}
