package model

import "weatherapp/internal/domain/entity"

// LookupRequest carries the raw quick lookup parameters. Zip wins over coordinates.
type LookupRequest struct {
	Zip   string
	Lat   string
	Lon   string
	Units string
}

// LookupResponse is the quick lookup result: current conditions plus a short UTC preview.
type LookupResponse struct {
	Now      entity.CurrentConditions `json:"now"`
	Forecast []entity.PreviewDay      `json:"forecast"`
	Source   string                   `json:"source" example:"openweathermap"`
}
