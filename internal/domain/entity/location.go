package entity

import (
	"encoding/json"
	"strconv"
	"strings"

	"weatherapp/pkg/util/numberutils"
)

type LocationType string

const (
	LocationZip    LocationType = "zip"
	LocationPlace  LocationType = "q"
	LocationCoords LocationType = "coords"
)

// LocationInput is the caller's location descriptor, one of three shapes selected by Type.
type LocationInput struct {
	Type  LocationType `json:"type" example:"zip"`
	Zip   string       `json:"zip,omitempty" example:"33410"`
	Query string       `json:"q,omitempty" example:"Palm Beach Gardens, FL"`
	Lat   *Coordinate  `json:"lat,omitempty" swaggertype:"number" example:"26.82"`
	Lon   *Coordinate  `json:"lon,omitempty" swaggertype:"number" example:"-80.13"`
}

// Coordinate keeps a latitude or longitude as sent by the caller, which may be a JSON
// number or a numeric string.
type Coordinate string

func NewCoordinate(f float64) *Coordinate {
	c := Coordinate(strconv.FormatFloat(f, 'f', -1, 64))
	return &c
}

func NewCoordinateFromString(s string) *Coordinate {
	c := Coordinate(s)
	return &c
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Coordinate(s)
		return nil
	}
	*c = Coordinate(strings.TrimSpace(string(data)))
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	if f, err := c.Float64(); err == nil {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return json.Marshal(string(c))
}

// Float64 parses the coordinate, rejecting anything that is not a finite number.
func (c Coordinate) Float64() (float64, error) {
	return numberutils.ToFiniteFloat64(string(c))
}

// NormalizedLocation is the reconciled place a query refers to.
type NormalizedLocation struct {
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Zip     *string `json:"zip"`
}

// Place is the result of a reverse lookup.
type Place struct {
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
	Zip     *string `json:"zip"`
}

// StringOrNil maps the empty string to nil.
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// FirstNonNil returns the first non-nil pointer.
func FirstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
