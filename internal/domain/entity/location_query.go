package entity

import "time"

type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
	UnitsStandard Units = "standard"
)

func (u Units) IsValid() bool {
	switch u {
	case UnitsImperial, UnitsMetric, UnitsStandard:
		return true
	}
	return false
}

const SourceOpenWeather = "openweathermap"

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// DateRange is an inclusive pair of calendar dates (YYYY-MM-DD).
type DateRange struct {
	Start string `json:"start" example:"2024-03-01"`
	End   string `json:"end" example:"2024-03-03"`
}

// LocationQuery is a saved query together with its last aggregated forecast.
type LocationQuery struct {
	ID                 string             `json:"id"`
	LocationInput      LocationInput      `json:"locationInput"`
	NormalizedLocation NormalizedLocation `json:"normalizedLocation"`
	DateRange          DateRange          `json:"dateRange"`
	Units              Units              `json:"units"`
	Source             string             `json:"source"`
	Result             QueryResult        `json:"result"`
	Notes              *string            `json:"notes"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

type QueryResult struct {
	Summary DaySummary      `json:"summary"`
	Series  []DailyForecast `json:"series"`
}

// DailyForecast is one local calendar day of the aggregated forecast.
type DailyForecast struct {
	Date        string `json:"date"`
	Hi          int    `json:"hi"`
	Lo          int    `json:"lo"`
	Avg         int    `json:"avg"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DaySummary aggregates the daily series. Avg is the mean of daily means and is not
// guaranteed to lie between Min and Max.
type DaySummary struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Avg   int `json:"avg"`
	Count int `json:"count"`
}

// QueryPatch lists the fields of a stored query to overwrite; nil fields are left untouched.
type QueryPatch struct {
	LocationInput      *LocationInput
	NormalizedLocation *NormalizedLocation
	DateRange          *DateRange
	Result             *QueryResult
	Notes              *string
}
