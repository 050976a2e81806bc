package entity

import "time"

// ForecastSample is one 3-hour point of the provider's forecast feed.
// Temperature fields are nil when the provider omitted them.
type ForecastSample struct {
	Time        int64
	Temp        *float64
	TempMin     *float64
	TempMax     *float64
	Description string
	Icon        string
}

// Window is the inclusive UTC interval requested by the caller.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow spans start 00:00:00 UTC to end 23:59:59 UTC.
func NewWindow(start, end time.Time) Window {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
	return Window{Start: s, End: e}
}

// ForecastAggregate is the aggregation output plus the place data the forecast itself carries.
type ForecastAggregate struct {
	Summary            DaySummary
	Series             []DailyForecast
	NormalizedLocation NormalizedLocation
}

// CurrentConditions is a display-ready current observation.
type CurrentConditions struct {
	City        string `json:"city"`
	Temp        int    `json:"temp"`
	FeelsLike   int    `json:"feelsLike"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	WindSpeed   int    `json:"windMph"`
	Humidity    int    `json:"humidity"`
	Time        string `json:"time"`
}

// PreviewDay is a UTC-bucketed day of the quick-lookup forecast.
type PreviewDay struct {
	Date        string `json:"date"`
	Hi          int    `json:"hi"`
	Lo          int    `json:"lo"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
