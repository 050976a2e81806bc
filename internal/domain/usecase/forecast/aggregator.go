package forecast

import (
	"math"
	"sort"
	"time"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/model"
	"weatherapp/pkg/msg"
	"weatherapp/pkg/util/numberutils"
)

const (
	DefaultDescription = "—"
	DefaultIcon        = "01d"

	noonHour = 12
)

type localSample struct {
	sample entity.ForecastSample
	hour   int
}

// Aggregate turns 3-hour samples into one entry per local calendar day inside window.
// offset is the location's UTC offset in seconds. The window is moved onto the sample
// timeline by subtracting the offset; bucketing uses sample time plus offset.
// samples must be in ascending time order, as the provider returns them.
func Aggregate(samples []entity.ForecastSample, offset int64, window entity.Window) (*entity.ForecastAggregate, error) {
	if len(samples) == 0 {
		return nil, model.NewAggregationError(msg.GetMessage("error.aggregation.no-data"), nil)
	}

	start := window.Start.Unix() - offset
	end := window.End.Unix() - offset

	first := samples[0].Time
	last := samples[len(samples)-1].Time
	if end < first || start > last {
		return nil, model.NewAggregationError(msg.GetMessage("error.aggregation.outside-window"), nil)
	}

	buckets := make(map[string][]localSample)
	for _, s := range samples {
		if s.Time < start || s.Time > end {
			continue
		}
		local := time.Unix(s.Time+offset, 0).UTC()
		date := local.Format(entity.DateLayout)
		buckets[date] = append(buckets[date], localSample{sample: s, hour: local.Hour()})
	}

	if len(buckets) == 0 {
		return nil, model.NewAggregationError(msg.GetMessage("error.aggregation.empty-window"), nil)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]entity.DailyForecast, 0, len(dates))
	for _, date := range dates {
		series = append(series, summarizeDay(date, buckets[date]))
	}

	if len(series) == 0 {
		return nil, model.NewAggregationError(msg.GetMessage("error.aggregation.no-days"), nil)
	}

	return &entity.ForecastAggregate{
		Summary: Summarize(series),
		Series:  series,
	}, nil
}

func summarizeDay(date string, entries []localSample) entity.DailyForecast {
	hi := math.Inf(-1)
	lo := math.Inf(1)
	sum := 0.0
	hours := make([]int, len(entries))

	for i, e := range entries {
		hi = math.Max(hi, HighOf(e.sample))
		lo = math.Min(lo, LowOf(e.sample))
		sum += valueOr(e.sample.Temp, 0)
		hours[i] = e.hour
	}

	repr := entries[ClosestToNoon(hours)].sample
	description, icon := Display(repr)

	return entity.DailyForecast{
		Date:        date,
		Hi:          numberutils.RoundHalfAwayFromZero(hi),
		Lo:          numberutils.RoundHalfAwayFromZero(lo),
		Avg:         numberutils.RoundHalfAwayFromZero(sum / float64(len(entries))),
		Description: description,
		Icon:        icon,
	}
}

// Summarize folds the daily series: lowest low, highest high, rounded mean of daily averages.
func Summarize(series []entity.DailyForecast) entity.DaySummary {
	if len(series) == 0 {
		return entity.DaySummary{}
	}

	summary := entity.DaySummary{
		Min:   series[0].Lo,
		Max:   series[0].Hi,
		Count: len(series),
	}
	total := 0
	for _, day := range series {
		if day.Lo < summary.Min {
			summary.Min = day.Lo
		}
		if day.Hi > summary.Max {
			summary.Max = day.Hi
		}
		total += day.Avg
	}
	summary.Avg = numberutils.RoundHalfAwayFromZero(float64(total) / float64(len(series)))

	return summary
}

// HighOf is the sample's max temperature, falling back to its point temperature, then 0.
func HighOf(s entity.ForecastSample) float64 {
	if s.TempMax != nil {
		return *s.TempMax
	}
	return valueOr(s.Temp, 0)
}

// LowOf is the sample's min temperature, falling back to its point temperature, then 0.
func LowOf(s entity.ForecastSample) float64 {
	if s.TempMin != nil {
		return *s.TempMin
	}
	return valueOr(s.Temp, 0)
}

// ClosestToNoon returns the index of the hour nearest 12. The first one wins ties.
func ClosestToNoon(hours []int) int {
	best := 0
	bestDistance := math.MaxInt
	for i, h := range hours {
		distance := h - noonHour
		if distance < 0 {
			distance = -distance
		}
		if distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}
	return best
}

// Display returns the description and icon of a sample with the placeholder defaults applied.
func Display(s entity.ForecastSample) (string, string) {
	description := s.Description
	if description == "" {
		description = DefaultDescription
	}
	icon := s.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	return description, icon
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
