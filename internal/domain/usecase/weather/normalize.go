package weather

import (
	"time"

	"weatherapp/internal/domain/entity"
	"weatherapp/internal/domain/model/external"
	"weatherapp/internal/domain/usecase/forecast"
	"weatherapp/pkg/util/numberutils"
)

const (
	previewDays = 5
	isoLayout   = "2006-01-02T15:04:05.000Z07:00"
)

// NormalizeNow maps a raw observation into its display shape.
func NormalizeNow(now *external.CurrentWeatherResponse) entity.CurrentConditions {
	var description, icon string
	if len(now.Weather) > 0 {
		description = now.Weather[0].Description
		icon = now.Weather[0].Icon
	}
	description, icon = forecast.Display(entity.ForecastSample{Description: description, Icon: icon})

	return entity.CurrentConditions{
		City:        now.Name,
		Temp:        roundOrZero(now.Main.Temp),
		FeelsLike:   roundOrZero(now.Main.FeelsLike),
		Description: description,
		Icon:        icon,
		WindSpeed:   roundOrZero(now.Wind.Speed),
		Humidity:    roundOrZero(now.Main.Humidity),
		Time:        time.Unix(now.Dt, 0).UTC().Format(isoLayout),
	}
}

// NormalizeForecastPreview buckets the forecast by UTC date, in feed order, and keeps
// the first five days.
func NormalizeForecastPreview(items []external.ForecastItem) []entity.PreviewDay {
	samples := forecast.ToSamples(items)

	var dates []string
	buckets := make(map[string][]entity.ForecastSample)
	for _, s := range samples {
		date := time.Unix(s.Time, 0).UTC().Format(entity.DateLayout)
		if _, seen := buckets[date]; !seen {
			dates = append(dates, date)
		}
		buckets[date] = append(buckets[date], s)
	}

	if len(dates) > previewDays {
		dates = dates[:previewDays]
	}

	preview := make([]entity.PreviewDay, 0, len(dates))
	for _, date := range dates {
		entries := buckets[date]

		hi := forecast.HighOf(entries[0])
		lo := forecast.LowOf(entries[0])
		hours := make([]int, len(entries))
		for i, s := range entries {
			hi = max(hi, forecast.HighOf(s))
			lo = min(lo, forecast.LowOf(s))
			hours[i] = time.Unix(s.Time, 0).UTC().Hour()
		}

		description, icon := forecast.Display(entries[forecast.ClosestToNoon(hours)])
		preview = append(preview, entity.PreviewDay{
			Date:        date,
			Hi:          numberutils.RoundHalfAwayFromZero(hi),
			Lo:          numberutils.RoundHalfAwayFromZero(lo),
			Description: description,
			Icon:        icon,
		})
	}

	return preview
}

func roundOrZero(v *float64) int {
	if v == nil {
		return 0
	}
	return numberutils.RoundHalfAwayFromZero(*v)
}
