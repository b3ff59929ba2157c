package services

import "github.com/bobby-s-dev/weather-dashboard/internal/models"

func normalizeCurrent(coords models.Coordinates, raw models.RawCurrent) *models.CurrentWeather {
	description, category := models.Describe(raw.WeatherCode)

	var precipitation float64
	if raw.Precipitation != nil {
		precipitation = *raw.Precipitation
	}

	return &models.CurrentWeather{
		Location: coords,
		Reading: models.CurrentReading{
			Temperature:   raw.Temperature2M,
			FeelsLike:     raw.ApparentTemperature,
			Humidity:      raw.RelativeHumidity2M,
			Pressure:      raw.SurfacePressure,
			WindSpeed:     raw.WindSpeed10M,
			WindDirection: raw.WindDirection10M,
			Precipitation: precipitation,
			Code:          raw.WeatherCode,
			Description:   description,
			Category:      category,
			Timestamp:     raw.Time,
		},
	}
}

// normalizeForecast keeps min(days, available) days. Available is bounded by
// the shortest of the date, temperature and code arrays; precipitation and
// wind default to zero when their arrays run short.
func normalizeForecast(coords models.Coordinates, raw models.RawDaily, days int) *models.Forecast {
	n := days
	for _, l := range []int{len(raw.Time), len(raw.Temperature2MMax), len(raw.Temperature2MMin), len(raw.WeatherCode)} {
		if l < n {
			n = l
		}
	}

	forecast := &models.Forecast{
		Location: coords,
		Days:     make([]models.ForecastDay, 0, n),
	}

	for i := 0; i < n; i++ {
		description, category := models.Describe(raw.WeatherCode[i])
		forecast.Days = append(forecast.Days, models.ForecastDay{
			Date:          raw.Time[i],
			TempMax:       raw.Temperature2MMax[i],
			TempMin:       raw.Temperature2MMin[i],
			Precipitation: valueAt(raw.PrecipitationSum, i),
			WindSpeed:     valueAt(raw.WindSpeed10MMax, i),
			WindDirection: valueAt(raw.WindDirection10MDominant, i),
			Code:          raw.WeatherCode[i],
			Description:   description,
			Category:      category,
		})
	}

	return forecast
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
