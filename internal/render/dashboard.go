package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

const ruleWidth = 80

const banner = `
╔══════════════════════════════════════════════════════════════════════════════╗
║                              WEATHER DASHBOARD                               ║
║                      Advanced Command Line Weather Service                   ║
║                            Powered by Open-Meteo API                         ║
╚══════════════════════════════════════════════════════════════════════════════╝
`

func Banner() string {
	return banner
}

// CurrentDashboard renders the full current-weather screen.
func CurrentDashboard(w models.CurrentWeather, isNight bool) string {
	r := w.Reading
	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "WEATHER DASHBOARD - %s\n", upper(locationLabel(w.Location)))
	b.WriteString(rule + "\n")
	b.WriteString(Glyph(r.Category, isNight) + "\n")

	fmt.Fprintf(&b, "TEMPERATURE: %s°C (feels like %s°C)\n", formatNumber(r.Temperature), formatNumber(r.FeelsLike))
	fmt.Fprintf(&b, "CONDITION: %s\n", r.Description)
	fmt.Fprintf(&b, "HUMIDITY: %s%%\n", formatPlain(r.Humidity))
	fmt.Fprintf(&b, "PRESSURE: %s hPa\n", formatNumber(r.Pressure))
	fmt.Fprintf(&b, "WIND: %s m/s\n", formatNumber(r.WindSpeed))
	if r.Precipitation > 0 {
		fmt.Fprintf(&b, "PRECIPITATION: %s mm\n", formatNumber(r.Precipitation))
	}

	b.WriteString("\nTemperature Scale:\n")
	b.WriteString(DefaultGauge(r.Temperature) + "\n")
	b.WriteString(rule + "\n")
	return b.String()
}

// ForecastDashboard renders the forecast table followed by trend graphs.
// Precipitation and wind graphs are only drawn when some day has a nonzero value.
func ForecastDashboard(f models.Forecast) string {
	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%d-DAY FORECAST - %s\n", len(f.Days), upper(locationLabel(f.Location)))
	b.WriteString(rule + "\n")

	n := len(f.Days)
	maxTemps := make([]float64, 0, n)
	minTemps := make([]float64, 0, n)
	precipitation := make([]float64, 0, n)
	windSpeeds := make([]float64, 0, n)
	labels := make([]string, 0, n)
	var anyPrecip, anyWind bool

	for _, day := range f.Days {
		dayLabel, label := day.Date, day.Date
		if t := day.Time(); !t.IsZero() {
			dayLabel = t.Format("Mon 01/02")
			label = t.Format("01/02")
		}

		maxTemps = append(maxTemps, day.TempMax)
		minTemps = append(minTemps, day.TempMin)
		precipitation = append(precipitation, day.Precipitation)
		windSpeeds = append(windSpeeds, day.WindSpeed)
		labels = append(labels, label)
		anyPrecip = anyPrecip || day.Precipitation > 0
		anyWind = anyWind || day.WindSpeed > 0

		fmt.Fprintf(&b, "%8s | %8s | %5.1f°C | %5.1f°C | %s\n",
			dayLabel, MiniIcon(day.Category), day.TempMax, day.TempMin, day.Description)
	}

	if n >= 2 {
		b.WriteString(LineGraph(maxTemps, labels, "Max Temperature Trend", DefaultGraphHeight, "°C") + "\n")
		b.WriteString(LineGraph(minTemps, labels, "Min Temperature Trend", DefaultGraphHeight, "°C") + "\n")
		if anyPrecip {
			b.WriteString(LineGraph(precipitation, labels, "Precipitation Trend", DefaultGraphHeight, "mm") + "\n")
		}
		if anyWind {
			b.WriteString(LineGraph(windSpeeds, labels, "Wind Speed Trend", DefaultGraphHeight, "m/s") + "\n")
		}
	}

	b.WriteString(rule + "\n")
	return b.String()
}

func locationLabel(loc models.Coordinates) string {
	if loc.Country == "" {
		return loc.Name
	}
	return loc.Name + ", " + loc.Country
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
