package models

import (
	"encoding/json"
	"time"
)

// LegacyForecastHumidity is reported for every day of the legacy forecast
// list; the daily aggregate carries no humidity.
const LegacyForecastHumidity = 65

type Coordinates struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	AdminRegion string  `json:"admin1"`
}

// RawCurrent holds the upstream "current" block as returned by the forecast API.
type RawCurrent struct {
	Time                string   `json:"time"`
	Temperature2M       float64  `json:"temperature_2m"`
	ApparentTemperature float64  `json:"apparent_temperature"`
	RelativeHumidity2M  float64  `json:"relative_humidity_2m"`
	SurfacePressure     float64  `json:"surface_pressure"`
	WindSpeed10M        float64  `json:"wind_speed_10m"`
	WindDirection10M    float64  `json:"wind_direction_10m"`
	Precipitation       *float64 `json:"precipitation"`
	WeatherCode         int      `json:"weather_code"`
}

// RawDaily holds the upstream "daily" block. Arrays are parallel and indexed by day.
type RawDaily struct {
	Time                     []string  `json:"time"`
	Temperature2MMax         []float64 `json:"temperature_2m_max"`
	Temperature2MMin         []float64 `json:"temperature_2m_min"`
	WeatherCode              []int     `json:"weather_code"`
	PrecipitationSum         []float64 `json:"precipitation_sum"`
	WindSpeed10MMax          []float64 `json:"wind_speed_10m_max"`
	WindDirection10MDominant []float64 `json:"wind_direction_10m_dominant"`
}

type CurrentReading struct {
	Temperature   float64
	FeelsLike     float64
	Humidity      float64
	Pressure      float64
	WindSpeed     float64
	WindDirection float64
	Precipitation float64
	Code          int
	Description   string
	Category      Category
	Timestamp     string
}

type ForecastDay struct {
	Date          string
	TempMax       float64
	TempMin       float64
	Precipitation float64
	WindSpeed     float64
	WindDirection float64
	Code          int
	Description   string
	Category      Category
}

// Time parses Date as a calendar day in UTC. The zero time is returned for
// malformed dates.
func (d ForecastDay) Time() time.Time {
	t, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CurrentWeather is the normalized current-weather record. It serializes to
// the canonical and the legacy shape at once.
type CurrentWeather struct {
	Location Coordinates
	Reading  CurrentReading
}

// Forecast is the normalized multi-day record, days ordered by date.
type Forecast struct {
	Location Coordinates
	Days     []ForecastDay
}

type coordinatesView struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type locationView struct {
	Name        string           `json:"name"`
	Country     string           `json:"country"`
	Coordinates *coordinatesView `json:"coordinates,omitempty"`
}

type currentView struct {
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feels_like"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	Precipitation float64 `json:"precipitation"`
}

// weatherView merges the legacy {main, description} entry with the
// canonical {code, condition} members that share the "weather" key.
type weatherView struct {
	Main        string   `json:"main"`
	Description string   `json:"description"`
	Code        int      `json:"code"`
	Condition   Category `json:"condition"`
}

type legacyMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

type legacyWind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type currentWeatherView struct {
	Location  locationView  `json:"location"`
	Current   currentView   `json:"current"`
	Timestamp string        `json:"timestamp"`
	Name      string        `json:"name"`
	Main      legacyMain    `json:"main"`
	Weather   []weatherView `json:"weather"`
	Wind      legacyWind    `json:"wind"`
}

func (w CurrentWeather) MarshalJSON() ([]byte, error) {
	r := w.Reading
	return json.Marshal(currentWeatherView{
		Location: locationView{
			Name:    w.Location.Name,
			Country: w.Location.Country,
			Coordinates: &coordinatesView{
				Lat: w.Location.Latitude,
				Lon: w.Location.Longitude,
			},
		},
		Current: currentView{
			Temperature:   r.Temperature,
			FeelsLike:     r.FeelsLike,
			Humidity:      r.Humidity,
			Pressure:      r.Pressure,
			WindSpeed:     r.WindSpeed,
			WindDirection: r.WindDirection,
			Precipitation: r.Precipitation,
		},
		Timestamp: r.Timestamp,
		Name:      w.Location.Name,
		Main: legacyMain{
			Temp:      r.Temperature,
			FeelsLike: r.FeelsLike,
			Humidity:  r.Humidity,
			Pressure:  r.Pressure,
		},
		Weather: []weatherView{{
			Main:        r.Category.Title(),
			Description: r.Description,
			Code:        r.Code,
			Condition:   r.Category,
		}},
		Wind: legacyWind{
			Speed: r.WindSpeed,
			Deg:   r.WindDirection,
		},
	})
}

type temperatureView struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

type legacyDayMain struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Humidity int     `json:"humidity"`
}

type dayWindView struct {
	Speed     float64 `json:"speed"`
	Direction float64 `json:"direction"`
}

type forecastDayView struct {
	Date          string          `json:"date"`
	Temperature   temperatureView `json:"temperature"`
	Precipitation float64         `json:"precipitation"`
	Dt            int64           `json:"dt"`
	Main          legacyDayMain   `json:"main"`
	Weather       []weatherView   `json:"weather"`
	Wind          dayWindView     `json:"wind"`
}

type cityView struct {
	Name string `json:"name"`
}

type forecastView struct {
	Location locationView      `json:"location"`
	Forecast []forecastDayView `json:"forecast"`
	List     []forecastDayView `json:"list"`
	City     cityView          `json:"city"`
}

func (f Forecast) MarshalJSON() ([]byte, error) {
	items := make([]forecastDayView, 0, len(f.Days))
	for _, d := range f.Days {
		var dt int64
		if t := d.Time(); !t.IsZero() {
			dt = t.Unix()
		}
		items = append(items, forecastDayView{
			Date:          d.Date,
			Temperature:   temperatureView{Max: d.TempMax, Min: d.TempMin},
			Precipitation: d.Precipitation,
			Dt:            dt,
			Main: legacyDayMain{
				Temp:     d.TempMax,
				TempMin:  d.TempMin,
				TempMax:  d.TempMax,
				Humidity: LegacyForecastHumidity,
			},
			Weather: []weatherView{{
				Main:        d.Category.Title(),
				Description: d.Description,
				Code:        d.Code,
				Condition:   d.Category,
			}},
			Wind: dayWindView{Speed: d.WindSpeed, Direction: d.WindDirection},
		})
	}

	return json.Marshal(forecastView{
		Location: locationView{
			Name:    f.Location.Name,
			Country: f.Location.Country,
		},
		Forecast: items,
		List:     items,
		City:     cityView{Name: f.Location.Name},
	})
}
