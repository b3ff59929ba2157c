package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"go.uber.org/zap"
)

const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1"

var (
	currentFields = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"precipitation",
		"weather_code",
		"surface_pressure",
		"wind_speed_10m",
		"wind_direction_10m",
	}
	dailyFields = []string{
		"temperature_2m_max",
		"temperature_2m_min",
		"weather_code",
		"precipitation_sum",
		"wind_speed_10m_max",
		"wind_direction_10m_dominant",
	}
)

type OpenMeteoClient struct {
	*BaseClient
	baseURL string
}

type OpenMeteoCurrentResponse struct {
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Timezone  string             `json:"timezone"`
	Current   *models.RawCurrent `json:"current"`
}

type OpenMeteoForecastResponse struct {
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Timezone  string           `json:"timezone"`
	Daily     *models.RawDaily `json:"daily"`
}

func NewOpenMeteoClient(baseURL string, config ClientConfig, logger *zap.Logger) *OpenMeteoClient {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	return &OpenMeteoClient{
		BaseClient: NewBaseClient("openmeteo", config, logger),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *OpenMeteoClient) FetchCurrent(ctx context.Context, coords models.Coordinates) (*models.RawCurrent, error) {
	params := c.baseParams(coords)
	params.Set("current", strings.Join(currentFields, ","))

	var response OpenMeteoCurrentResponse
	if err := c.GetJSON(ctx, c.baseURL+"/forecast?"+params.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}
	if response.Current == nil {
		return nil, fmt.Errorf("response has no current block")
	}

	return response.Current, nil
}

func (c *OpenMeteoClient) FetchDaily(ctx context.Context, coords models.Coordinates, days int) (*models.RawDaily, error) {
	if days < 1 || days > 7 {
		return nil, fmt.Errorf("days must be between 1 and 7")
	}

	params := c.baseParams(coords)
	params.Set("daily", strings.Join(dailyFields, ","))
	params.Set("forecast_days", strconv.Itoa(days))

	var response OpenMeteoForecastResponse
	if err := c.GetJSON(ctx, c.baseURL+"/forecast?"+params.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	if response.Daily == nil {
		return nil, fmt.Errorf("response has no daily block")
	}

	return response.Daily, nil
}

func (c *OpenMeteoClient) baseParams(coords models.Coordinates) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("wind_speed_unit", "ms")
	params.Set("timezone", "auto")
	return params
}
