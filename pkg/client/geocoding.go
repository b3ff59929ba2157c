package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"go.uber.org/zap"
)

const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1"

// ErrLocationNotFound is returned when the geocoder has no match for a name.
var ErrLocationNotFound = errors.New("location not found")

type GeocodingClient struct {
	*BaseClient
	baseURL string
}

type GeocodingResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

type GeocodingResponse struct {
	Results []GeocodingResult `json:"results"`
}

func NewGeocodingClient(baseURL string, config ClientConfig, logger *zap.Logger) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &GeocodingClient{
		BaseClient: NewBaseClient("geocoding", config, logger),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Resolve returns the best match for city.
func (c *GeocodingClient) Resolve(ctx context.Context, city string) (*models.Coordinates, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("city name cannot be empty")
	}

	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	c.logger.Info("Fetching coordinates", zap.String("city", city))

	var response GeocodingResponse
	if err := c.GetJSON(ctx, c.baseURL+"/search?"+params.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch coordinates for %s: %w", city, err)
	}

	if len(response.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, city)
	}

	location := response.Results[0]
	country := location.Country
	if country == "" {
		country = "Unknown"
	}

	coords := &models.Coordinates{
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		Name:        location.Name,
		Country:     country,
		AdminRegion: location.Admin1,
	}

	c.logger.Info("Found coordinates",
		zap.String("name", coords.Name),
		zap.String("country", coords.Country),
		zap.Float64("lat", coords.Latitude),
		zap.Float64("lon", coords.Longitude))

	return coords, nil
}
