package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"github.com/bobby-s-dev/weather-dashboard/internal/scheduler"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"github.com/bobby-s-dev/weather-dashboard/pkg/client"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type stubResolver struct {
	err error
}

func (s stubResolver) Resolve(ctx context.Context, city string) (*models.Coordinates, error) {
	if s.err != nil {
		return nil, s.err
	}
	if city != "London" && city != "Paris" {
		return nil, fmt.Errorf("%w: %s", client.ErrLocationNotFound, city)
	}
	return &models.Coordinates{Name: city, Country: "Somewhere", Latitude: 1, Longitude: 2}, nil
}

type stubForecaster struct {
	err       error
	daysAsked int
}

func (s *stubForecaster) FetchCurrent(ctx context.Context, coords models.Coordinates) (*models.RawCurrent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RawCurrent{
		Time:                "2024-05-01T13:00",
		Temperature2M:       21.5,
		ApparentTemperature: 20.9,
		RelativeHumidity2M:  55,
		SurfacePressure:     1011,
		WindSpeed10M:        2.2,
		WindDirection10M:    90,
		WeatherCode:         0,
	}, nil
}

func (s *stubForecaster) FetchDaily(ctx context.Context, coords models.Coordinates, days int) (*models.RawDaily, error) {
	s.daysAsked = days
	if s.err != nil {
		return nil, s.err
	}
	return &models.RawDaily{
		Time:                     []string{"2024-05-01", "2024-05-02"},
		Temperature2MMax:         []float64{20, 22},
		Temperature2MMin:         []float64{10, 12},
		WeatherCode:              []int{2, 63},
		PrecipitationSum:         []float64{0, 5},
		WindSpeed10MMax:          []float64{3, 4},
		WindDirection10MDominant: []float64{100, 110},
	}, nil
}

type stubProbe struct{}

func (stubProbe) Status() scheduler.Status {
	return scheduler.Status{Healthy: true, Runs: 3, LastRun: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
}

func newTestApp(resolver services.CoordinateResolver, forecaster services.ForecastClient) *fiber.App {
	logger := zap.NewNop()
	svc := services.NewWeatherServiceWith(resolver, forecaster, services.Options{DefaultCity: "London", DefaultDays: 5}, logger)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, NewHandler(svc, stubProbe{}, logger), "*", logger)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", body, err)
	}
	return resp.StatusCode, out
}

func TestCurrentWeatherEndpoint(t *testing.T) {
	app := newTestApp(stubResolver{}, &stubForecaster{})

	status, body := doGet(t, app, "/weather?city=London")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}

	current := body["current"].(map[string]interface{})
	main := body["main"].(map[string]interface{})
	if current["temperature"] != main["temp"] || current["humidity"] != main["humidity"] || current["pressure"] != main["pressure"] {
		t.Fatalf("canonical and legacy views disagree: %v", body)
	}
	weather := body["weather"].([]interface{})[0].(map[string]interface{})
	if weather["main"] != "Clear" || weather["description"] != "Clear sky" {
		t.Fatalf("unexpected weather entry: %v", weather)
	}
	if body["name"] != "London" {
		t.Fatalf("unexpected name: %v", body["name"])
	}
}

func TestCurrentWeatherDefaultsToLondon(t *testing.T) {
	app := newTestApp(stubResolver{}, &stubForecaster{})

	status, body := doGet(t, app, "/weather")
	if status != http.StatusOK || body["name"] != "London" {
		t.Fatalf("expected London fallback, got %d: %v", status, body)
	}
}

func TestForecastEndpoint(t *testing.T) {
	f := &stubForecaster{}
	app := newTestApp(stubResolver{}, f)

	status, body := doGet(t, app, "/forecast?city=Paris&days=7")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if f.daysAsked != 7 {
		t.Fatalf("expected 7 days requested, got %d", f.daysAsked)
	}
	if n := len(body["forecast"].([]interface{})); n != 2 {
		t.Fatalf("expected forecast clipped to 2 days, got %d", n)
	}
	if n := len(body["list"].([]interface{})); n != 2 {
		t.Fatalf("expected legacy list of 2 days, got %d", n)
	}
	first := body["list"].([]interface{})[0].(map[string]interface{})
	if first["main"].(map[string]interface{})["humidity"] != float64(65) {
		t.Fatalf("expected legacy humidity 65: %v", first)
	}

	if _, _ = doGet(t, app, "/forecast?city=Paris"); f.daysAsked != 5 {
		t.Fatalf("expected default of 5 days, got %d", f.daysAsked)
	}
}

func TestForecastDaysValidation(t *testing.T) {
	f := &stubForecaster{}
	app := newTestApp(stubResolver{}, f)

	for _, q := range []string{"/forecast?days=10", "/forecast?city=Paris&days=0", "/forecast?city=Paris&days=abc"} {
		status, body := doGet(t, app, q)
		if status != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, status)
		}
		msg, _ := body["error"].(string)
		if !strings.HasPrefix(msg, "Invalid input: ") || !strings.Contains(msg, "between 1 and 7") {
			t.Fatalf("%s: unexpected error %q", q, msg)
		}
		if len(body) != 1 {
			t.Fatalf("%s: error body should be flat: %v", q, body)
		}
	}
	if f.daysAsked != 0 {
		t.Fatal("invalid days must not reach the forecast client")
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		resolver   stubResolver
		forecaster *stubForecaster
		target     string
		status     int
		message    string
	}{
		{"short city", stubResolver{}, &stubForecaster{}, "/weather?city=X", http.StatusBadRequest, "Invalid input: City name must be at least 2 characters long"},
		{"not found", stubResolver{}, &stubForecaster{}, "/weather?city=Atlantis", http.StatusNotFound, "City 'Atlantis' not found"},
		{"geocoder down", stubResolver{err: errors.New("timeout")}, &stubForecaster{}, "/weather?city=London", http.StatusServiceUnavailable, "Failed to fetch coordinates for London"},
		{"forecast down", stubResolver{}, &stubForecaster{err: errors.New("HTTP 500")}, "/forecast?city=London", http.StatusServiceUnavailable, "Failed to fetch forecast data for London"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.resolver, tt.forecaster)
			status, body := doGet(t, app, tt.target)
			if status != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, status)
			}
			if body["error"] != tt.message {
				t.Fatalf("expected %q, got %v", tt.message, body["error"])
			}
		})
	}
}

func TestASCIIEndpoint(t *testing.T) {
	app := newTestApp(stubResolver{}, &stubForecaster{})

	status, body := doGet(t, app, "/ascii?city=London")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["city"] != "London" || body["mode"] != "current" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if !strings.Contains(body["ascii"].(string), "WEATHER DASHBOARD - LONDON") {
		t.Fatalf("unexpected ascii output: %v", body["ascii"])
	}

	status, body = doGet(t, app, "/ascii?city=Paris&mode=FORECAST")
	if status != http.StatusOK || body["mode"] != "forecast" {
		t.Fatalf("expected forecast mode, got %d: %v", status, body)
	}
	ascii := body["ascii"].(string)
	if !strings.Contains(ascii, "2-DAY FORECAST - PARIS") || !strings.Contains(ascii, "Precipitation Trend") {
		t.Fatalf("unexpected forecast ascii:\n%s", ascii)
	}

	status, body = doGet(t, app, "/ascii?mode=radar")
	if status != http.StatusBadRequest || body["error"] != "Invalid input: Mode must be 'current' or 'forecast'" {
		t.Fatalf("expected mode validation error, got %d: %v", status, body)
	}
}

func TestInfoAndNotFound(t *testing.T) {
	app := newTestApp(stubResolver{}, &stubForecaster{})

	status, body := doGet(t, app, "/api")
	if status != http.StatusOK || body["status"] != "healthy" || body["version"] != apiVersion {
		t.Fatalf("unexpected info: %d %v", status, body)
	}
	upstream := body["upstream"].(map[string]interface{})
	if upstream["healthy"] != true {
		t.Fatalf("unexpected upstream status: %v", upstream)
	}

	status, body = doGet(t, app, "/nope")
	if status != http.StatusNotFound || body["error"] != "Endpoint not found" {
		t.Fatalf("unexpected 404 body: %d %v", status, body)
	}
}
