package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Mode string

const (
	ModeCurrent  Mode = "current"
	ModeForecast Mode = "forecast"
)

const (
	MinForecastDays = 1
	MaxForecastDays = 7
)

var validate = validator.New()

// ParseCity trims raw, substitutes the default city when empty and checks
// the 2-100 character bound.
func ParseCity(raw, defaultCity string) (string, error) {
	city := strings.TrimSpace(raw)
	if city == "" {
		city = strings.TrimSpace(defaultCity)
	}
	if city == "" {
		return "", invalidInput("City parameter is required and cannot be empty")
	}

	if err := validate.Var(city, "min=2,max=100"); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			return "", invalidInput("City name is too long")
		}
		return "", invalidInput("City name must be at least 2 characters long")
	}
	return city, nil
}

// ParseDays converts the days parameter and enforces the 1-7 bound.
func ParseDays(raw string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidInput("Days must be a valid number between 1 and 7")
	}
	if err := validateDays(days); err != nil {
		return 0, err
	}
	return days, nil
}

func validateDays(days int) error {
	if err := validate.Var(days, "min=1,max=7"); err != nil {
		return invalidInput("Days must be a valid number between 1 and 7")
	}
	return nil
}

// ParseMode accepts "current" or "forecast" in any case; empty means current.
func ParseMode(raw string) (Mode, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if mode == "" {
		return ModeCurrent, nil
	}
	if err := validate.Var(mode, "oneof=current forecast"); err != nil {
		return "", invalidInput("Mode must be 'current' or 'forecast'")
	}
	return Mode(mode), nil
}
