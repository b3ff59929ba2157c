package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/config"
	"github.com/bobby-s-dev/weather-dashboard/internal/render"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"go.uber.org/zap"
)

const (
	version     = "Weather CLI v2.0"
	defaultDays = 5
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("weather", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var forecast, banner, showVersion, debug bool
	var days int
	fs.BoolVar(&forecast, "forecast", false, "show the multi-day forecast")
	fs.BoolVar(&forecast, "f", false, "shorthand for -forecast")
	fs.IntVar(&days, "days", defaultDays, "number of forecast days (1-7)")
	fs.IntVar(&days, "d", defaultDays, "shorthand for -days")
	fs.BoolVar(&banner, "banner", false, "print the banner and exit")
	fs.BoolVar(&banner, "b", false, "shorthand for -banner")
	fs.BoolVar(&showVersion, "version", false, "print the version and exit")
	fs.BoolVar(&showVersion, "v", false, "shorthand for -version")
	fs.BoolVar(&debug, "debug", false, "log upstream calls to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: weather [flags] [city]\n\n")
		fs.PrintDefaults()
	}

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}
	if banner {
		fmt.Fprintln(stdout, render.Banner())
		return 0
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fail(stderr, err)
	}

	daysSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "days" || f.Name == "d" {
			daysSet = true
		}
	})
	if !daysSet {
		days = cfg.Defaults.ForecastDays
		if days < services.MinForecastDays || days > services.MaxForecastDays {
			days = defaultDays
		}
	}

	logger := zap.NewNop()
	if debug {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	defer logger.Sync()

	city, err := services.ParseCity(strings.Join(positional, " "), cfg.Defaults.City)
	if err != nil {
		return fail(stderr, err)
	}

	mode := services.ModeCurrent
	if forecast {
		mode = services.ModeForecast
		if days, err = services.ParseDays(strconv.Itoa(days)); err != nil {
			return fail(stderr, err)
		}
	}

	service := services.NewWeatherService(cfg, logger)

	timeout := cfg.WeatherAPI.Timeout * 3
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	output, err := service.RenderASCII(ctx, city, mode, days)
	if err != nil {
		return fail(stderr, err)
	}

	fmt.Fprintln(stdout, output)
	return 0
}

// parseInterspersed lets flags follow the city, as in "weather Paris -f".
// flag stops at the first non-flag argument, so parsing resumes after it.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "ERROR: %v\n", err)
	return 1
}
