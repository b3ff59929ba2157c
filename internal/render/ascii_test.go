package render

import (
	"strings"
	"testing"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

var allCategories = []models.Category{
	models.CategoryClear,
	models.CategoryCloudy,
	models.CategoryRain,
	models.CategoryStorm,
	models.CategorySnow,
	models.CategoryFog,
	models.CategoryUnknown,
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		category models.Category
		want     string
	}{
		{models.CategoryClear, sunnyArt},
		{models.CategoryCloudy, cloudyArt},
		{models.CategoryRain, rainyArt},
		{models.CategoryStorm, stormyArt},
		{models.CategorySnow, snowyArt},
		{models.CategoryFog, foggyArt},
		{models.CategoryUnknown, cloudyArt},
		{models.Category("hail"), cloudyArt},
	}

	for _, tt := range tests {
		if got := Glyph(tt.category, false); got != tt.want {
			t.Errorf("Glyph(%q, day) returned wrong art:\n%s", tt.category, got)
		}
	}
}

func TestGlyphNightOnlyAffectsClear(t *testing.T) {
	for _, c := range allCategories {
		night := Glyph(c, true)
		if c == models.CategoryClear {
			if night != nightArt {
				t.Errorf("expected night art for clear sky at night")
			}
			continue
		}
		if night != Glyph(c, false) {
			t.Errorf("night changed the art for %q", c)
		}
	}
}

func TestMiniIcon(t *testing.T) {
	want := map[models.Category]string{
		models.CategoryClear:   "[SUN]",
		models.CategoryCloudy:  "[CLOUD]",
		models.CategoryRain:    "[RAIN]",
		models.CategoryStorm:   "[STORM]",
		models.CategorySnow:    "[SNOW]",
		models.CategoryFog:     "[FOG]",
		models.CategoryUnknown: "[CLOUD]",
	}
	for c, icon := range want {
		if got := MiniIcon(c); got != icon {
			t.Errorf("MiniIcon(%q) = %q, want %q", c, got, icon)
		}
	}
}

func TestIsNight(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		want := hour < 6 || hour > 20
		if got := IsNight(hour); got != want {
			t.Errorf("IsNight(%d) = %v, want %v", hour, got, want)
		}
	}
}

func gaugeCells(t *testing.T, gauge string) []rune {
	t.Helper()
	first := strings.SplitN(gauge, "\n", 2)[0]
	start := strings.Index(first, "[")
	end := strings.LastIndex(first, "]")
	if start < 0 || end < start {
		t.Fatalf("gauge has no bar: %q", first)
	}
	return []rune(first[start+1 : end])
}

func TestTemperatureGaugeShape(t *testing.T) {
	for _, temp := range []float64{-100, -20, -5.5, 0, 12.3, 19.9, 20, 35, 50, 100} {
		gauge := DefaultGauge(temp)
		cells := gaugeCells(t, gauge)
		if len(cells) != GaugeLength {
			t.Fatalf("temp %v: expected %d cells, got %d", temp, GaugeLength, len(cells))
		}
		if n := strings.Count(string(cells), gaugeMarker); n != 1 {
			t.Fatalf("temp %v: expected exactly one marker, got %d", temp, n)
		}
		if !strings.Contains(gauge, "\n        Current: ") {
			t.Fatalf("temp %v: missing current line: %q", temp, gauge)
		}
	}
}

func TestTemperatureGaugeFill(t *testing.T) {
	tests := []struct {
		temp float64
		fill string
	}{
		{-5, gaugeCold},
		{10, gaugeMild},
		{25, gaugeWarm},
	}
	for _, tt := range tests {
		cells := gaugeCells(t, DefaultGauge(tt.temp))
		pos := GaugePosition(tt.temp, GaugeMinRange, GaugeMaxRange)
		for i, c := range cells {
			var want string
			switch {
			case i < pos:
				want = tt.fill
			case i == pos:
				want = gaugeMarker
			default:
				want = gaugeEmpty
			}
			if string(c) != want {
				t.Fatalf("temp %v cell %d: got %q want %q", tt.temp, i, string(c), want)
			}
		}
	}
}

func TestGaugePositionClampsAndIsMonotonic(t *testing.T) {
	if pos := GaugePosition(-100, GaugeMinRange, GaugeMaxRange); pos != 0 {
		t.Fatalf("expected 0 for -100, got %d", pos)
	}
	if pos := GaugePosition(100, GaugeMinRange, GaugeMaxRange); pos != GaugeLength-1 {
		t.Fatalf("expected %d for 100, got %d", GaugeLength-1, pos)
	}

	prev := -1
	for temp := -40.0; temp <= 70; temp += 0.25 {
		pos := GaugePosition(temp, GaugeMinRange, GaugeMaxRange)
		if pos < prev {
			t.Fatalf("position decreased at %v: %d < %d", temp, pos, prev)
		}
		prev = pos
	}
}

func TestTemperatureGaugeLabels(t *testing.T) {
	gauge := DefaultGauge(15.5)
	lines := strings.Split(gauge, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "-20°C [") || !strings.HasSuffix(lines[0], "] 50°C") {
		t.Fatalf("unexpected range labels: %q", lines[0])
	}
	if lines[1] != "        Current: 15.5°C" {
		t.Fatalf("unexpected current line: %q", lines[1])
	}
}

func TestTemperatureGaugeWholeReadingKeepsDecimal(t *testing.T) {
	lines := strings.Split(DefaultGauge(15), "\n")
	if !strings.HasPrefix(lines[0], "-20°C [") || !strings.HasSuffix(lines[0], "] 50°C") {
		t.Fatalf("range labels should stay integral: %q", lines[0])
	}
	if lines[1] != "        Current: 15.0°C" {
		t.Fatalf("unexpected current line: %q", lines[1])
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		15:     "15.0",
		-3:     "-3.0",
		0:      "0.0",
		18.4:   "18.4",
		1015.2: "1015.2",
		0.05:   "0.05",
	}
	for in, want := range tests {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
