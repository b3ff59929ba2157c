// Package render turns normalized weather records into fixed-width terminal
// text. Everything here is a pure function of its arguments.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

const (
	GaugeLength   = 50
	GaugeMinRange = -20.0
	GaugeMaxRange = 50.0

	gaugeMarker   = "●"
	gaugeCold     = "▓"
	gaugeMild     = "▒"
	gaugeWarm     = "░"
	gaugeEmpty    = "."
	nightStartsAt = 20
	nightEndsAt   = 6
)

const sunnyArt = `
    \   /
     .-.
  ‒ (   ) ‒
     ` + "`-'" + `
    /   \
    `

const cloudyArt = `
     .--.
  .-(    ).
 (___.__)__)
    `

const rainyArt = `
     .--.
  .-(    ).
 (___.__)__)
  ʻ ʻ ʻ ʻ
 ʻ ʻ ʻ ʻ
    `

const stormyArt = `
     .--.
  .-(    ).
 (___.__)__)
    * *
  * * *
    `

const snowyArt = `
     .--.
  .-(    ).
 (___.__)__)
   * * *
  * * *
    `

const foggyArt = `
     .--.
  .-(    ).
 (___.__)__)
 ≡ ≡ ≡ ≡ ≡
≡ ≡ ≡ ≡ ≡ ≡
    `

const nightArt = `
      *
   *     *
 *    (   *
   *     *
      *
    `

// IsNight reports whether a local hour counts as night for glyph selection.
func IsNight(hour int) bool {
	return hour < nightEndsAt || hour > nightStartsAt
}

// Glyph returns the multi-line art for a category. Night only changes the
// art for clear skies.
func Glyph(category models.Category, isNight bool) string {
	switch category {
	case models.CategoryClear:
		if isNight {
			return nightArt
		}
		return sunnyArt
	case models.CategoryRain:
		return rainyArt
	case models.CategoryStorm:
		return stormyArt
	case models.CategorySnow:
		return snowyArt
	case models.CategoryFog:
		return foggyArt
	default:
		return cloudyArt
	}
}

// MiniIcon returns the bracketed token used in forecast table rows.
func MiniIcon(category models.Category) string {
	switch category {
	case models.CategoryClear:
		return "[SUN]"
	case models.CategoryRain:
		return "[RAIN]"
	case models.CategoryStorm:
		return "[STORM]"
	case models.CategorySnow:
		return "[SNOW]"
	case models.CategoryFog:
		return "[FOG]"
	default:
		return "[CLOUD]"
	}
}

// GaugePosition returns the marker cell for temp on a bar of GaugeLength
// cells spanning [minRange, maxRange]. Out-of-range values clamp.
func GaugePosition(temp, minRange, maxRange float64) int {
	last := GaugeLength - 1
	if maxRange <= minRange {
		if temp <= minRange {
			return 0
		}
		return last
	}

	pos := int(math.Round((temp - minRange) / (maxRange - minRange) * float64(last)))
	if pos < 0 {
		return 0
	}
	if pos > last {
		return last
	}
	return pos
}

// TemperatureGauge draws a horizontal bar with the marker at temp, followed
// by a "Current:" line.
func TemperatureGauge(temp, minRange, maxRange float64) string {
	pos := GaugePosition(temp, minRange, maxRange)

	fill := gaugeWarm
	switch {
	case temp < 0:
		fill = gaugeCold
	case temp < 20:
		fill = gaugeMild
	}

	var bar strings.Builder
	for i := 0; i < GaugeLength; i++ {
		switch {
		case i == pos:
			bar.WriteString(gaugeMarker)
		case i < pos:
			bar.WriteString(fill)
		default:
			bar.WriteString(gaugeEmpty)
		}
	}

	return fmt.Sprintf("%s°C [%s] %s°C\n        Current: %s°C",
		formatPlain(minRange), bar.String(), formatPlain(maxRange), formatNumber(temp))
}

// DefaultGauge is TemperatureGauge over the -20..50°C range.
func DefaultGauge(temp float64) string {
	return TemperatureGauge(temp, GaugeMinRange, GaugeMaxRange)
}

// formatNumber prints a reading with at least one decimal, so 15 reads "15.0".
func formatNumber(v float64) string {
	s := formatPlain(v)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
