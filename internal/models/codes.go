package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the coarse weather classification derived from a WMO code.
type Category string

const (
	CategoryClear   Category = "clear"
	CategoryCloudy  Category = "cloudy"
	CategoryRain    Category = "rain"
	CategoryStorm   Category = "storm"
	CategorySnow    Category = "snow"
	CategoryFog     Category = "fog"
	CategoryUnknown Category = "unknown"
)

// Title returns the category name title-cased, e.g. "Clear".
func (c Category) Title() string {
	// Casers are stateful, so one per call.
	return cases.Title(language.English).String(string(c))
}

type codeInfo struct {
	description string
	category    Category
}

// WMO weather interpretation codes
var weatherCodes = map[int]codeInfo{
	0:  {"Clear sky", CategoryClear},
	1:  {"Mainly clear", CategoryClear},
	2:  {"Partly cloudy", CategoryCloudy},
	3:  {"Overcast", CategoryCloudy},
	45: {"Fog", CategoryFog},
	48: {"Depositing rime fog", CategoryFog},
	51: {"Light drizzle", CategoryRain},
	53: {"Moderate drizzle", CategoryRain},
	55: {"Dense drizzle", CategoryRain},
	56: {"Light freezing drizzle", CategoryRain},
	57: {"Dense freezing drizzle", CategoryRain},
	61: {"Slight rain", CategoryRain},
	63: {"Moderate rain", CategoryRain},
	65: {"Heavy rain", CategoryRain},
	66: {"Light freezing rain", CategoryRain},
	67: {"Heavy freezing rain", CategoryRain},
	71: {"Slight snow fall", CategorySnow},
	73: {"Moderate snow fall", CategorySnow},
	75: {"Heavy snow fall", CategorySnow},
	77: {"Snow grains", CategorySnow},
	80: {"Slight rain showers", CategoryRain},
	81: {"Moderate rain showers", CategoryRain},
	82: {"Violent rain showers", CategoryRain},
	85: {"Slight snow showers", CategorySnow},
	86: {"Heavy snow showers", CategorySnow},
	95: {"Thunderstorm", CategoryStorm},
	96: {"Thunderstorm with slight hail", CategoryStorm},
	99: {"Thunderstorm with heavy hail", CategoryStorm},
}

// Describe maps a WMO code to its description and category. Codes outside
// the table yield ("Unknown", CategoryUnknown).
func Describe(code int) (string, Category) {
	if info, ok := weatherCodes[code]; ok {
		return info.description, info.category
	}
	return "Unknown", CategoryUnknown
}
