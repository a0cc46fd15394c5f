package domain

import (
	"strconv"
	"strings"
)

// Position is an observer location paired with its IANA time zone.
type Position struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zone string  `json:"zone"` // IANA identifier, e.g. "Asia/Tokyo"
}

// ValidCoordinates reports whether lat and lon are inside WGS-84 range.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ParseCoordinates parses user input of the form "lat, lon". ok is false
// when the input is not a two-part coordinate pair or either value falls
// outside the valid range; such input should be treated as a place name.
func ParseCoordinates(input string) (lat, lon float64, ok bool) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	if !ValidCoordinates(lat, lon) {
		return 0, 0, false
	}
	return lat, lon, true
}
