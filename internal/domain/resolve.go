package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrLocationNotFound reports that a free-text query matched no place.
var ErrLocationNotFound = errors.New("location not found")

// ErrAmbiguousLocation reports that a free-text query matched several
// places. The candidates accompany the error so the caller can offer a
// choice.
var ErrAmbiguousLocation = errors.New("ambiguous location")

// ResolveLocation turns user input — a place name or a "lat, lon" pair —
// into a location with a filled time zone.
//
// Coordinate input always resolves: the coordinates are kept verbatim and
// reverse geocoding only contributes naming, so a failed reverse lookup
// degrades to a synthetic "Location lat, lon" name with a warning.
//
// Free-text input is forward geocoded. A single match resolves directly;
// several matches return ErrAmbiguousLocation along with the candidates so
// the caller can ask the user to choose; none returns ErrLocationNotFound.
// Provider failures propagate unchanged — they are not conflated with "no
// match".
func ResolveLocation(ctx context.Context, input string, geocoder Geocoder, zones ZoneLookup, logger *slog.Logger) (*Location, []Location, error) {
	if lat, lon, ok := ParseCoordinates(input); ok {
		loc, err := geocoder.Reverse(ctx, lat, lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"lat", lat,
				"lon", lon,
				"error", err,
			)
			loc = Location{}
		}
		if loc.Name == "" {
			loc.Name = fmt.Sprintf("Location %.2f, %.2f", lat, lon)
		}
		// Keep the coordinates the user typed, not the provider's snap.
		loc.Lat, loc.Lon = lat, lon
		loc.Zone = zoneOrUTC(zones, lat, lon, logger)
		return &loc, nil, nil
	}

	matches, err := geocoder.Search(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("search %q: %w", input, err)
	}

	for i := range matches {
		if matches[i].Zone == "" {
			matches[i].Zone = zoneOrUTC(zones, matches[i].Lat, matches[i].Lon, logger)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil, ErrLocationNotFound
	case 1:
		return &matches[0], nil, nil
	default:
		return nil, matches, ErrAmbiguousLocation
	}
}

// zoneOrUTC looks up the zone for a coordinate pair, falling back to UTC
// when the lookup is missing or comes back empty.
func zoneOrUTC(zones ZoneLookup, lat, lon float64, logger *slog.Logger) string {
	if zones == nil {
		return "UTC"
	}
	if zone := zones.ZoneID(lat, lon); zone != "" {
		return zone
	}
	logger.Warn("no time zone for coordinates, falling back to UTC",
		"lat", lat,
		"lon", lon,
	)
	return "UTC"
}
