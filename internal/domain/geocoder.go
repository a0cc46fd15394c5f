package domain

import "context"

// Geocoder resolves place queries against a geocoding provider.
type Geocoder interface {
	// Search returns candidate locations for a free-text query, best match
	// first. An empty slice means the provider found nothing.
	Search(ctx context.Context, query string) ([]Location, error)

	// Reverse returns place details for a coordinate pair.
	Reverse(ctx context.Context, lat, lon float64) (Location, error)
}

// ZoneLookup maps coordinates to an IANA time zone identifier. An empty
// result means the zone is unknown (open ocean, gaps in the data set);
// callers decide the fallback.
type ZoneLookup interface {
	ZoneID(lat, lon float64) string
}
