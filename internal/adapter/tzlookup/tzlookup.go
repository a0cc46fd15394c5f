// Package tzlookup maps coordinates to IANA time zone identifiers using
// the compressed world zone tables embedded in bradfitz/latlong.
package tzlookup

import "github.com/bradfitz/latlong"

// Lookup implements domain.ZoneLookup as an in-process table lookup: no
// network, no allocation on the hot path.
type Lookup struct{}

// New returns the table-backed zone lookup.
func New() *Lookup {
	return &Lookup{}
}

// ZoneID returns the IANA zone containing the coordinates, or the empty
// string when the point falls outside the tables (typically open ocean).
func (l *Lookup) ZoneID(lat, lon float64) string {
	return latlong.LookupZoneName(lat, lon)
}
