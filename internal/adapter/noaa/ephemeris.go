// Package noaa implements the domain ephemeris with the NOAA solar
// calculation provided by nathan-osman/go-sunrise.
package noaa

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/couchcryptid/sun-chart/internal/domain"
)

// Ephemeris computes sun event instants with the NOAA algorithm. It is
// stateless and safe for concurrent use.
type Ephemeris struct{}

// New returns the NOAA-backed ephemeris.
func New() *Ephemeris {
	return &Ephemeris{}
}

// Events implements domain.Ephemeris. go-sunrise returns zero instants on
// days without a horizon crossing, which maps to domain.ErrNoRiseNoSet.
// The library has no transit calculation, so solar noon is the midpoint of
// sunrise and sunset (apparent solar noon). Instants come back in UTC.
func (e *Ephemeris) Events(date time.Time, lat, lon float64) (domain.SunEvents, error) {
	rise, set := sunrise.SunriseSunset(lat, lon, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return domain.SunEvents{}, domain.ErrNoRiseNoSet
	}

	return domain.SunEvents{
		Sunrise: rise,
		Noon:    rise.Add(set.Sub(rise) / 2),
		Sunset:  set,
	}, nil
}
