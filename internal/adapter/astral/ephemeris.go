// Package astral adapts the sj14/astral solar library (a port of Python's
// astral) to the domain Ephemeris interface.
package astral

import (
	"fmt"
	"time"

	sjastral "github.com/sj14/astral/pkg/astral"

	"github.com/couchcryptid/sun-chart/internal/domain"
)

// Ephemeris computes sun event instants with the astral library. It is
// stateless and safe for concurrent use.
type Ephemeris struct{}

// New returns the astral-backed ephemeris.
func New() *Ephemeris {
	return &Ephemeris{}
}

// Events implements domain.Ephemeris. astral reports days where the sun
// never reaches the horizon as errors from Sunrise and Sunset; both map to
// domain.ErrNoRiseNoSet. Noon is a meridian transit and always computable.
// Instants come back in UTC.
func (e *Ephemeris) Events(date time.Time, lat, lon float64) (domain.SunEvents, error) {
	observer := sjastral.Observer{Latitude: lat, Longitude: lon}

	rise, err := sjastral.Sunrise(observer, date)
	if err != nil {
		return domain.SunEvents{}, fmt.Errorf("%w: %v", domain.ErrNoRiseNoSet, err)
	}

	set, err := sjastral.Sunset(observer, date)
	if err != nil {
		return domain.SunEvents{}, fmt.Errorf("%w: %v", domain.ErrNoRiseNoSet, err)
	}

	return domain.SunEvents{
		Sunrise: rise,
		Noon:    sjastral.Noon(observer, date),
		Sunset:  set,
	}, nil
}
