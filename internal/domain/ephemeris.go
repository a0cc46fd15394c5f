package domain

import (
	"errors"
	"time"
)

// ErrNoRiseNoSet signals a polar day or polar night: the sun does not cross
// the horizon on the requested date, so sunrise and sunset are undefined.
var ErrNoRiseNoSet = errors.New("sun does not rise or set on this date")

// SunEvents holds the instants of the three daily solar events. The values
// are absolute instants; callers convert to the observer's zone for
// wall-clock presentation.
type SunEvents struct {
	Sunrise time.Time
	Noon    time.Time
	Sunset  time.Time
}

// Ephemeris computes solar event instants for an observer and calendar
// date. The date's time zone selects which calendar day is evaluated.
// Implementations signal days without a horizon crossing by returning an
// error wrapping ErrNoRiseNoSet; any other error is a computation failure
// and propagates to the caller.
type Ephemeris interface {
	Events(date time.Time, lat, lon float64) (SunEvents, error)
}
