package domain

import (
	"errors"
	"time"
)

// ErrNoUsableData reports a computed year with zero valid sunrises, which
// leaves nothing worth charting.
var ErrNoUsableData = errors.New("no usable sun time data for this location")

// SolarDay holds the solar events of one calendar day as decimal hours of
// local wall-clock time. Nil fields mark events that do not occur; on a
// polar day or polar night all three are nil. Present values are always in
// [0, 24).
type SolarDay struct {
	Date    time.Time // midnight in the position's zone
	Sunrise *float64
	Noon    *float64
	Sunset  *float64
}

// YearSeries is one SolarDay per calendar day, January 1 through
// December 31 of a single year, in ascending date order with no gaps or
// duplicates. It is built fresh by ComputeYear and never mutated after.
type YearSeries []SolarDay

// Year returns the calendar year the series covers, or 0 for an empty
// series.
func (s YearSeries) Year() int {
	if len(s) == 0 {
		return 0
	}
	return s[0].Date.Year()
}

// ValidSunrises counts the days with a present sunrise value. A year with
// zero valid sunrises has no usable data for charting.
func (s YearSeries) ValidSunrises() int {
	var n int
	for _, d := range s {
		if d.Sunrise != nil {
			n++
		}
	}
	return n
}

// PolarDays counts the days where no event is present.
func (s YearSeries) PolarDays() int {
	var n int
	for _, d := range s {
		if d.Sunrise == nil && d.Noon == nil && d.Sunset == nil {
			n++
		}
	}
	return n
}

// IsLeapYear reports whether year is a Gregorian leap year: divisible by
// four, except centuries not divisible by four hundred.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years, otherwise 365.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
