package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// hourOfDay projects an instant onto its wall clock as decimal hours:
// hour + minute/60 + second/3600. The hour component is at most 23, so the
// result is always below 24.
func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// FormatHour renders a decimal hour-of-day as "HH:MM".
func FormatHour(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ComputeYear produces one SolarDay for every calendar day of year at pos,
// in ascending date order. Polar dates become records with all three events
// absent and never abort the computation. The zone identifier is resolved
// once up front, so a malformed zone fails the whole call instead of being
// mistaken for a run of polar days. Any other ephemeris failure aborts with
// the date it occurred on.
func ComputeYear(pos Position, year int, eph Ephemeris, logger *slog.Logger) (YearSeries, error) {
	loc, err := time.LoadLocation(pos.Zone)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", pos.Zone, err)
	}

	series := make(YearSeries, 0, DaysInYear(year))
	for date := time.Date(year, time.January, 1, 0, 0, 0, 0, loc); date.Year() == year; date = date.AddDate(0, 0, 1) {
		events, err := eph.Events(date, pos.Lat, pos.Lon)
		if errors.Is(err, ErrNoRiseNoSet) {
			logger.Debug("no sunrise or sunset",
				"date", date.Format(time.DateOnly),
				"lat", pos.Lat,
				"lon", pos.Lon,
			)
			series = append(series, SolarDay{Date: date})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sun events for %s: %w", date.Format(time.DateOnly), err)
		}

		sunrise := hourOfDay(events.Sunrise.In(loc))
		noon := hourOfDay(events.Noon.In(loc))
		sunset := hourOfDay(events.Sunset.In(loc))
		series = append(series, SolarDay{
			Date:    date,
			Sunrise: &sunrise,
			Noon:    &noon,
			Sunset:  &sunset,
		})
	}
	return series, nil
}

// ComputeDay returns the exact sunrise and sunset instants for one calendar
// day at pos, converted to the position's zone. On a polar date both
// instants are zero and the error is nil. Solar noon is not computed here;
// callers that need it use ComputeYear.
func ComputeDay(pos Position, date time.Time, eph Ephemeris) (rise, set time.Time, err error) {
	loc, err := time.LoadLocation(pos.Zone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("load zone %q: %w", pos.Zone, err)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	events, err := eph.Events(day, pos.Lat, pos.Lon)
	if errors.Is(err, ErrNoRiseNoSet) {
		return time.Time{}, time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("sun events for %s: %w", day.Format(time.DateOnly), err)
	}
	return events.Sunrise.In(loc), events.Sunset.In(loc), nil
}
