// Package domain models daily solar events: sunrise, solar noon, and sunset
// for an observer position, computed for single days or whole calendar years.
//
// # Solar Events
//
// Solar noon is the instant the sun reaches its highest point for a given
// date and location, and is computable everywhere away from the poles.
// Sunrise and sunset are horizon crossings and do not exist on every date:
// at high latitudes the sun can stay above the horizon for a full calendar
// day (polar day) or below it (polar night). Ephemeris implementations
// signal such days by wrapping [ErrNoRiseNoSet]; see [Ephemeris].
//
// # Hour-of-Day Convention
//
// A year series carries times as decimal hours in [0, 24):
//
//	hour + minute/60 + second/3600
//
// computed from the wall clock in the position's time zone, never UTC.
// 7.5 means 07:30 local time. 24.0 cannot appear because the hour
// component is at most 23. On daylight-saving transition days the value
// reflects the shifted wall clock, which is what a reader of the chart
// expects to see.
//
// # Time Zone Conventions
//
// A [Position] names its zone by IANA identifier ("Asia/Tokyo"). The zone
// is loaded once per computation; an identifier the zone database cannot
// resolve fails the whole call. A zone failure is never mistaken for a
// polar day: zone loading happens before any ephemeris evaluation.
//
// # Degenerate Days
//
// A year computation never aborts because of a polar date. Each such date
// yields a record with all three events absent, and iteration continues.
// Absence is per-field: consumers that only need solar noon can keep using
// records whose sunrise and sunset are missing.
package domain
