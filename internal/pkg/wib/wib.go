// Package wib converts between WIB (UTC+7) civil time and absolute instants.
// The marketplace operates in a single fixed offset; no tzdata lookup is done.
package wib

import (
	"errors"
	"time"
)

const OffsetSeconds = 7 * 60 * 60

var location = time.FixedZone("WIB", OffsetSeconds)

var (
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClock = errors.New("time must be in HH:MM format")
)

var dayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func Location() *time.Location {
	return location
}

// At combines a WIB calendar date with minutes since midnight into an instant.
func At(date time.Time, minuteOfDay int) time.Time {
	y, m, d := date.In(location).Date()
	return time.Date(y, m, d, 0, minuteOfDay, 0, 0, location)
}

// ParseDate parses "YYYY-MM-DD" as a WIB calendar date (midnight local).
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, location)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClock
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(t time.Time) string {
	return t.In(location).Format("15:04")
}

func FormatDate(t time.Time) string {
	return t.In(location).Format("2006-01-02")
}

// DayName returns the lowercase weekday label for an instant, in WIB.
func DayName(t time.Time) string {
	return dayNames[int(t.In(location).Weekday())]
}

// SameDay reports whether two instants fall on the same WIB calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(location).Date()
	by, bm, bd := b.In(location).Date()
	return ay == by && am == bm && ad == bd
}

// DayBounds returns the [start, end) instants of the WIB calendar day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.In(location).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, location)
	return start, start.Add(24 * time.Hour)
}
