package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateKeyLayout is the canonical layout of a local calendar-day key.
const DateKeyLayout = "2006-01-02"

var (
	ErrInvalidDateKey  = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrInvalidTimezone = errors.New("invalid timezone (must be an IANA name)")
)

// LocalDateKey returns the YYYY-MM-DD key of the calendar day t falls on in loc.
// A nil loc means time.Local. Two instants on the same local day always share a key.
func LocalDateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateKeyLayout)
}

// ParseDateKey returns midnight UTC of the calendar date named by key.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return t, nil
}

func IsValidDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// ShiftDateKey moves a key by whole calendar days. The arithmetic runs on
// UTC dates so DST transitions in the user's zone never skip or repeat a day.
func ShiftDateKey(key string, days int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateKeyLayout), nil
}

// StartOfLocalDay returns local midnight of the day t falls on in loc.
func StartOfLocalDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns local midnight of the most recent Sunday at or before t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := StartOfLocalDay(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// ResolveLocation loads an IANA zone by name, returning fallback for an empty name.
func ResolveLocation(name string, fallback *time.Location) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if fallback == nil {
			return time.Local, nil
		}
		return fallback, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}
