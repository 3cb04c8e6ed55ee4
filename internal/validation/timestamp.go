package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned when a timestamp matches none of the accepted layouts
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// timestampLayouts lists accepted layouts in match order. A nil location means the
// layout carries its own offset; naive date-times are read in local time and a bare
// date is read as UTC midnight.
var timestampLayouts = []struct {
	layout string
	loc    *time.Location
}{
	{time.RFC3339, nil},
	{"2006-01-02T15:04Z07:00", nil},
	{"2006-01-02T15:04:05", time.Local},
	{"2006-01-02T15:04", time.Local},
	{"2006-01-02 15:04:05", time.Local},
	{"2006-01-02 15:04", time.Local},
	{time.DateOnly, time.UTC},
}

// ParseTimestamp parses an itinerary timestamp such as "2026-02-12T14:00:00".
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if l.loc == nil {
			t, err = time.Parse(l.layout, s)
		} else {
			t, err = time.ParseInLocation(l.layout, s, l.loc)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// IsHalfHourPrecision reports whether s parses and sits exactly on :00 or :30
// with zero seconds and no sub-second part, read in the timestamp's own offset.
func IsHalfHourPrecision(s string) bool {
	t, err := ParseTimestamp(s)
	if err != nil {
		return false
	}
	return OnHalfHour(t)
}

// OnHalfHour reports whether t is exactly on a half-hour boundary.
func OnHalfHour(t time.Time) bool {
	m := t.Minute()
	return (m == 0 || m == 30) && t.Second() == 0 && t.Nanosecond() == 0
}
