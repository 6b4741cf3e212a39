package core

import (
	"fmt"
	"time"
)

// Clock provides the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Useful in tests.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// ZoneProvider resolves the user's current timezone.
// It is queried on every date computation so mid-session changes are honored.
type ZoneProvider interface {
	Location() *time.Location
}

// ZoneFunc adapts a plain function to the ZoneProvider interface.
type ZoneFunc func() *time.Location

// Location calls f.
func (f ZoneFunc) Location() *time.Location { return f() }

// SystemZone reports time.Local.
type SystemZone struct{}

// Location returns time.Local.
func (SystemZone) Location() *time.Location { return time.Local }

// FixedZone always reports loc.
func FixedZone(loc *time.Location) ZoneProvider {
	return ZoneFunc(func() *time.Location { return loc })
}

// ZoneByName loads an IANA timezone. An empty name selects the system zone.
func ZoneByName(name string) (ZoneProvider, error) {
	if name == "" {
		return SystemZone{}, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("core: unknown timezone %q: %w", name, err)
	}
	return FixedZone(loc), nil
}

// Date is a calendar date with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the local date for the clock's current instant in the
// provider's current zone.
func Today(clock Clock, zone ZoneProvider) Date {
	return DateOf(clock.Now(), zone.Location())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("core: invalid date %q: %w", s, err)
	}
	return DateOf(t, time.UTC), nil
}

// String formats the date as zero-padded YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}
