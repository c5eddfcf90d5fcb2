package timeutil

import (
	"time"
)

// Belgrade is the Central European Time location used for invoice timestamps
var Belgrade *time.Location

func init() {
	var err error
	Belgrade, err = time.LoadLocation("Europe/Belgrade")
	if err != nil {
		// Fallback: CET without DST if tzdata is unavailable
		Belgrade = time.FixedZone("CET", 60*60)
	}
}

// Now returns the current time in Belgrade local time
func Now() time.Time {
	return time.Now().In(Belgrade)
}

// ToLocal converts any time to Belgrade local time
func ToLocal(t time.Time) time.Time {
	return t.In(Belgrade)
}

// ParseLocal parses a time string in Belgrade local time
func ParseLocal(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Belgrade)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns 00:00:00 in Belgrade local time for the given time
func StartOfDay(t time.Time) time.Time {
	lt := t.In(Belgrade)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, Belgrade)
}

// Common layouts
const (
	DateLayout        = "2006-01-02"
	DateTimeLayout    = "2006-01-02 15:04:05"
	DisplayLayout     = "02.01.2006 15:04"
	DisplayDateLayout = "02.01.2006"
)
