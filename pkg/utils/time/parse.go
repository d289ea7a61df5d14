// ABOUTME: Time utilities for epoch timestamps and human-readable local dates
// ABOUTME: Converts Reddit created_utc values and formats attribution dates

package time

import (
	"math"
	"strings"
	"time"
)

// LocalDateLayout renders dates as M/D/YYYY
const LocalDateLayout = "1/2/2006"

// FromUnixSeconds converts a fractional epoch timestamp to a UTC time.
// Zero, negative and non-finite values yield the zero time.
func FromUnixSeconds(seconds float64) time.Time {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return time.Time{}
	}

	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
}

// FormatLocalDate formats t as M/D/YYYY in loc. A nil location means UTC.
func FormatLocalDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(LocalDateLayout)
}

// ParseLocation resolves a time zone name. An empty name or "UTC" gives UTC,
// "Local" gives the process zone, anything else goes through the tz database.
func ParseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "", strings.EqualFold(name, "UTC"):
		return time.UTC, nil
	case strings.EqualFold(name, "Local"):
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
