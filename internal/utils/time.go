package utils

import (
	"strings"
	"time"
)

const (
	// LayoutWallClock is the zone-naive wall-clock format used on the API and
	// in the database. Booking times carry no offset; they are always
	// interpreted in the business time zone.
	LayoutWallClock = "2006-01-02T15:04:05"

	layoutDateTime = "2006-01-02 15:04:05"
)

// ParseWallClock parses a wall-clock timestamp in the given zone. RFC 3339
// input with an explicit offset is accepted too and converted into the zone.
func ParseWallClock(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.ParseInLocation(LayoutWallClock, s, loc)
}

// FormatWallClock formats a time as a zone-naive wall-clock string.
func FormatWallClock(t time.Time) string {
	return t.Format(LayoutWallClock)
}

// FormatDateTime formats a time for SQL DATETIME parameters.
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}
