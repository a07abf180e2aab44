package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Cents is a fixed-point currency amount with 2 decimal places, stored as an
// integer number of cents. JSON renders it as a plain decimal number so API
// clients see e.g. 19.99 for 1999 cents.
type Cents int64

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = Cents(math.Round(f * 100))
	return nil
}

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" into minutes since midnight.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MinuteOf extracts the time-of-day of an instant, ignoring its date.
func MinuteOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// BusinessHours is the operating window all rooms share, interpreted in one
// fixed business time zone regardless of caller locale.
type BusinessHours struct {
	Open     TimeOfDay
	Close    TimeOfDay
	Location *time.Location
}
