package domain

import "time"

// ComputeTotalCost prices a booking: pricePerHour times the number of started
// hours. A 61 minute booking is charged as 2 hours. Zero or negative duration
// costs nothing.
func ComputeTotalCost(pricePerHour Cents, start, end time.Time) Cents {
	minutes := int64(end.Sub(start) / time.Minute)
	if minutes <= 0 {
		return 0
	}
	hours := minutes / 60
	if minutes%60 != 0 {
		hours++
	}
	return pricePerHour * Cents(hours)
}

// CheckBookingWindow validates a localized [start, end) interval against the
// operating window. Both instants must already be in the business zone.
//
// Same-day bookings must lie entirely within [open, close], bounds inclusive.
// Bookings that cross midnight need start >= open on the first day and
// end <= close on the last day, except an end of exactly 00:00, which is
// always permitted as "runs to the end of the first day".
func CheckBookingWindow(hours BusinessHours, start, end time.Time) error {
	startOfDay := MinuteOf(start)
	endOfDay := MinuteOf(end)

	sameDay := start.Year() == end.Year() && start.YearDay() == end.YearDay()

	if startOfDay < hours.Open {
		return ValidationError{
			Field: "startTime",
			Msg:   "booking cannot start before " + hours.Open.String(),
		}
	}

	if sameDay {
		if endOfDay > hours.Close {
			return ValidationError{
				Field: "endTime",
				Msg:   "booking must end by " + hours.Close.String(),
			}
		}
		return nil
	}

	// Ending exactly at midnight is the one allowed crossing of the close
	// boundary. Any other end on a later day must itself fall inside the
	// operating window: 01:00 is past close just as much as 23:30 is.
	if endOfDay == 0 {
		return nil
	}
	if endOfDay > hours.Close || endOfDay < hours.Open {
		return ValidationError{
			Field: "endTime",
			Msg:   "booking must end by " + hours.Close.String() + " on its last day",
		}
	}

	return nil
}
