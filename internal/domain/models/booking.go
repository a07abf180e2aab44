package models

import (
	"time"

	"rehearsalrooms/internal/domain"
)

// Booking is a persisted reservation of a room for a time interval. Times are
// wall-clock values in the business zone; the interval is half-open
// [StartTime, EndTime). Room and User are referenced by id only, resolution
// goes through the repositories.
type Booking struct {
	ID        int64
	RoomID    int64
	UserID    int64
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	TotalCost domain.Cents
}

// BookingDetail is a booking joined with the display fields of its room and
// owner, the shape the API returns.
type BookingDetail struct {
	Booking
	RoomName string
	Username string
}
