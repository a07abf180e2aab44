package models

import "rehearsalrooms/internal/domain"

// Room is a rehearsal room managed by administrators. The admission engine
// reads it as an immutable snapshot: price changes never retroactively affect
// a booking priced during admission.
type Room struct {
	ID           int64
	Name         string
	Description  string
	Capacity     int
	Equipment    []string
	ImageURL     string
	PricePerHour domain.Cents
}
