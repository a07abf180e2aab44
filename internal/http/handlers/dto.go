package handlers

import (
	"rehearsalrooms/internal/domain"
	"rehearsalrooms/internal/domain/models"
	"rehearsalrooms/internal/utils"
)

// Wire DTOs. Wall-clock fields are zone-naive strings in the business zone
// ("2006-01-02T15:04:05"), matching what the frontend stores and displays.

type bookingResponse struct {
	ID        int64        `json:"id"`
	RoomID    int64        `json:"roomId"`
	RoomName  string       `json:"roomName"`
	UserID    int64        `json:"userId"`
	Username  string       `json:"username"`
	StartTime string       `json:"startTime"`
	EndTime   string       `json:"endTime"`
	CreatedAt string       `json:"createdAt"`
	TotalCost domain.Cents `json:"totalCost"`
}

func toBookingResponse(b models.BookingDetail) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		RoomID:    b.RoomID,
		RoomName:  b.RoomName,
		UserID:    b.UserID,
		Username:  b.Username,
		StartTime: utils.FormatWallClock(b.StartTime),
		EndTime:   utils.FormatWallClock(b.EndTime),
		CreatedAt: utils.FormatWallClock(b.CreatedAt),
		TotalCost: b.TotalCost,
	}
}

func toBookingResponses(list []models.BookingDetail) []bookingResponse {
	out := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b))
	}
	return out
}

type roomResponse struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Capacity     int          `json:"capacity"`
	Equipment    []string     `json:"equipment"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	Description  string       `json:"description,omitempty"`
	PricePerHour domain.Cents `json:"pricePerHour"`
}

func toRoomResponse(r models.Room) roomResponse {
	equipment := r.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return roomResponse{
		ID:           r.ID,
		Name:         r.Name,
		Capacity:     r.Capacity,
		Equipment:    equipment,
		ImageURL:     r.ImageURL,
		Description:  r.Description,
		PricePerHour: r.PricePerHour,
	}
}

func toRoomResponses(list []models.Room) []roomResponse {
	out := make([]roomResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRoomResponse(r))
	}
	return out
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `json:"isAdmin"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
	}
}

func toUserResponses(list []models.User) []userResponse {
	out := make([]userResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out
}
