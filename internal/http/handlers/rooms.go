package handlers

import (
	"net/http"

	"rehearsalrooms/internal/domain"
	"rehearsalrooms/internal/domain/models"
	"rehearsalrooms/internal/services"

	"github.com/gin-gonic/gin"
)

type roomRequest struct {
	Name         string       `json:"name"`
	Capacity     int          `json:"capacity"`
	Equipment    []string     `json:"equipment"`
	ImageURL     string       `json:"imageUrl"`
	Description  string       `json:"description"`
	PricePerHour domain.Cents `json:"pricePerHour"`
}

func (r roomRequest) toModel() models.Room {
	return models.Room{
		Name:         r.Name,
		Capacity:     r.Capacity,
		Equipment:    r.Equipment,
		ImageURL:     r.ImageURL,
		Description:  r.Description,
		PricePerHour: r.PricePerHour,
	}
}

// GET /api/rooms
func ListRooms(c *gin.Context) {
	page, size := ParsePagination(c)

	svc := services.RoomService{}
	rooms, total, err := svc.ListRooms(page, size)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, PageResponse(toRoomResponses(rooms), page, size, total))
}

// GET /api/rooms/:id
func GetRoomByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	svc := services.RoomService{}
	room, err := svc.GetRoom(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

// POST /api/rooms (admin)
func CreateRoom(c *gin.Context) {
	var req roomRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.RoomService{}
	room, err := svc.CreateRoom(req.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRoomResponse(room))
}

// PUT /api/rooms/:id (admin)
func UpdateRoom(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req roomRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.RoomService{}
	room, err := svc.UpdateRoom(id, req.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

// DELETE /api/rooms/:id (admin). Refused while the room still has bookings.
func DeleteRoom(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	svc := services.RoomService{}
	if err := svc.DeleteRoom(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
