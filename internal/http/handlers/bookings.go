package handlers

import (
	"net/http"

	"rehearsalrooms/internal/http/middleware"
	"rehearsalrooms/internal/services"
	"rehearsalrooms/internal/utils"

	"github.com/gin-gonic/gin"
)

func bookingService() services.BookingService {
	return services.BookingService{Hours: businessHours}
}

type bookingRequest struct {
	RoomID    int64  `json:"roomId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req bookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	start, err := utils.ParseWallClock(req.StartTime, businessHours.Location)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid startTime", err)
		return
	}
	end, err := utils.ParseWallClock(req.EndTime, businessHours.Location)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid endTime", err)
		return
	}

	booking, err := bookingService().CreateBooking(req.RoomID, middleware.GetUsername(c), start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	booking, err := bookingService().GetBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

// GET /api/bookings/my-bookings — the caller's bookings starting after
// now-24h, soonest first.
func MyBookings(c *gin.Context) {
	list, err := bookingService().ListMyUpcomingBookings(middleware.GetUsername(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

// GET /api/bookings/all (admin)
func AllBookings(c *gin.Context) {
	page, size := ParsePagination(c)
	sortKey := c.DefaultQuery("sort", "startTime")

	list, total, err := bookingService().ListAllBookings(page, size, sortKey)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, PageResponse(toBookingResponses(list), page, size, total))
}

// GET /api/bookings/user/:userId (admin)
func BookingsByUser(c *gin.Context) {
	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}

	list, err := bookingService().ListBookingsForUser(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

// DELETE /api/bookings/:id — owner or admin; hard delete.
func CancelBooking(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	if err := bookingService().CancelBooking(id, middleware.GetUsername(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/bookings/:id/receipt — PDF confirmation for the owner or an admin.
func BookingReceipt(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	booking, err := bookingService().GetBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		RespondError(c, http.StatusForbidden, "you are not authorized to view this receipt", nil)
		return
	}

	svc := services.ReceiptService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
