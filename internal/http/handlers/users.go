package handlers

import (
	"net/http"

	"rehearsalrooms/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/users (admin)
func GetUsers(c *gin.Context) {
	page, size := ParsePagination(c)

	svc := services.UserService{}
	users, total, err := svc.ListUsers(page, size)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, PageResponse(toUserResponses(users), page, size, total))
}

// GET /api/users/:id (admin)
func GetUserByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	svc := services.UserService{}
	user, err := svc.GetUser(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
