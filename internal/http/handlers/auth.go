package handlers

import (
	"net/http"
	"time"

	"rehearsalrooms/internal/http/middleware"
	"rehearsalrooms/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{}
	user, err := svc.Register(req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{}
	user, err := svc.Authenticate(req.UsernameOrEmail, req.Password)
	if err != nil {
		if err == services.ErrBadCredentials {
			RespondError(c, http.StatusUnauthorized, services.ErrBadCredentials.Error(), nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  toUserResponse(user),
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	svc := services.UserService{}
	user, err := svc.GetByUsername(middleware.GetUsername(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
