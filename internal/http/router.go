package api

import (
	"log"
	stdhttp "net/http"

	intconfig "rehearsalrooms/internal/config"
	h "rehearsalrooms/internal/http/handlers"
	"rehearsalrooms/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authRequired := middleware.Authenticate([]byte(env.JWTSecret))
	adminOnly := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", authRequired, h.Me)

		// Rooms: reads are public, writes are admin-only.
		rooms := api.Group("/rooms")
		rooms.GET("", h.ListRooms)
		rooms.GET("/:id", h.GetRoomByID)
		rooms.POST("", authRequired, adminOnly, h.CreateRoom)
		rooms.PUT("/:id", authRequired, adminOnly, h.UpdateRoom)
		rooms.DELETE("/:id", authRequired, adminOnly, h.DeleteRoom)

		// Bookings
		bookings := api.Group("/bookings", authRequired)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/my-bookings", h.MyBookings)
		bookings.GET("/all", adminOnly, h.AllBookings)
		bookings.GET("/user/:userId", adminOnly, h.BookingsByUser)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.GET("/:id/receipt", h.BookingReceipt)
		bookings.DELETE("/:id", h.CancelBooking)

		// User directory (admin)
		users := api.Group("/users", authRequired, adminOnly)
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
	}

	h.SetRouter(r)
	return r
}
