package handlers

import (
	"time"

	intconfig "rehearsalrooms/internal/config"
	"rehearsalrooms/internal/domain"
)

var (
	jwtSecret = []byte("super-secret-key-change-me")

	businessHours = domain.BusinessHours{
		Open:     10 * 60,
		Close:    23 * 60,
		Location: time.Local,
	}
)

// Configure injects process configuration into the handler package. Called
// once from the router before any route is mounted.
func Configure(env intconfig.Env) {
	jwtSecret = []byte(env.JWTSecret)
	businessHours = env.Hours()
}
