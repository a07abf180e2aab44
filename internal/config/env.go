package config

import (
	"log"
	"os"
	"strings"
	"time"

	"rehearsalrooms/internal/domain"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	// Business calendar for booking admission. All rooms share one
	// operating window interpreted in a single fixed time zone.
	OpenTime  domain.TimeOfDay
	CloseTime domain.TimeOfDay
	Timezone  string
	Location  *time.Location
}

func LoadEnv() Env {
	env := Env{
		AppAddr:   getenv("APP_ADDR", ":8080"),
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:    getenv("DB_USER", "root"),
		DBPass:    strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:    getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:    getenv("DB_NAME", "rehearsal_rooms"),
		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),
		Timezone:  getenv("BOOKING_TIMEZONE", "Europe/Madrid"),
	}

	var err error
	env.OpenTime, err = domain.ParseTimeOfDay(getenv("BOOKING_OPEN_TIME", "10:00"))
	if err != nil {
		log.Fatalf("invalid BOOKING_OPEN_TIME: %v", err)
	}
	env.CloseTime, err = domain.ParseTimeOfDay(getenv("BOOKING_CLOSE_TIME", "23:00"))
	if err != nil {
		log.Fatalf("invalid BOOKING_CLOSE_TIME: %v", err)
	}

	env.Location, err = time.LoadLocation(env.Timezone)
	if err != nil {
		log.Fatalf("invalid BOOKING_TIMEZONE %q: %v", env.Timezone, err)
	}

	return env
}

// Hours bundles the configured booking window for the admission engine.
func (e Env) Hours() domain.BusinessHours {
	return domain.BusinessHours{
		Open:     e.OpenTime,
		Close:    e.CloseTime,
		Location: e.Location,
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
