package models

// User is an account in the user directory. PasswordHash is opaque to
// everything except the auth handlers.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsAdmin      bool
}
