package services

import (
	"database/sql"
	"errors"

	intconfig "rehearsalrooms/internal/config"
	"rehearsalrooms/internal/domain"
	"rehearsalrooms/internal/domain/models"
	"rehearsalrooms/internal/repositories"
	"rehearsalrooms/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned by Authenticate for both an unknown
// identifier and a wrong password, so callers cannot probe which one it was.
var ErrBadCredentials = errors.New("invalid username/email or password")

type UserService struct {
	UserRepo repositories.UserRepository
	DB       *sql.DB
}

func (s UserService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s UserService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

// Register creates a non-admin account after username/email uniqueness
// checks. The stored credential is a bcrypt hash; the plaintext never leaves
// this function.
func (s UserService) Register(username, email, password, firstName, lastName string) (models.User, error) {
	username = utils.TrimOrEmpty(username)
	email = utils.TrimOrEmpty(email)

	switch {
	case username == "":
		return models.User{}, domain.ValidationError{Field: "username", Msg: "username is required"}
	case email == "":
		return models.User{}, domain.ValidationError{Field: "email", Msg: "email is required"}
	case len(password) < 6:
		return models.User{}, domain.ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}

	taken, err := s.users().ExistsByUsername(username)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.User{}, domain.ConflictError{Resource: "username", Msg: "username is already taken"}
	}

	taken, err = s.users().ExistsByEmail(email)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.User{}, domain.ConflictError{Resource: "email", Msg: "email is already in use"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    utils.TrimOrEmpty(firstName),
		LastName:     utils.TrimOrEmpty(lastName),
	}
	user.ID, err = s.users().Create(user)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	utils.LogEvent("", "user", "register", "username="+username)
	return user, nil
}

// Authenticate verifies a username-or-email plus password pair.
func (s UserService) Authenticate(identifier, password string) (models.User, error) {
	user, err := s.users().GetByLogin(utils.TrimOrEmpty(identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrBadCredentials
		}
		return models.User{}, domain.InternalError{Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrBadCredentials
	}
	return user, nil
}

func (s UserService) GetByUsername(username string) (models.User, error) {
	user, err := s.users().GetByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}

func (s UserService) GetUser(id int64) (models.User, error) {
	user, err := s.users().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return user, nil
}

func (s UserService) ListUsers(page, size int) ([]models.User, int64, error) {
	list, total, err := s.users().List(page, size)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return list, total, nil
}
