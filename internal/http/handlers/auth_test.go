package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterCreatesUser(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE username`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(5, 1))

	c, w := jsonContext(t, http.MethodPost, `{
		"username": "alice",
		"email": "alice@example.com",
		"password": "secret123",
		"firstName": "Alice",
		"lastName": "Smith"
	}`)
	Register(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.Equal(t, float64(5), body["id"])
	require.Equal(t, "alice", body["username"])
	require.Equal(t, false, body["isAdmin"])
	require.NotContains(t, w.Body.String(), "password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE username`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	c, w := jsonContext(t, http.MethodPost, `{
		"username": "alice",
		"email": "alice@example.com",
		"password": "secret123"
	}`)
	Register(c)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "username is already taken")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	mock := swapDB(t)

	c, w := jsonContext(t, http.MethodPost, `{
		"username": "alice",
		"email": "alice@example.com",
		"password": "abc"
	}`)
	Register(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func loginRow(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "first_name", "last_name", "is_admin"}).
		AddRow(1, "alice", "alice@example.com", string(hash), "Alice", "Smith", false)
}

func TestLoginIssuesToken(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`FROM users WHERE username = \? OR email = \?`).
		WillReturnRows(loginRow(t, "secret123"))

	c, w := jsonContext(t, http.MethodPost, `{
		"usernameOrEmail": "alice",
		"password": "secret123"
	}`)
	Login(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "alice", user["username"])
}

func TestLoginWrongPassword(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`FROM users WHERE username = \? OR email = \?`).
		WillReturnRows(loginRow(t, "other-password"))

	c, w := jsonContext(t, http.MethodPost, `{
		"usernameOrEmail": "alice",
		"password": "secret123"
	}`)
	Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`FROM users WHERE username = \? OR email = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "first_name", "last_name", "is_admin"}))

	c, w := jsonContext(t, http.MethodPost, `{
		"usernameOrEmail": "nobody",
		"password": "whatever"
	}`)
	Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`FROM users WHERE username = \?`).
		WillReturnRows(loginRow(t, "secret123"))

	c, w := jsonContext(t, http.MethodGet, "")
	asUser(c, 1, "alice", false)
	Me(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "alice", body["username"])
	require.Equal(t, "alice@example.com", body["email"])
}
