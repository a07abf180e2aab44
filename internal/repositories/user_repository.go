package repositories

import (
	"database/sql"
	"fmt"

	"rehearsalrooms/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, username, email, password_hash, first_name, last_name, is_admin`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.IsAdmin,
	)
	return u, err
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, sql.ErrNoRows
	}
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id))
}

func (r UserRepository) GetByUsername(username string) (models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ? LIMIT 1`, username))
}

// GetByLogin resolves a login identifier that may be a username or an email.
func (r UserRepository) GetByLogin(identifier string) (models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ? LIMIT 1`, identifier, identifier))
}

func (r UserRepository) ExistsByID(id int64) (bool, error) {
	return r.exists(`SELECT COUNT(*) FROM users WHERE id = ?`, id)
}

func (r UserRepository) ExistsByUsername(username string) (bool, error) {
	return r.exists(`SELECT COUNT(*) FROM users WHERE username = ?`, username)
}

func (r UserRepository) ExistsByEmail(email string) (bool, error) {
	return r.exists(`SELECT COUNT(*) FROM users WHERE email = ?`, email)
}

func (r UserRepository) exists(query string, arg any) (bool, error) {
	var n int
	if err := r.DB.QueryRow(query, arg).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (username, email, password_hash, first_name, last_name, is_admin)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsAdmin)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

func (r UserRepository) List(page, size int) ([]models.User, int64, error) {
	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(`
		SELECT `+userColumns+`
		FROM users
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsAdmin); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
