package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"rehearsalrooms/internal/domain"
	"rehearsalrooms/internal/domain/models"
	"rehearsalrooms/internal/utils"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `
	b.id, b.room_id, b.user_id, b.start_time, b.end_time, b.created_at, b.total_cost_cents,
	r.name, u.username`

const bookingJoin = `
	FROM bookings b
	JOIN rooms r ON r.id = b.room_id
	JOIN users u ON u.id = b.user_id`

// Sortable columns for the admin listing. Anything else falls back to the
// default so callers cannot inject ORDER BY fragments.
var bookingSortColumns = map[string]string{
	"id":        "b.id",
	"startTime": "b.start_time",
	"createdAt": "b.created_at",
}

func scanBookingDetail(scan func(dest ...any) error) (models.BookingDetail, error) {
	var (
		b     models.BookingDetail
		cents int64
	)
	err := scan(
		&b.ID,
		&b.RoomID,
		&b.UserID,
		&b.StartTime,
		&b.EndTime,
		&b.CreatedAt,
		&cents,
		&b.RoomName,
		&b.Username,
	)
	b.TotalCost = domain.Cents(cents)
	return b, err
}

func (r BookingRepository) GetByID(id int64) (models.BookingDetail, error) {
	if id <= 0 {
		return models.BookingDetail{}, sql.ErrNoRows
	}
	row := r.DB.QueryRow(`SELECT `+bookingColumns+bookingJoin+` WHERE b.id = ? LIMIT 1`, id)
	return scanBookingDetail(row.Scan)
}

func (r BookingRepository) ListByUser(userID int64) ([]models.BookingDetail, error) {
	rows, err := r.DB.Query(`SELECT `+bookingColumns+bookingJoin+` WHERE b.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListUpcomingByUser returns a user's bookings starting after the cutoff,
// soonest first. Callers pass now-24h so bookings already in progress stay
// visible for a day.
func (r BookingRepository) ListUpcomingByUser(userID int64, after time.Time) ([]models.BookingDetail, error) {
	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+bookingJoin+`
		WHERE b.user_id = ? AND b.start_time > ?
		ORDER BY b.start_time ASC
	`, userID, utils.FormatDateTime(after))
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r BookingRepository) ListAll(page, size int, sortKey string) ([]models.BookingDetail, int64, error) {
	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy, ok := bookingSortColumns[sortKey]
	if !ok {
		orderBy = bookingSortColumns["startTime"]
	}

	rows, err := r.DB.Query(`
		SELECT `+bookingColumns+bookingJoin+`
		ORDER BY `+orderBy+` ASC
		LIMIT ? OFFSET ?
	`, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	list, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func collectBookings(rows *sql.Rows) ([]models.BookingDetail, error) {
	defer rows.Close()
	list := []models.BookingDetail{}
	for rows.Next() {
		b, err := scanBookingDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r BookingRepository) CountByRoom(roomID int64) (int64, error) {
	var n int64
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID).Scan(&n)
	return n, err
}

func (r BookingRepository) Delete(id int64) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// LockRoomTx takes the room row lock that serializes concurrent admissions
// for one room, and returns the price snapshot read under that lock.
func (r BookingRepository) LockRoomTx(tx *sql.Tx, roomID int64) (domain.Cents, error) {
	var cents int64
	err := tx.QueryRow(`SELECT price_per_hour_cents FROM rooms WHERE id = ? FOR UPDATE`, roomID).Scan(&cents)
	if err != nil {
		return 0, err
	}
	return domain.Cents(cents), nil
}

// CountOverlappingTx counts bookings on the room whose [start, end) interval
// overlaps the candidate: existing.start < new.end AND existing.end > new.start.
// Must run inside the transaction holding the room lock.
func (r BookingRepository) CountOverlappingTx(tx *sql.Tx, roomID int64, start, end time.Time) (int64, error) {
	var n int64
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM bookings
		WHERE room_id = ? AND start_time < ? AND end_time > ?
	`, roomID, utils.FormatDateTime(end), utils.FormatDateTime(start)).Scan(&n)
	return n, err
}

// InsertTx persists an accepted booking inside the admission transaction.
func (r BookingRepository) InsertTx(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings (room_id, user_id, start_time, end_time, created_at, total_cost_cents)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		b.RoomID,
		b.UserID,
		utils.FormatDateTime(b.StartTime),
		utils.FormatDateTime(b.EndTime),
		utils.FormatDateTime(b.CreatedAt),
		int64(b.TotalCost),
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	return res.LastInsertId()
}
