package handlers

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func aliceRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "first_name", "last_name", "is_admin"}).
		AddRow(1, "alice", "alice@example.com", "hash", "Alice", "Smith", false)
}

func bookingDetailRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	start := time.Date(2031, 5, 20, 10, 0, 0, 0, businessHours.Location)
	return sqlmock.NewRows([]string{
		"id", "room_id", "user_id", "start_time", "end_time", "created_at", "total_cost_cents", "name", "username",
	}).AddRow(7, 3, 1, start, start.Add(2*time.Hour), start.Add(-24*time.Hour), 3000, "Studio A", "alice")
}

func TestCreateBookingEndpoint(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery("FROM users WHERE username").WillReturnRows(aliceRow())
	mock.ExpectQuery("FROM rooms").WillReturnRows(roomRows())
	mock.ExpectQuery("FROM room_equipment").
		WillReturnRows(sqlmock.NewRows([]string{"equipment_item"}))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"price_per_hour_cents"}).AddRow(1500))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	c, w := jsonContext(t, http.MethodPost, `{
		"roomId": 3,
		"startTime": "2031-05-20T10:00:00",
		"endTime": "2031-05-20T12:00:00"
	}`)
	asUser(c, 1, "alice", false)
	CreateBooking(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.Equal(t, float64(7), body["id"])
	require.Equal(t, "Studio A", body["roomName"])
	require.Equal(t, "2031-05-20T10:00:00", body["startTime"])
	require.Equal(t, float64(30), body["totalCost"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsMalformedTime(t *testing.T) {
	mock := swapDB(t)

	c, w := jsonContext(t, http.MethodPost, `{
		"roomId": 3,
		"startTime": "yesterday-ish",
		"endTime": "2031-05-20T12:00:00"
	}`)
	asUser(c, 1, "alice", false)
	CreateBooking(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid startTime")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingEndpointConflict(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery("FROM users WHERE username").WillReturnRows(aliceRow())
	mock.ExpectQuery("FROM rooms").WillReturnRows(roomRows())
	mock.ExpectQuery("FROM room_equipment").
		WillReturnRows(sqlmock.NewRows([]string{"equipment_item"}))
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"price_per_hour_cents"}).AddRow(1500))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	c, w := jsonContext(t, http.MethodPost, `{
		"roomId": 3,
		"startTime": "2031-05-20T10:00:00",
		"endTime": "2031-05-20T12:00:00"
	}`)
	asUser(c, 1, "alice", false)
	CreateBooking(c)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "already booked")
}

func TestMyBookingsEndpoint(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery("FROM users WHERE username").WillReturnRows(aliceRow())
	mock.ExpectQuery("ORDER BY b.start_time ASC").WillReturnRows(bookingDetailRows(t))

	c, w := jsonContext(t, http.MethodGet, "")
	asUser(c, 1, "alice", false)
	MyBookings(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"roomName":"Studio A"`)
}

func TestGetBookingEndpointNotFound(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery("FROM bookings b").WillReturnError(sql.ErrNoRows)

	c, w := jsonContext(t, http.MethodGet, "")
	asUser(c, 1, "alice", false)
	c.Params = gin.Params{{Key: "id", Value: "404"}}
	GetBookingByID(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelBookingEndpointAsOwner(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery("FROM bookings b").WillReturnRows(bookingDetailRows(t))
	mock.ExpectQuery("FROM users WHERE username").WillReturnRows(aliceRow())
	mock.ExpectExec("DELETE FROM bookings").WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := jsonContext(t, http.MethodDelete, "")
	asUser(c, 1, "alice", false)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	CancelBooking(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingEndpointForbidden(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery("FROM bookings b").WillReturnRows(bookingDetailRows(t))
	mock.ExpectQuery("FROM users WHERE username").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "first_name", "last_name", "is_admin"}).
			AddRow(2, "mallory", "m@example.com", "hash", "Mallory", "Jones", false))

	c, w := jsonContext(t, http.MethodDelete, "")
	asUser(c, 2, "mallory", false)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	CancelBooking(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAllBookingsEndpoint(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY b\.start_time ASC`).WillReturnRows(bookingDetailRows(t))

	c, w := jsonContext(t, http.MethodGet, "")
	asUser(c, 9, "boss", true)
	AllBookings(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.Equal(t, float64(1), body["totalElements"])
}

func TestBookingReceiptForbiddenForStranger(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery("FROM bookings b").WillReturnRows(bookingDetailRows(t))

	c, w := jsonContext(t, http.MethodGet, "")
	asUser(c, 2, "mallory", false)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	BookingReceipt(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingReceiptReturnsPDF(t *testing.T) {
	mock := swapDB(t)
	mock.ExpectQuery("FROM bookings b").WillReturnRows(bookingDetailRows(t))
	mock.ExpectQuery("FROM bookings b").WillReturnRows(bookingDetailRows(t))

	c, w := jsonContext(t, http.MethodGet, "")
	asUser(c, 1, "alice", false)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	BookingReceipt(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	require.True(t, len(w.Body.Bytes()) > 0)
}
