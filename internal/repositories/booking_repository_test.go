package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return db, mock
}

func TestBookingGetByIDRejectsNonPositiveID(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	repo := BookingRepository{DB: db}
	if _, err := repo.GetByID(0); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query may run for id 0: %v", err)
	}
}

func TestCountOverlappingArgOrder(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	// existing.start < new.end AND existing.end > new.start, so the bound
	// parameters are end first, then start.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(int64(3), "2026-03-10 12:00:00", "2026-03-10 10:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	repo := BookingRepository{DB: db}
	n, err := repo.CountOverlappingTx(tx, 3, start, end)
	if err != nil {
		t.Fatalf("count overlapping: %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d overlaps", n)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAllFallsBackToDefaultSort(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY b\.start_time ASC`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "room_id", "user_id", "start_time", "end_time", "created_at", "total_cost_cents", "name", "username",
		}).AddRow(1, 3, 1,
			time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
			3000, "Studio A", "alice"))

	repo := BookingRepository{DB: db}
	list, total, err := repo.ListAll(0, 10, "start_time; DROP TABLE bookings")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("total=%d len=%d", total, len(list))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAllSortsByCreatedAt(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY b\.created_at ASC`).
		WithArgs(25, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "room_id", "user_id", "start_time", "end_time", "created_at", "total_cost_cents", "name", "username",
		}))

	repo := BookingRepository{DB: db}
	list, _, err := repo.ListAll(2, 25, "createdAt")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty page, got %d", len(list))
	}
}

func TestBookingDeleteReportsMiss(t *testing.T) {
	db, mock := newMock(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	deleted, err := repo.Delete(99)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted {
		t.Fatalf("expected miss for unknown id")
	}
}
