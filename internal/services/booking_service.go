package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "rehearsalrooms/internal/config"
	"rehearsalrooms/internal/domain"
	"rehearsalrooms/internal/domain/models"
	"rehearsalrooms/internal/repositories"
	"rehearsalrooms/internal/utils"
)

// upcomingGrace keeps bookings visible in "my bookings" for a day after they
// start, so an in-progress same-day booking does not vanish from the list.
const upcomingGrace = 24 * time.Hour

// BookingService is the admission engine: it decides whether a reservation
// may be created, prices it, and guarantees no two accepted bookings for the
// same room overlap. The overlap check and insert run in one transaction
// holding the room row lock, so concurrent requests for the same room are
// serialized (the second one sees the first one's row and gets a conflict).
type BookingService struct {
	BookingRepo repositories.BookingRepository
	RoomRepo    repositories.RoomRepository
	UserRepo    repositories.UserRepository
	DB          *sql.DB

	Hours domain.BusinessHours

	// Now is injectable for tests; defaults to the wall clock.
	Now func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) rooms() repositories.RoomRepository {
	if s.RoomRepo.DB != nil {
		return s.RoomRepo
	}
	return repositories.RoomRepository{DB: s.db()}
}

func (s BookingService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.Hours.Location)
	}
	return time.Now().In(s.Hours.Location)
}

// CreateBooking validates and persists a reservation for the authenticated
// user. Rules are checked in order, first violation wins:
// user exists, room exists, end after start, start in the future, interval
// inside business hours, no overlapping booking on the room.
func (s BookingService) CreateBooking(roomID int64, username string, start, end time.Time) (models.BookingDetail, error) {
	user, err := s.users().GetByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "user"}
		}
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}

	room, err := s.rooms().GetByID(roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "room"}
		}
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}

	// All wall-clock rules apply in the business zone, not the caller's.
	localStart := start.In(s.Hours.Location)
	localEnd := end.In(s.Hours.Location)

	if !localEnd.After(localStart) {
		return models.BookingDetail{}, domain.ValidationError{
			Field: "endTime",
			Msg:   "end time must be after start time",
		}
	}
	if !localStart.After(s.now()) {
		return models.BookingDetail{}, domain.ValidationError{
			Field: "startTime",
			Msg:   "booking start time must be in the future",
		}
	}
	if err := domain.CheckBookingWindow(s.Hours, localStart, localEnd); err != nil {
		return models.BookingDetail{}, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	// Price is re-read under the lock so a concurrent price change cannot
	// split the admission in two.
	price, err := s.bookings().LockRoomTx(tx, room.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "room"}
		}
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}

	overlapping, err := s.bookings().CountOverlappingTx(tx, room.ID, localStart, localEnd)
	if err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	if overlapping > 0 {
		return models.BookingDetail{}, domain.ConflictError{
			Resource: "booking",
			Msg:      "the room is already booked for the selected time slot",
		}
	}

	booking := models.Booking{
		RoomID:    room.ID,
		UserID:    user.ID,
		StartTime: localStart,
		EndTime:   localEnd,
		CreatedAt: s.now(),
		TotalCost: domain.ComputeTotalCost(price, localStart, localEnd),
	}

	id, err := s.bookings().InsertTx(tx, booking)
	if err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}

	booking.ID = id
	utils.LogEvent("", "booking", "create",
		fmt.Sprintf("booking_id=%d room_id=%d start=%s", id, room.ID, utils.FormatDateTime(booking.StartTime)))
	return models.BookingDetail{
		Booking:  booking,
		RoomName: room.Name,
		Username: user.Username,
	}, nil
}

func (s BookingService) GetBooking(bookingID int64) (models.BookingDetail, error) {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetail{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.BookingDetail{}, domain.InternalError{Err: err}
	}
	return booking, nil
}

// ListBookingsForUser returns every booking owned by the user, unordered.
// Admin-facing.
func (s BookingService) ListBookingsForUser(userID int64) ([]models.BookingDetail, error) {
	exists, err := s.users().ExistsByID(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if !exists {
		return nil, domain.NotFoundError{Resource: "user"}
	}

	list, err := s.bookings().ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// ListMyUpcomingBookings returns the caller's bookings starting after
// now-24h, soonest first.
func (s BookingService) ListMyUpcomingBookings(username string) ([]models.BookingDetail, error) {
	user, err := s.users().GetByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "user"}
		}
		return nil, domain.InternalError{Err: err}
	}

	list, err := s.bookings().ListUpcomingByUser(user.ID, s.now().Add(-upcomingGrace))
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (s BookingService) ListAllBookings(page, size int, sortKey string) ([]models.BookingDetail, int64, error) {
	list, total, err := s.bookings().ListAll(page, size, sortKey)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return list, total, nil
}

// CancelBooking hard-deletes a booking. Only the owner or an administrator
// may cancel; there is no soft-cancel state.
func (s BookingService) CancelBooking(bookingID int64, username string) error {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "booking"}
		}
		return domain.InternalError{Err: err}
	}

	requester, err := s.users().GetByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "user"}
		}
		return domain.InternalError{Err: err}
	}

	if booking.UserID != requester.ID && !requester.IsAdmin {
		return domain.ForbiddenError{Msg: "you are not authorized to cancel this booking"}
	}

	deleted, err := s.bookings().Delete(bookingID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !deleted {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
