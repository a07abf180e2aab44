package services

import (
	"database/sql"
	"errors"

	intconfig "rehearsalrooms/internal/config"
	"rehearsalrooms/internal/domain"
	"rehearsalrooms/internal/domain/models"
	"rehearsalrooms/internal/repositories"
	"rehearsalrooms/internal/utils"
)

// RoomService manages the room catalog. Deleting a room with bookings is
// refused (restrict policy): cancel the bookings first.
type RoomService struct {
	RoomRepo    repositories.RoomRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
}

func (s RoomService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RoomService) rooms() repositories.RoomRepository {
	if s.RoomRepo.DB != nil {
		return s.RoomRepo
	}
	return repositories.RoomRepository{DB: s.db()}
}

func (s RoomService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func validateRoom(room *models.Room) error {
	room.Name = utils.NormalizeSpace(room.Name)
	room.Description = utils.TrimOrEmpty(room.Description)
	room.ImageURL = utils.TrimOrEmpty(room.ImageURL)
	room.Equipment = utils.CleanList(room.Equipment)

	if room.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if room.Capacity <= 0 {
		return domain.ValidationError{Field: "capacity", Msg: "capacity must be positive"}
	}
	if room.PricePerHour <= 0 {
		return domain.ValidationError{Field: "pricePerHour", Msg: "price per hour must be positive"}
	}
	return nil
}

func (s RoomService) CreateRoom(room models.Room) (models.Room, error) {
	if err := validateRoom(&room); err != nil {
		return models.Room{}, err
	}

	id, err := s.rooms().Create(room)
	if err != nil {
		return models.Room{}, domain.InternalError{Err: err}
	}
	room.ID = id
	return room, nil
}

func (s RoomService) GetRoom(id int64) (models.Room, error) {
	room, err := s.rooms().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, domain.NotFoundError{Resource: "room"}
		}
		return models.Room{}, domain.InternalError{Err: err}
	}
	return room, nil
}

func (s RoomService) ListRooms(page, size int) ([]models.Room, int64, error) {
	list, total, err := s.rooms().List(page, size)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return list, total, nil
}

func (s RoomService) UpdateRoom(id int64, room models.Room) (models.Room, error) {
	if err := validateRoom(&room); err != nil {
		return models.Room{}, err
	}

	if err := s.rooms().Update(id, room); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, domain.NotFoundError{Resource: "room"}
		}
		return models.Room{}, domain.InternalError{Err: err}
	}
	room.ID = id
	return room, nil
}

func (s RoomService) DeleteRoom(id int64) error {
	booked, err := s.bookings().CountByRoom(id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if booked > 0 {
		return domain.ConflictError{Resource: "room", Msg: "room has existing bookings"}
	}

	deleted, err := s.rooms().Delete(id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !deleted {
		return domain.NotFoundError{Resource: "room"}
	}
	return nil
}
