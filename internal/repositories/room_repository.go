package repositories

import (
	"database/sql"
	"fmt"

	intdb "rehearsalrooms/internal/db"
	"rehearsalrooms/internal/domain"
	"rehearsalrooms/internal/domain/models"
)

type RoomRepository struct {
	DB *sql.DB
}

func (r RoomRepository) GetByID(id int64) (models.Room, error) {
	if id <= 0 {
		return models.Room{}, sql.ErrNoRows
	}

	var (
		room     models.Room
		imageURL sql.NullString
		price    int64
	)
	err := r.DB.QueryRow(`
		SELECT id, name, description, capacity, image_url, price_per_hour_cents
		FROM rooms
		WHERE id = ? LIMIT 1
	`, id).Scan(&room.ID, &room.Name, &room.Description, &room.Capacity, &imageURL, &price)
	if err != nil {
		return models.Room{}, err
	}
	room.ImageURL = imageURL.String
	room.PricePerHour = domain.Cents(price)

	room.Equipment, err = r.equipmentFor(id)
	if err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (r RoomRepository) equipmentFor(roomID int64) ([]string, error) {
	rows, err := r.DB.Query(`SELECT equipment_item FROM room_equipment WHERE room_id = ?`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []string{}
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r RoomRepository) List(page, size int) ([]models.Room, int64, error) {
	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM rooms`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(`
		SELECT id, name, description, capacity, image_url, price_per_hour_cents
		FROM rooms
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	roomList := []models.Room{}
	for rows.Next() {
		var (
			room     models.Room
			imageURL sql.NullString
			price    int64
		)
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.Capacity, &imageURL, &price); err != nil {
			return nil, 0, err
		}
		room.ImageURL = imageURL.String
		room.PricePerHour = domain.Cents(price)
		roomList = append(roomList, room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range roomList {
		eq, err := r.equipmentFor(roomList[i].ID)
		if err != nil {
			return nil, 0, err
		}
		roomList[i].Equipment = eq
	}
	return roomList, total, nil
}

// Create inserts the room and its equipment rows in one transaction.
func (r RoomRepository) Create(room models.Room) (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO rooms (name, description, capacity, image_url, price_per_hour_cents)
		VALUES (?, ?, ?, ?, ?)
	`, room.Name, room.Description, room.Capacity, intdb.NullIfEmpty(room.ImageURL), int64(room.PricePerHour))
	if err != nil {
		return 0, fmt.Errorf("insert room: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertEquipment(tx, id, room.Equipment); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// Update replaces the room fields and its full equipment list.
func (r RoomRepository) Update(id int64, room models.Room) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE rooms
		SET name = ?, description = ?, capacity = ?, image_url = ?, price_per_hour_cents = ?
		WHERE id = ?
	`, room.Name, room.Description, room.Capacity, intdb.NullIfEmpty(room.ImageURL), int64(room.PricePerHour), id)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// UPDATE with identical values reports 0 affected rows on MySQL, so
		// double-check existence before calling it not found.
		var n int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM rooms WHERE id = ?`, id).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
	}

	if _, err := tx.Exec(`DELETE FROM room_equipment WHERE room_id = ?`, id); err != nil {
		return err
	}
	if err := insertEquipment(tx, id, room.Equipment); err != nil {
		return err
	}
	return tx.Commit()
}

func insertEquipment(tx *sql.Tx, roomID int64, items []string) error {
	for _, item := range items {
		if _, err := tx.Exec(`INSERT INTO room_equipment (room_id, equipment_item) VALUES (?, ?)`, roomID, item); err != nil {
			return fmt.Errorf("insert equipment: %w", err)
		}
	}
	return nil
}

func (r RoomRepository) Delete(id int64) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
