package db

import (
	"database/sql"
	"fmt"
	"log"
)

// EnsureSchema creates the tables on first boot. Foreign keys on bookings are
// RESTRICT on purpose: a room or user with bookings cannot disappear from
// under them (the services enforce the same rule before ever reaching the
// constraint).
func EnsureSchema(database *sql.DB) error {
	if database == nil {
		return fmt.Errorf("db not available")
	}

	stmts := []struct {
		table string
		ddl   string
	}{
		{"users", `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(100) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_username (username),
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
		{"rooms", `
CREATE TABLE IF NOT EXISTS rooms (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	capacity INT NOT NULL,
	image_url VARCHAR(2048),
	price_per_hour_cents BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
		{"room_equipment", `
CREATE TABLE IF NOT EXISTS room_equipment (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_id BIGINT NOT NULL,
	equipment_item VARCHAR(255) NOT NULL,
	KEY idx_room (room_id),
	CONSTRAINT fk_equipment_room FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
		{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	created_at DATETIME NOT NULL,
	total_cost_cents BIGINT NOT NULL,
	KEY idx_room_interval (room_id, start_time, end_time),
	KEY idx_user_start (user_id, start_time),
	CONSTRAINT fk_booking_room FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE RESTRICT,
	CONSTRAINT fk_booking_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE RESTRICT
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`},
	}

	for _, s := range stmts {
		if HasTable(database, s.table) {
			continue
		}
		if _, err := database.Exec(s.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", s.table, err)
		}
		log.Printf("[SCHEMA] action=create_table table=%s", s.table)
	}

	return ensureColumns(database)
}

// ensureColumns backfills columns added after the tables first shipped, so a
// database created by an older build keeps working without manual ALTERs.
func ensureColumns(database *sql.DB) error {
	migrations := []struct {
		table, column, ddl string
	}{
		{"rooms", "image_url", `ALTER TABLE rooms ADD COLUMN image_url VARCHAR(2048)`},
		{"rooms", "description", `ALTER TABLE rooms ADD COLUMN description TEXT NOT NULL`},
	}

	for _, m := range migrations {
		if HasColumn(database, m.table, m.column) {
			continue
		}
		if _, err := database.Exec(m.ddl); err != nil {
			return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
		}
		log.Printf("[SCHEMA] action=add_column table=%s column=%s", m.table, m.column)
	}
	return nil
}
