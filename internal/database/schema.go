package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

const roomsTable = `
CREATE TABLE IF NOT EXISTS rooms (
	id UUID PRIMARY KEY,
	room_number INT NOT NULL UNIQUE,
	price INT NOT NULL,
	beds_amount INT NOT NULL,
	bed_type VARCHAR(16) NOT NULL
)`

const reservationsTable = `
CREATE TABLE IF NOT EXISTS reservations (
	id UUID PRIMARY KEY,
	guest_name VARCHAR(100) NOT NULL,
	email VARCHAR(100) NOT NULL,
	address VARCHAR(100) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	details VARCHAR(1000) NOT NULL,
	expected_check_in_date DATE NOT NULL,
	expected_check_out_date DATE NOT NULL,
	check_in_date DATE,
	check_out_date DATE,
	guests_number INT NOT NULL,
	room_id UUID NOT NULL REFERENCES rooms (id)
)`

// Bootstrap creates the rooms and reservations tables when absent. It is
// idempotent and safe to run on every startup.
func Bootstrap(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	for _, stmt := range []string{roomsTable, reservationsTable} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	logger.Info("schema ready")
	return nil
}
