package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotel-frontdesk/internal/model"
)

const roomColumns = `id, room_number, price, beds_amount, bed_type`

// PostgresRooms is the PostgreSQL implementation of RoomRepository.
type PostgresRooms struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresRooms constructs a PostgresRooms repository.
func NewPostgresRooms(db *sql.DB, logger *zap.Logger) *PostgresRooms {
	return &PostgresRooms{db: db, logger: logger}
}

// Create inserts the room and assigns it a generated identifier.
func (r *PostgresRooms) Create(ctx context.Context, room *model.Room) error {
	if room.ID != "" {
		return fmt.Errorf("room already has id %q: %w", room.ID, ErrInvalidArgument)
	}
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (id, room_number, price, beds_amount, bed_type)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, room.Number, room.Price, room.NumBeds, string(room.BedType),
	)
	if err != nil {
		return fmt.Errorf("insert room %d: %w", room.Number, err)
	}
	room.ID = id
	return nil
}

// FindAll returns the whole catalog ordered by room number.
func (r *PostgresRooms) FindAll(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	return scanRooms(rows)
}

// FindByID returns a single room or ErrNotFound.
func (r *PostgresRooms) FindByID(ctx context.Context, id string) (*model.Room, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get room %s: %w", id, err)
	}
	return room, nil
}

// FindByNumber returns the room with the given catalog number or ErrNotFound.
func (r *PostgresRooms) FindByNumber(ctx context.Context, number int) (*model.Room, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE room_number = $1`, number)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room number %d: %w", number, ErrNotFound)
		}
		return nil, fmt.Errorf("get room number %d: %w", number, err)
	}
	return room, nil
}

// Update rewrites the room row in place.
func (r *PostgresRooms) Update(ctx context.Context, room *model.Room) error {
	if room.ID == "" {
		return fmt.Errorf("room has no id: %w", ErrInvalidArgument)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET room_number = $1, price = $2, beds_amount = $3, bed_type = $4
		 WHERE id = $5`,
		room.Number, room.Price, room.NumBeds, string(room.BedType), room.ID,
	)
	if err != nil {
		return fmt.Errorf("update room %s: %w", room.ID, err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("update room %s: %w", room.ID, err)
	} else if n == 0 {
		return fmt.Errorf("update room %s: %w", room.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the room row.
func (r *PostgresRooms) Delete(ctx context.Context, room *model.Room) error {
	if room.ID == "" {
		return fmt.Errorf("room has no id: %w", ErrInvalidArgument)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, room.ID)
	if err != nil {
		return fmt.Errorf("delete room %s: %w", room.ID, err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("delete room %s: %w", room.ID, err)
	} else if n == 0 {
		return fmt.Errorf("delete room %s: %w", room.ID, ErrNotFound)
	}
	return nil
}

// FindAvailable returns rooms with no open reservation whose expected stay
// overlaps [in, out). Checked-out reservations never block their room.
func (r *PostgresRooms) FindAvailable(ctx context.Context, in, out time.Time) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms
		 WHERE id NOT IN (
			SELECT room_id FROM reservations
			WHERE expected_check_in_date < $1
			  AND expected_check_out_date > $2
			  AND check_out_date IS NULL
		 )
		 ORDER BY room_number`,
		out, in,
	)
	if err != nil {
		return nil, fmt.Errorf("find available rooms: %w", err)
	}
	defer rows.Close()

	rooms, err := scanRooms(rows)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("availability query",
		zap.Time("in", in), zap.Time("out", out), zap.Int("rooms", len(rooms)))
	return rooms, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*model.Room, error) {
	var room model.Room
	var bedType string
	if err := row.Scan(&room.ID, &room.Number, &room.Price, &room.NumBeds, &bedType); err != nil {
		return nil, err
	}
	room.BedType = model.BedType(bedType)
	return &room, nil
}

func scanRooms(rows *sql.Rows) ([]model.Room, error) {
	var rooms []model.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}
