package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotel-frontdesk/internal/model"
)

const reservationSelect = `
SELECT r.id, r.guest_name, r.email, r.address, r.phone, r.details,
       r.expected_check_in_date, r.expected_check_out_date,
       r.check_in_date, r.check_out_date, r.guests_number,
       r.room_id, rm.room_number, rm.price, rm.beds_amount, rm.bed_type
FROM reservations r
LEFT JOIN rooms rm ON rm.id = r.room_id`

// PostgresReservations is the PostgreSQL implementation of
// ReservationRepository.
type PostgresReservations struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresReservations constructs a PostgresReservations repository.
func NewPostgresReservations(db *sql.DB, logger *zap.Logger) *PostgresReservations {
	return &PostgresReservations{db: db, logger: logger}
}

// Create inserts the reservation and assigns it a generated identifier.
// The reservation must reference a persisted room.
func (r *PostgresReservations) Create(ctx context.Context, res *model.Reservation) error {
	if res.ID != "" {
		return fmt.Errorf("reservation already has id %q: %w", res.ID, ErrInvalidArgument)
	}
	if res.Room == nil || res.Room.ID == "" {
		return fmt.Errorf("reservation has no persisted room: %w", ErrInvalidArgument)
	}
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reservations (id, guest_name, email, address, phone, details,
			expected_check_in_date, expected_check_out_date, check_in_date, check_out_date,
			guests_number, room_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		id, res.Guest.Name, res.Guest.Email, res.Guest.Address, res.Guest.Phone, res.Guest.Details,
		res.ExpectedCheckIn, res.ExpectedCheckOut, res.ActualCheckIn, res.ActualCheckOut,
		res.NumGuests, res.Room.ID,
	)
	if err != nil {
		return fmt.Errorf("insert reservation for %s: %w", res.Guest.Name, err)
	}
	res.ID = id
	return nil
}

// FindAll returns the whole ledger with rooms attached.
func (r *PostgresReservations) FindAll(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, reservationSelect)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// FindByID returns a single reservation or ErrNotFound.
func (r *PostgresReservations) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx, reservationSelect+` WHERE r.id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get reservation %s: %w", id, err)
	}
	return res, nil
}

// Update rewrites the reservation row in place, including its room
// reference and both actual dates.
func (r *PostgresReservations) Update(ctx context.Context, res *model.Reservation) error {
	if res.ID == "" {
		return fmt.Errorf("reservation has no id: %w", ErrInvalidArgument)
	}
	if res.Room == nil || res.Room.ID == "" {
		return fmt.Errorf("reservation has no persisted room: %w", ErrInvalidArgument)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET guest_name = $1, email = $2, address = $3, phone = $4,
			details = $5, expected_check_in_date = $6, expected_check_out_date = $7,
			check_in_date = $8, check_out_date = $9, guests_number = $10, room_id = $11
		 WHERE id = $12`,
		res.Guest.Name, res.Guest.Email, res.Guest.Address, res.Guest.Phone, res.Guest.Details,
		res.ExpectedCheckIn, res.ExpectedCheckOut, res.ActualCheckIn, res.ActualCheckOut,
		res.NumGuests, res.Room.ID, res.ID,
	)
	if err != nil {
		return fmt.Errorf("update reservation %s: %w", res.ID, err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("update reservation %s: %w", res.ID, err)
	} else if n == 0 {
		return fmt.Errorf("update reservation %s: %w", res.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the reservation row.
func (r *PostgresReservations) Delete(ctx context.Context, res *model.Reservation) error {
	if res.ID == "" {
		return fmt.Errorf("reservation has no id: %w", ErrInvalidArgument)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, res.ID)
	if err != nil {
		return fmt.Errorf("delete reservation %s: %w", res.ID, err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("delete reservation %s: %w", res.ID, err)
	} else if n == 0 {
		return fmt.Errorf("delete reservation %s: %w", res.ID, ErrNotFound)
	}
	return nil
}

// Filter searches the ledger by guest name substring and exact room
// number. Criteria combine with AND; absent criteria drop out, so no
// criteria at all returns the full list.
func (r *PostgresReservations) Filter(ctx context.Context, name string, roomNumber *int) ([]model.Reservation, error) {
	query := reservationSelect
	var args []any
	var conds []string
	if name != "" {
		args = append(args, "%"+strings.ToLower(name)+"%")
		conds = append(conds, fmt.Sprintf("LOWER(r.guest_name) LIKE $%d", len(args)))
	}
	if roomNumber != nil {
		args = append(args, *roomNumber)
		conds = append(conds, fmt.Sprintf("rm.room_number = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter reservations: %w", err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("filter query",
		zap.String("name", name), zap.Int("matches", len(reservations)))
	return reservations, nil
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var checkIn, checkOut sql.NullTime
	var roomID, bedType sql.NullString
	var roomNumber, price, numBeds sql.NullInt64

	err := row.Scan(
		&res.ID, &res.Guest.Name, &res.Guest.Email, &res.Guest.Address,
		&res.Guest.Phone, &res.Guest.Details,
		&res.ExpectedCheckIn, &res.ExpectedCheckOut,
		&checkIn, &checkOut, &res.NumGuests,
		&roomID, &roomNumber, &price, &numBeds, &bedType,
	)
	if err != nil {
		return nil, err
	}

	if checkIn.Valid {
		t := checkIn.Time
		res.ActualCheckIn = &t
	}
	if checkOut.Valid {
		t := checkOut.Time
		res.ActualCheckOut = &t
	}
	if roomID.Valid {
		res.Room = &model.Room{
			ID:      roomID.String,
			Number:  int(roomNumber.Int64),
			Price:   int(price.Int64),
			NumBeds: int(numBeds.Int64),
			BedType: model.BedType(bedType.String),
		}
	}
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	var reservations []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}
