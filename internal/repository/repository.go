// Package repository implements durable storage for rooms and
// reservations, with a PostgreSQL backend and an in-memory backend used
// by tests and DB-less runs.
package repository

import (
	"context"
	"errors"
	"time"

	"hotel-frontdesk/internal/model"
)

// ErrNotFound is returned when no persisted record matches the given key,
// including updates and deletes that affect zero rows.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument is returned on caller misuse: creating an entity that
// already carries an identifier, or updating/deleting one that has none.
var ErrInvalidArgument = errors.New("invalid argument")

// RoomRepository handles persistence for the room catalog. Create assigns
// the identifier; entities handed in with one already set are rejected.
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindAll(ctx context.Context) ([]model.Room, error)
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindByNumber(ctx context.Context, number int) (*model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, room *model.Room) error

	// FindAvailable returns rooms with no open reservation whose expected
	// stay overlaps the half-open range [in, out).
	FindAvailable(ctx context.Context, in, out time.Time) ([]model.Room, error)
}

// ReservationRepository handles persistence for the reservation ledger.
// Reads attach the referenced room so a reservation round-trips complete.
type ReservationRepository interface {
	Create(ctx context.Context, res *model.Reservation) error
	FindAll(ctx context.Context) ([]model.Reservation, error)
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	Update(ctx context.Context, res *model.Reservation) error
	Delete(ctx context.Context, res *model.Reservation) error

	// Filter matches guest name case-insensitively as a substring and room
	// number exactly; a blank name or nil number is no constraint, both
	// criteria combine with AND, and no criteria returns the full ledger.
	Filter(ctx context.Context, name string, roomNumber *int) ([]model.Reservation, error)
}
