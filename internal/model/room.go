// Package model defines the core domain types for the hotel front-desk
// system and the business rules that relate them.
package model

import "fmt"

// BedType enumerates the bed configurations a room can have.
type BedType string

const (
	BedTwin   BedType = "TWIN"
	BedTwinXL BedType = "TWINXL"
	BedFull   BedType = "FULL"
	BedQueen  BedType = "QUEEN"
	BedKing   BedType = "KING"
)

// Capacity returns how many guests sleep in one bed of this type.
func (b BedType) Capacity() int {
	switch b {
	case BedQueen, BedKing:
		return 2
	default:
		return 1
	}
}

// ParseBedType converts a stored or user-supplied string into a BedType.
func ParseBedType(s string) (BedType, error) {
	switch BedType(s) {
	case BedTwin, BedTwinXL, BedFull, BedQueen, BedKing:
		return BedType(s), nil
	}
	return "", fmt.Errorf("unknown bed type %q", s)
}

// Room represents a single room in the hotel's catalog.
type Room struct {
	ID      string  `json:"id"`
	Number  int     `json:"number"`
	BedType BedType `json:"bed_type"`
	NumBeds int     `json:"num_beds"`
	Price   int     `json:"price"` // currency units per night
}

// Size returns the maximum occupancy of the room.
func (r *Room) Size() int {
	return r.BedType.Capacity() * r.NumBeds
}

// CreateRoomRequest is the payload for creating or updating a room.
type CreateRoomRequest struct {
	Number  int    `json:"number" validate:"required,gt=0"`
	BedType string `json:"bed_type" validate:"required"`
	NumBeds int    `json:"num_beds" validate:"required,gt=0"`
	Price   int    `json:"price" validate:"gte=0"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
