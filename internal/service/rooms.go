// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"hotel-frontdesk/internal/model"
	"hotel-frontdesk/internal/repository"
)

// RoomService orchestrates room catalog operations.
type RoomService struct {
	rooms repository.RoomRepository
}

// NewRoomService constructs a RoomService with its dependencies.
func NewRoomService(rooms repository.RoomRepository) *RoomService {
	return &RoomService{rooms: rooms}
}

// Create validates the request and adds a room to the catalog. Room
// numbers are unique; reusing one fails with ErrInvalidArgument.
func (s *RoomService) Create(ctx context.Context, req model.CreateRoomRequest) (*model.Room, error) {
	room, err := roomFromRequest(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.rooms.FindByNumber(ctx, req.Number); err == nil {
		return nil, fmt.Errorf("room number %d already in use: %w", req.Number, repository.ErrInvalidArgument)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("create room: %w", err)
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// List returns the whole room catalog.
func (s *RoomService) List(ctx context.Context) ([]model.Room, error) {
	return s.rooms.FindAll(ctx)
}

// GetByNumber returns a single room by its catalog number.
func (s *RoomService) GetByNumber(ctx context.Context, number int) (*model.Room, error) {
	if number <= 0 {
		return nil, fmt.Errorf("room number must be positive: %w", repository.ErrInvalidArgument)
	}
	return s.rooms.FindByNumber(ctx, number)
}

// Update rewrites an existing room in place.
func (s *RoomService) Update(ctx context.Context, id string, req model.CreateRoomRequest) (*model.Room, error) {
	if id == "" {
		return nil, fmt.Errorf("room has no id: %w", repository.ErrInvalidArgument)
	}
	room, err := roomFromRequest(req)
	if err != nil {
		return nil, err
	}
	if existing, err := s.rooms.FindByNumber(ctx, req.Number); err == nil && existing.ID != id {
		return nil, fmt.Errorf("room number %d already in use: %w", req.Number, repository.ErrInvalidArgument)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("update room: %w", err)
	}
	room.ID = id
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room from the catalog.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("room has no id: %w", repository.ErrInvalidArgument)
	}
	return s.rooms.Delete(ctx, &model.Room{ID: id})
}

// Available returns rooms free for the half-open range [in, out), sorted
// by room number. When includeNumber is set (the edit flow), that room is
// part of the result even if its own reservation blocks the range.
func (s *RoomService) Available(ctx context.Context, in, out time.Time, includeNumber *int) ([]model.Room, error) {
	if !in.Before(out) {
		return nil, fmt.Errorf("check-in must precede check-out: %w", repository.ErrInvalidArgument)
	}
	rooms, err := s.rooms.FindAvailable(ctx, in, out)
	if err != nil {
		return nil, err
	}
	if includeNumber != nil {
		found := false
		for _, room := range rooms {
			if room.Number == *includeNumber {
				found = true
				break
			}
		}
		if !found {
			current, err := s.rooms.FindByNumber(ctx, *includeNumber)
			if err != nil {
				return nil, err
			}
			rooms = append(rooms, *current)
		}
		sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	}
	return rooms, nil
}

func roomFromRequest(req model.CreateRoomRequest) (*model.Room, error) {
	if req.Number <= 0 {
		return nil, fmt.Errorf("room number must be positive: %w", repository.ErrInvalidArgument)
	}
	if req.NumBeds <= 0 {
		return nil, fmt.Errorf("number of beds must be positive: %w", repository.ErrInvalidArgument)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", repository.ErrInvalidArgument)
	}
	bedType, err := model.ParseBedType(req.BedType)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, repository.ErrInvalidArgument)
	}
	return &model.Room{
		Number:  req.Number,
		BedType: bedType,
		NumBeds: req.NumBeds,
		Price:   req.Price,
	}, nil
}
