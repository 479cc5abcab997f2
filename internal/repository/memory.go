package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotel-frontdesk/internal/model"
)

// memoryState is the shared backing store for the in-memory room and
// reservation repositories. Both repositories must see the same state so
// availability queries can consult the ledger.
type memoryState struct {
	mu           sync.RWMutex
	rooms        map[string]model.Room
	reservations map[string]model.Reservation
}

// MemoryRooms is an in-memory RoomRepository for tests and DB-less runs.
type MemoryRooms struct {
	state *memoryState
}

// MemoryReservations is an in-memory ReservationRepository sharing state
// with its MemoryRooms counterpart.
type MemoryReservations struct {
	state *memoryState
}

// NewMemoryStore builds a connected pair of in-memory repositories.
func NewMemoryStore() (*MemoryRooms, *MemoryReservations) {
	s := &memoryState{
		rooms:        map[string]model.Room{},
		reservations: map[string]model.Reservation{},
	}
	return &MemoryRooms{state: s}, &MemoryReservations{state: s}
}

func (r *MemoryRooms) Create(_ context.Context, room *model.Room) error {
	if room.ID != "" {
		return fmt.Errorf("room already has id %q: %w", room.ID, ErrInvalidArgument)
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	room.ID = uuid.NewString()
	r.state.rooms[room.ID] = *room
	return nil
}

func (r *MemoryRooms) FindAll(_ context.Context) ([]model.Room, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	rooms := make([]model.Room, 0, len(r.state.rooms))
	for _, room := range r.state.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms, nil
}

func (r *MemoryRooms) FindByID(_ context.Context, id string) (*model.Room, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	room, ok := r.state.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %s: %w", id, ErrNotFound)
	}
	return &room, nil
}

func (r *MemoryRooms) FindByNumber(_ context.Context, number int) (*model.Room, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	for _, room := range r.state.rooms {
		if room.Number == number {
			room := room
			return &room, nil
		}
	}
	return nil, fmt.Errorf("room number %d: %w", number, ErrNotFound)
}

func (r *MemoryRooms) Update(_ context.Context, room *model.Room) error {
	if room.ID == "" {
		return fmt.Errorf("room has no id: %w", ErrInvalidArgument)
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.rooms[room.ID]; !ok {
		return fmt.Errorf("update room %s: %w", room.ID, ErrNotFound)
	}
	r.state.rooms[room.ID] = *room
	return nil
}

func (r *MemoryRooms) Delete(_ context.Context, room *model.Room) error {
	if room.ID == "" {
		return fmt.Errorf("room has no id: %w", ErrInvalidArgument)
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.rooms[room.ID]; !ok {
		return fmt.Errorf("delete room %s: %w", room.ID, ErrNotFound)
	}
	delete(r.state.rooms, room.ID)
	return nil
}

func (r *MemoryRooms) FindAvailable(_ context.Context, in, out time.Time) ([]model.Room, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	var rooms []model.Room
	for _, room := range r.state.rooms {
		if !r.state.roomBlocked(room.ID, in, out) {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms, nil
}

// roomBlocked must be called with the state lock held.
func (s *memoryState) roomBlocked(roomID string, in, out time.Time) bool {
	for _, res := range s.reservations {
		if res.Room != nil && res.Room.ID == roomID && res.Blocks(in, out) {
			return true
		}
	}
	return false
}

func (r *MemoryReservations) Create(_ context.Context, res *model.Reservation) error {
	if res.ID != "" {
		return fmt.Errorf("reservation already has id %q: %w", res.ID, ErrInvalidArgument)
	}
	if res.Room == nil || res.Room.ID == "" {
		return fmt.Errorf("reservation has no persisted room: %w", ErrInvalidArgument)
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	res.ID = uuid.NewString()
	r.state.reservations[res.ID] = cloneReservation(res)
	return nil
}

func (r *MemoryReservations) FindAll(_ context.Context) ([]model.Reservation, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	reservations := make([]model.Reservation, 0, len(r.state.reservations))
	for _, res := range r.state.reservations {
		res := res
		reservations = append(reservations, cloneReservation(&res))
	}
	sort.Slice(reservations, func(i, j int) bool { return reservations[i].ID < reservations[j].ID })
	return reservations, nil
}

func (r *MemoryReservations) FindByID(_ context.Context, id string) (*model.Reservation, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	res, ok := r.state.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	clone := cloneReservation(&res)
	return &clone, nil
}

func (r *MemoryReservations) Update(_ context.Context, res *model.Reservation) error {
	if res.ID == "" {
		return fmt.Errorf("reservation has no id: %w", ErrInvalidArgument)
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.reservations[res.ID]; !ok {
		return fmt.Errorf("update reservation %s: %w", res.ID, ErrNotFound)
	}
	r.state.reservations[res.ID] = cloneReservation(res)
	return nil
}

func (r *MemoryReservations) Delete(_ context.Context, res *model.Reservation) error {
	if res.ID == "" {
		return fmt.Errorf("reservation has no id: %w", ErrInvalidArgument)
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.reservations[res.ID]; !ok {
		return fmt.Errorf("delete reservation %s: %w", res.ID, ErrNotFound)
	}
	delete(r.state.reservations, res.ID)
	return nil
}

func (r *MemoryReservations) Filter(_ context.Context, name string, roomNumber *int) ([]model.Reservation, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	needle := strings.ToLower(name)
	var reservations []model.Reservation
	for _, res := range r.state.reservations {
		if name != "" && !strings.Contains(strings.ToLower(res.Guest.Name), needle) {
			continue
		}
		if roomNumber != nil && (res.Room == nil || res.Room.Number != *roomNumber) {
			continue
		}
		res := res
		reservations = append(reservations, cloneReservation(&res))
	}
	sort.Slice(reservations, func(i, j int) bool { return reservations[i].ID < reservations[j].ID })
	return reservations, nil
}

// cloneReservation copies the pointer-typed fields so callers never alias
// stored state.
func cloneReservation(res *model.Reservation) model.Reservation {
	clone := *res
	if res.Room != nil {
		room := *res.Room
		clone.Room = &room
	}
	if res.ActualCheckIn != nil {
		t := *res.ActualCheckIn
		clone.ActualCheckIn = &t
	}
	if res.ActualCheckOut != nil {
		t := *res.ActualCheckOut
		clone.ActualCheckOut = &t
	}
	return clone
}
