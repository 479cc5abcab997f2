package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotel-frontdesk/internal/model"
	"hotel-frontdesk/internal/repository"
)

// ReservationService orchestrates the reservation ledger and the stay
// lifecycle.
type ReservationService struct {
	reservations repository.ReservationRepository
	rooms        repository.RoomRepository
	now          func() time.Time
}

// NewReservationService constructs a ReservationService with its
// dependencies.
func NewReservationService(reservations repository.ReservationRepository, rooms repository.RoomRepository) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		now:          time.Now,
	}
}

// Create validates the request, resolves the referenced room and persists
// a new reservation in the Booked state.
func (s *ReservationService) Create(ctx context.Context, req model.CreateReservationRequest) (*model.Reservation, error) {
	guest, err := guestFromRequest(req.Guest)
	if err != nil {
		return nil, err
	}
	in, out, err := parseStayRange(req.ExpectedCheckIn, req.ExpectedCheckOut)
	if err != nil {
		return nil, err
	}
	if req.NumGuests < 0 {
		return nil, fmt.Errorf("guest count must not be negative: %w", repository.ErrInvalidArgument)
	}
	room, err := s.rooms.FindByNumber(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}

	res := &model.Reservation{
		Guest:            *guest,
		Room:             room,
		ExpectedCheckIn:  in,
		ExpectedCheckOut: out,
		NumGuests:        req.NumGuests,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// List returns the whole reservation ledger.
func (s *ReservationService) List(ctx context.Context) ([]model.Reservation, error) {
	return s.reservations.FindAll(ctx)
}

// Get returns a single reservation by id.
func (s *ReservationService) Get(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, fmt.Errorf("reservation has no id: %w", repository.ErrInvalidArgument)
	}
	return s.reservations.FindByID(ctx, id)
}

// Search filters the ledger by guest name substring and exact room
// number, both optional. A blank criterion is no constraint; both blank
// returns the full list.
func (s *ReservationService) Search(ctx context.Context, name, roomNumber string) ([]model.Reservation, error) {
	name = strings.TrimSpace(name)
	roomNumber = strings.TrimSpace(roomNumber)

	var number *int
	if roomNumber != "" {
		n, err := strconv.Atoi(roomNumber)
		if err != nil {
			return nil, fmt.Errorf("room number %q is not numeric: %w", roomNumber, repository.ErrInvalidArgument)
		}
		number = &n
	}
	return s.reservations.Filter(ctx, name, number)
}

// Update rewrites the guest, expected dates, guest count and room of an
// existing reservation; actual check-in/out dates are owned by the
// lifecycle operations and stay untouched.
func (s *ReservationService) Update(ctx context.Context, id string, req model.CreateReservationRequest) (*model.Reservation, error) {
	if id == "" {
		return nil, fmt.Errorf("reservation has no id: %w", repository.ErrInvalidArgument)
	}
	guest, err := guestFromRequest(req.Guest)
	if err != nil {
		return nil, err
	}
	in, out, err := parseStayRange(req.ExpectedCheckIn, req.ExpectedCheckOut)
	if err != nil {
		return nil, err
	}
	if req.NumGuests < 0 {
		return nil, fmt.Errorf("guest count must not be negative: %w", repository.ErrInvalidArgument)
	}

	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.FindByNumber(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}

	res.Guest = *guest
	res.Room = room
	res.ExpectedCheckIn = in
	res.ExpectedCheckOut = out
	res.NumGuests = req.NumGuests
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes a reservation from the ledger.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("reservation has no id: %w", repository.ErrInvalidArgument)
	}
	return s.reservations.Delete(ctx, &model.Reservation{ID: id})
}

// CheckIn records the guest's arrival today.
func (s *ReservationService) CheckIn(ctx context.Context, id string) (*model.Reservation, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := res.CheckIn(s.now()); err != nil {
		return nil, err
	}
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// CheckOut records the guest's departure today and returns the final
// reservation alongside the computed price.
func (s *ReservationService) CheckOut(ctx context.Context, id string) (*model.Reservation, int, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	price, err := res.CheckOut(s.now())
	if err != nil {
		return nil, 0, err
	}
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, 0, err
	}
	return res, price, nil
}

func guestFromRequest(req model.GuestRequest) (*model.Guest, error) {
	guest := model.Guest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Details: strings.TrimSpace(req.Details),
	}
	for field, value := range map[string]string{
		"name": guest.Name, "email": guest.Email, "address": guest.Address,
		"phone": guest.Phone, "details": guest.Details,
	} {
		if value == "" {
			return nil, fmt.Errorf("guest %s must not be blank: %w", field, repository.ErrInvalidArgument)
		}
	}
	return &guest, nil
}

func parseStayRange(inStr, outStr string) (in, out time.Time, err error) {
	in, err = time.Parse(time.DateOnly, inStr)
	if err != nil {
		return in, out, fmt.Errorf("expected check-in %q is not a date: %w", inStr, repository.ErrInvalidArgument)
	}
	out, err = time.Parse(time.DateOnly, outStr)
	if err != nil {
		return in, out, fmt.Errorf("expected check-out %q is not a date: %w", outStr, repository.ErrInvalidArgument)
	}
	if !in.Before(out) {
		return in, out, fmt.Errorf("expected check-in must precede expected check-out: %w", repository.ErrInvalidArgument)
	}
	return in, out, nil
}
