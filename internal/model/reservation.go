package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition is returned when a check-in or check-out is
// attempted out of lifecycle order.
var ErrInvalidTransition = errors.New("invalid stay transition")

// Guest is a value object embedded in a reservation; it has no identity
// of its own.
type Guest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Details string `json:"details"`
}

// StayStatus is the lifecycle state of a reservation, derived from its
// two actual dates.
type StayStatus string

const (
	StatusBooked     StayStatus = "booked"
	StatusCheckedIn  StayStatus = "checked_in"
	StatusCheckedOut StayStatus = "checked_out"
)

// Reservation represents a guest's stay in a room. Expected dates are the
// booked intent; actual dates are set by check-in and check-out and are
// independently nullable.
type Reservation struct {
	ID               string     `json:"id"`
	Guest            Guest      `json:"guest"`
	Room             *Room      `json:"room,omitempty"`
	ExpectedCheckIn  time.Time  `json:"expected_check_in"`
	ExpectedCheckOut time.Time  `json:"expected_check_out"`
	ActualCheckIn    *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut   *time.Time `json:"actual_check_out,omitempty"`
	NumGuests        int        `json:"num_guests"`
}

// Status derives the lifecycle state: Booked until check-in, CheckedIn
// until check-out, CheckedOut afterwards.
func (r *Reservation) Status() StayStatus {
	switch {
	case r.ActualCheckOut != nil:
		return StatusCheckedOut
	case r.ActualCheckIn != nil:
		return StatusCheckedIn
	default:
		return StatusBooked
	}
}

// Equal reports identity equality: two reservations are the same iff both
// carry the same non-empty identifier.
func (r *Reservation) Equal(o *Reservation) bool {
	if o == nil {
		return false
	}
	return r.ID != "" && r.ID == o.ID
}

// CheckIn records the guest's arrival. It fails when the reservation is
// already checked in or already checked out; no state is skipped and no
// transition reverses.
func (r *Reservation) CheckIn(today time.Time) error {
	if r.ActualCheckIn != nil {
		return fmt.Errorf("reservation %s already checked in: %w", r.ID, ErrInvalidTransition)
	}
	if r.ActualCheckOut != nil {
		return fmt.Errorf("reservation %s already checked out: %w", r.ID, ErrInvalidTransition)
	}
	d := Date(today.Year(), today.Month(), today.Day())
	r.ActualCheckIn = &d
	return nil
}

// CheckOut records the guest's departure and returns the computed price.
// It fails when the guest never checked in or has already checked out.
func (r *Reservation) CheckOut(today time.Time) (int, error) {
	if r.ActualCheckIn == nil {
		return 0, fmt.Errorf("reservation %s was never checked in: %w", r.ID, ErrInvalidTransition)
	}
	if r.ActualCheckOut != nil {
		return 0, fmt.Errorf("reservation %s already checked out: %w", r.ID, ErrInvalidTransition)
	}
	d := Date(today.Year(), today.Month(), today.Day())
	r.ActualCheckOut = &d
	return r.Price()
}

// Price computes the bill for a completed stay. The rule is asymmetric: a
// late arrival still bills from the expected start, a late departure
// extends the bill, and an early departure never shrinks it below the
// expected duration.
func (r *Reservation) Price() (int, error) {
	if r.Room == nil {
		return 0, errors.New("price requires an assigned room")
	}
	if r.ActualCheckIn == nil || r.ActualCheckOut == nil {
		return 0, errors.New("price requires both actual check-in and check-out dates")
	}
	entering := *r.ActualCheckIn
	if entering.After(r.ExpectedCheckIn) {
		entering = r.ExpectedCheckIn
	}
	leaving := r.ExpectedCheckOut
	if r.ActualCheckOut.After(leaving) {
		leaving = *r.ActualCheckOut
	}
	return r.Room.Price * daysBetween(entering, leaving), nil
}

// Blocks reports whether the reservation keeps its room occupied for any
// part of the half-open range [in, out). A checked-out reservation never
// blocks; a checked-in one still does, since the actual departure is
// unknown.
func (r *Reservation) Blocks(in, out time.Time) bool {
	if r.ActualCheckOut != nil {
		return false
	}
	return r.ExpectedCheckIn.Before(out) && r.ExpectedCheckOut.After(in)
}

// Date builds a UTC date with zero time of day, the normal form for every
// date stored on a reservation.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// GuestRequest carries guest fields on reservation payloads; every field
// is required non-blank.
type GuestRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Details string `json:"details" validate:"required"`
}

// CreateReservationRequest is the payload for creating a reservation.
// Dates use the 2006-01-02 form.
type CreateReservationRequest struct {
	Guest            GuestRequest `json:"guest" validate:"required"`
	RoomNumber       int          `json:"room_number" validate:"required,gt=0"`
	ExpectedCheckIn  string       `json:"expected_check_in" validate:"required"`
	ExpectedCheckOut string       `json:"expected_check_out" validate:"required"`
	NumGuests        int          `json:"num_guests" validate:"gte=0"`
}

// CheckOutResponse is returned by the check-out endpoint; it carries the
// final reservation state plus the computed bill.
type CheckOutResponse struct {
	Reservation *Reservation `json:"reservation"`
	Price       int          `json:"price"`
}
