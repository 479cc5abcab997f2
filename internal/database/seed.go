package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hotel-frontdesk/internal/model"
	"hotel-frontdesk/internal/repository"
)

// SeedDemoData populates an empty catalog with a few rooms and
// reservations in each lifecycle state, so a fresh install has something
// to show. It does nothing when rooms already exist.
func SeedDemoData(ctx context.Context, rooms repository.RoomRepository, reservations repository.ReservationRepository, logger *zap.Logger) error {
	existing, err := rooms.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	catalog := []model.Room{
		{Number: 1, BedType: model.BedQueen, NumBeds: 2, Price: 18},
		{Number: 2, BedType: model.BedTwinXL, NumBeds: 1, Price: 10},
		{Number: 3, BedType: model.BedFull, NumBeds: 5, Price: 20},
		{Number: 4, BedType: model.BedKing, NumBeds: 2, Price: 25},
		{Number: 5, BedType: model.BedTwin, NumBeds: 1, Price: 12},
	}
	for i := range catalog {
		if err := rooms.Create(ctx, &catalog[i]); err != nil {
			return fmt.Errorf("seed room %d: %w", catalog[i].Number, err)
		}
	}

	checkedIn := model.Date(2021, time.January, 12)
	past := model.Date(2020, time.December, 25)
	departed := model.Date(2021, time.January, 1)

	demo := []model.Reservation{
		{
			Guest:            model.Guest{Name: "Jan Novak", Email: "jan@example.com", Address: "Brno", Phone: "+420905174925", Details: "no details"},
			Room:             &catalog[0],
			ExpectedCheckIn:  model.Date(2021, time.January, 12),
			ExpectedCheckOut: model.Date(2021, time.January, 20),
			ActualCheckIn:    &checkedIn,
			NumGuests:        1,
		},
		{
			Guest:            model.Guest{Name: "Michal Novy", Email: "michal@example.com", Address: "Praha 123", Phone: "123519681", Details: "vegan breakfast"},
			Room:             &catalog[4],
			ExpectedCheckIn:  model.Date(2021, time.February, 1),
			ExpectedCheckOut: model.Date(2021, time.February, 20),
			NumGuests:        2,
		},
		{
			Guest:            model.Guest{Name: "Michal Novy", Email: "michal@example.com", Address: "Praha 123", Phone: "123519681", Details: "vegan breakfast"},
			Room:             &catalog[4],
			ExpectedCheckIn:  past,
			ExpectedCheckOut: departed,
			ActualCheckIn:    &past,
			ActualCheckOut:   &departed,
			NumGuests:        2,
		},
	}
	for i := range demo {
		if err := reservations.Create(ctx, &demo[i]); err != nil {
			return fmt.Errorf("seed reservation for %s: %w", demo[i].Guest.Name, err)
		}
	}

	logger.Info("seeded demo data",
		zap.Int("rooms", len(catalog)),
		zap.Int("reservations", len(demo)))
	return nil
}
