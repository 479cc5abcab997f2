package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/internal/model"
)

func seedRoom(t *testing.T, rooms *MemoryRooms, number, price int) *model.Room {
	t.Helper()
	room := &model.Room{Number: number, BedType: model.BedQueen, NumBeds: 1, Price: price}
	require.NoError(t, rooms.Create(context.Background(), room))
	return room
}

func TestMemoryCRUDRoundTrip(t *testing.T) {
	ctx := context.Background()
	rooms, reservations := NewMemoryStore()

	room := seedRoom(t, rooms, 1, 20)
	assert.NotEmpty(t, room.ID)

	roomByID, err := rooms.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.Number, roomByID.Number)

	res := &model.Reservation{
		Guest:            model.Guest{Name: "Ada Smith", Email: "a", Address: "b", Phone: "c", Details: "d"},
		Room:             room,
		ExpectedCheckIn:  model.Date(2020, 8, 1),
		ExpectedCheckOut: model.Date(2020, 8, 10),
		NumGuests:        1,
	}
	require.NoError(t, reservations.Create(ctx, res))

	got, err := reservations.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, got.Equal(res))

	got.Guest.Name = "Renamed Guest"
	require.NoError(t, reservations.Update(ctx, got))
	again, err := reservations.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Guest", again.Guest.Name)

	require.NoError(t, reservations.Delete(ctx, again))
	_, err = reservations.FindByID(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// The worked availability example: a still-open reservation expected
// 08-12 to 08-20 blocks its room for the range 08-16 to 08-28, while a
// room whose only reservation ran 08-08 to 08-15 is free.
func TestMemoryFindAvailable(t *testing.T) {
	ctx := context.Background()
	rooms, reservations := NewMemoryStore()

	blocked := seedRoom(t, rooms, 1, 20)
	free := seedRoom(t, rooms, 2, 25)

	open := &model.Reservation{
		Guest:            model.Guest{Name: "A", Email: "a", Address: "b", Phone: "c", Details: "d"},
		Room:             blocked,
		ExpectedCheckIn:  model.Date(2020, 8, 12),
		ExpectedCheckOut: model.Date(2020, 8, 20),
	}
	require.NoError(t, reservations.Create(ctx, open))

	adjacent := &model.Reservation{
		Guest:            model.Guest{Name: "B", Email: "a", Address: "b", Phone: "c", Details: "d"},
		Room:             free,
		ExpectedCheckIn:  model.Date(2020, 8, 8),
		ExpectedCheckOut: model.Date(2020, 8, 15),
	}
	require.NoError(t, reservations.Create(ctx, adjacent))

	available, err := rooms.FindAvailable(ctx, model.Date(2020, 8, 16), model.Date(2020, 8, 28))
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, 2, available[0].Number)
}

func TestMemoryFindAvailable_CheckedOutFreesRoom(t *testing.T) {
	ctx := context.Background()
	rooms, reservations := NewMemoryStore()

	room := seedRoom(t, rooms, 1, 20)
	checkIn := model.Date(2020, 8, 1)
	checkOut := model.Date(2020, 8, 10)
	res := &model.Reservation{
		Guest:            model.Guest{Name: "A", Email: "a", Address: "b", Phone: "c", Details: "d"},
		Room:             room,
		ExpectedCheckIn:  model.Date(2020, 8, 1),
		ExpectedCheckOut: model.Date(2020, 8, 10),
		ActualCheckIn:    &checkIn,
		ActualCheckOut:   &checkOut,
	}
	require.NoError(t, reservations.Create(ctx, res))

	// historical dates overlap the window, the room is free anyway
	available, err := rooms.FindAvailable(ctx, model.Date(2020, 8, 2), model.Date(2020, 8, 5))
	require.NoError(t, err)
	require.Len(t, available, 1)
}

func TestMemoryFindAvailable_InHouseBlocks(t *testing.T) {
	ctx := context.Background()
	rooms, reservations := NewMemoryStore()

	room := seedRoom(t, rooms, 1, 20)
	checkIn := model.Date(2020, 8, 1)
	res := &model.Reservation{
		Guest:            model.Guest{Name: "A", Email: "a", Address: "b", Phone: "c", Details: "d"},
		Room:             room,
		ExpectedCheckIn:  model.Date(2020, 8, 1),
		ExpectedCheckOut: model.Date(2020, 8, 10),
		ActualCheckIn:    &checkIn,
	}
	require.NoError(t, reservations.Create(ctx, res))

	available, err := rooms.FindAvailable(ctx, model.Date(2020, 8, 2), model.Date(2020, 8, 5))
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestMemoryFilter(t *testing.T) {
	ctx := context.Background()
	rooms, reservations := NewMemoryStore()

	room1 := seedRoom(t, rooms, 1, 20)
	room2 := seedRoom(t, rooms, 2, 25)

	for _, res := range []*model.Reservation{
		{
			Guest:            model.Guest{Name: "Ada Smith", Email: "a", Address: "b", Phone: "c", Details: "d"},
			Room:             room1,
			ExpectedCheckIn:  model.Date(2020, 8, 1),
			ExpectedCheckOut: model.Date(2020, 8, 10),
		},
		{
			Guest:            model.Guest{Name: "Bob Smith", Email: "a", Address: "b", Phone: "c", Details: "d"},
			Room:             room2,
			ExpectedCheckIn:  model.Date(2020, 9, 1),
			ExpectedCheckOut: model.Date(2020, 9, 10),
		},
		{
			Guest:            model.Guest{Name: "Carol Jones", Email: "a", Address: "b", Phone: "c", Details: "d"},
			Room:             room2,
			ExpectedCheckIn:  model.Date(2020, 10, 1),
			ExpectedCheckOut: model.Date(2020, 10, 10),
		},
	} {
		require.NoError(t, reservations.Create(ctx, res))
	}

	// no criteria: full ledger
	all, err := reservations.Filter(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// case-insensitive substring on guest name
	smiths, err := reservations.Filter(ctx, "smith", nil)
	require.NoError(t, err)
	assert.Len(t, smiths, 2)

	// exact room number
	two := 2
	inRoom2, err := reservations.Filter(ctx, "", &two)
	require.NoError(t, err)
	assert.Len(t, inRoom2, 2)

	// both criteria combine with AND
	both, err := reservations.Filter(ctx, "smith", &two)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Bob Smith", both[0].Guest.Name)

	// no match is an empty result, not an error
	none, err := reservations.Filter(ctx, "nobody", nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryRejectsPresetAndMissingIDs(t *testing.T) {
	ctx := context.Background()
	rooms, reservations := NewMemoryStore()

	assert.ErrorIs(t, rooms.Create(ctx, &model.Room{ID: "set", Number: 1}), ErrInvalidArgument)
	assert.ErrorIs(t, rooms.Update(ctx, &model.Room{Number: 1}), ErrInvalidArgument)
	assert.ErrorIs(t, rooms.Delete(ctx, &model.Room{}), ErrInvalidArgument)
	assert.ErrorIs(t, rooms.Update(ctx, &model.Room{ID: "ghost", Number: 1}), ErrNotFound)
	assert.ErrorIs(t, rooms.Delete(ctx, &model.Room{ID: "ghost"}), ErrNotFound)

	assert.ErrorIs(t, reservations.Update(ctx, &model.Reservation{}), ErrInvalidArgument)
	assert.ErrorIs(t, reservations.Delete(ctx, &model.Reservation{}), ErrInvalidArgument)
	assert.ErrorIs(t, reservations.Delete(ctx, &model.Reservation{ID: "ghost"}), ErrNotFound)
}
