package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotel-frontdesk/internal/model"
)

func setupReservationsRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresReservations) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresReservations(db, zap.NewNop())
}

var reservationCols = []string{
	"id", "guest_name", "email", "address", "phone", "details",
	"expected_check_in_date", "expected_check_out_date",
	"check_in_date", "check_out_date", "guests_number",
	"room_id", "room_number", "price", "beds_amount", "bed_type",
}

func TestReservationsCreate_AssignsID(t *testing.T) {
	db, mock, repo := setupReservationsRepo(t)
	defer db.Close()

	in := model.Date(2020, 8, 1)
	out := model.Date(2020, 8, 10)
	mock.ExpectExec(`INSERT INTO reservations`).
		WithArgs(sqlmock.AnyArg(), "Ada Smith", "ada@example.com", "Brno", "123", "-",
			in, out, nil, nil, 2, "room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res := &model.Reservation{
		Guest:            model.Guest{Name: "Ada Smith", Email: "ada@example.com", Address: "Brno", Phone: "123", Details: "-"},
		Room:             &model.Room{ID: "room-1", Number: 1},
		ExpectedCheckIn:  in,
		ExpectedCheckOut: out,
		NumGuests:        2,
	}
	require.NoError(t, repo.Create(context.Background(), res))
	assert.NotEmpty(t, res.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationsCreate_RejectsPresetID(t *testing.T) {
	db, _, repo := setupReservationsRepo(t)
	defer db.Close()

	res := &model.Reservation{ID: "already-set", Room: &model.Room{ID: "room-1"}}
	assert.ErrorIs(t, repo.Create(context.Background(), res), ErrInvalidArgument)
}

func TestReservationsCreate_RequiresPersistedRoom(t *testing.T) {
	db, _, repo := setupReservationsRepo(t)
	defer db.Close()

	assert.ErrorIs(t, repo.Create(context.Background(), &model.Reservation{}), ErrInvalidArgument)

	res := &model.Reservation{Room: &model.Room{Number: 1}} // room never persisted
	assert.ErrorIs(t, repo.Create(context.Background(), res), ErrInvalidArgument)
}

func TestReservationsFindByID_ScansJoinedRoomAndDates(t *testing.T) {
	db, mock, repo := setupReservationsRepo(t)
	defer db.Close()

	checkIn := model.Date(2020, 8, 3)
	rows := sqlmock.NewRows(reservationCols).
		AddRow("res-1", "Ada Smith", "ada@example.com", "Brno", "123", "-",
			model.Date(2020, 8, 1), model.Date(2020, 8, 10),
			checkIn, nil, 2,
			"room-1", 2, 20, 1, "QUEEN")
	mock.ExpectQuery(`FROM reservations r`).
		WithArgs("res-1").
		WillReturnRows(rows)

	res, err := repo.FindByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.NotNil(t, res.Room)
	assert.Equal(t, 2, res.Room.Number)
	assert.Equal(t, model.BedQueen, res.Room.BedType)
	require.NotNil(t, res.ActualCheckIn)
	assert.Equal(t, checkIn, *res.ActualCheckIn)
	assert.Nil(t, res.ActualCheckOut)
	assert.Equal(t, model.StatusCheckedIn, res.Status())
}

func TestReservationsFindByID_NotFound(t *testing.T) {
	db, mock, repo := setupReservationsRepo(t)
	defer db.Close()

	mock.ExpectQuery(`FROM reservations r`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReservationsFilter_NoCriteriaReturnsAll(t *testing.T) {
	db, mock, repo := setupReservationsRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(reservationCols).
		AddRow("res-1", "Ada Smith", "ada@example.com", "Brno", "123", "-",
			model.Date(2020, 8, 1), model.Date(2020, 8, 10), nil, nil, 2,
			"room-1", 2, 20, 1, "QUEEN").
		AddRow("res-2", "Bob Jones", "bob@example.com", "Praha", "456", "-",
			model.Date(2020, 9, 1), model.Date(2020, 9, 5), nil, nil, 1,
			"room-2", 3, 25, 2, "KING")
	mock.ExpectQuery(`FROM reservations r`).
		WillReturnRows(rows)

	reservations, err := repo.Filter(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Len(t, reservations, 2)
}

func TestReservationsFilter_NameOnly(t *testing.T) {
	db, mock, repo := setupReservationsRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(reservationCols).
		AddRow("res-1", "Ada Smith", "ada@example.com", "Brno", "123", "-",
			model.Date(2020, 8, 1), model.Date(2020, 8, 10), nil, nil, 2,
			"room-1", 2, 20, 1, "QUEEN")
	mock.ExpectQuery(`LOWER\(r.guest_name\) LIKE`).
		WithArgs("%smith%").
		WillReturnRows(rows)

	reservations, err := repo.Filter(context.Background(), "Smith", nil)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "Ada Smith", reservations[0].Guest.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationsFilter_NameAndNumberCombineWithAnd(t *testing.T) {
	db, mock, repo := setupReservationsRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(reservationCols)
	mock.ExpectQuery(`LIKE \$1 AND rm.room_number = \$2`).
		WithArgs("%smith%", 5).
		WillReturnRows(rows)

	number := 5
	reservations, err := repo.Filter(context.Background(), "Smith", &number)
	require.NoError(t, err)
	assert.Empty(t, reservations)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationsUpdate_ZeroRowsIsNotFound(t *testing.T) {
	db, mock, repo := setupReservationsRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE reservations SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	res := &model.Reservation{
		ID:               "missing",
		Guest:            model.Guest{Name: "Ada", Email: "a", Address: "b", Phone: "c", Details: "d"},
		Room:             &model.Room{ID: "room-1"},
		ExpectedCheckIn:  model.Date(2020, 8, 1),
		ExpectedCheckOut: model.Date(2020, 8, 10),
	}
	assert.ErrorIs(t, repo.Update(context.Background(), res), ErrNotFound)
}

func TestReservationsUpdate_MissingIDIsInvalid(t *testing.T) {
	db, _, repo := setupReservationsRepo(t)
	defer db.Close()

	res := &model.Reservation{Room: &model.Room{ID: "room-1"}}
	assert.ErrorIs(t, repo.Update(context.Background(), res), ErrInvalidArgument)
}

func TestReservationsDelete_ZeroRowsIsNotFound(t *testing.T) {
	db, mock, repo := setupReservationsRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM reservations WHERE id`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), &model.Reservation{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}
