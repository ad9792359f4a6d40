package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
	"boardinghouse-backend/internal/repository/postgres"
)

const roomColumnsSQL = "id, room_number, floor, capacity, monthly_rate_cents, amenities, status, created_at, updated_at"

func roomRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "room_number", "floor", "capacity", "monthly_rate_cents", "amenities", "status", "created_at", "updated_at"}).
		AddRow("room-1", "101", 1, 4, int64(500000), []byte("{wifi,aircon}"), "AVAILABLE", now, now)
}

func TestRoomGetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRoomRepository(db)
		mock.ExpectQuery(`SELECT ` + roomColumnsSQL + ` FROM rooms WHERE id = \$1`).
			WithArgs("room-1").
			WillReturnRows(roomRows(t))

		room, err := repo.GetByID(context.Background(), "room-1")
		assert.NoError(t, err)
		assert.Equal(t, "101", room.RoomNumber)
		assert.Equal(t, []string{"wifi", "aircon"}, room.Amenities)
		assert.Equal(t, domain.RoomStatusAvailable, room.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRoomRepository(db)
		mock.ExpectQuery(`SELECT .+ FROM rooms WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err = repo.GetByID(context.Background(), "ghost")

		var notFoundErr *domain.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestRoomList(t *testing.T) {
	t.Run("Applies status and search filters in order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRoomRepository(db)
		status := domain.RoomStatusAvailable
		mock.ExpectQuery(`SELECT .+ FROM rooms WHERE 1=1 AND status = \$1 AND room_number ILIKE \$2 ORDER BY room_number ASC`).
			WithArgs("AVAILABLE", "%10%").
			WillReturnRows(roomRows(t))

		rooms, err := repo.List(context.Background(), repository.RoomFilter{Status: &status, Search: "10"})
		assert.NoError(t, err)
		assert.Len(t, rooms, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No filters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRoomRepository(db)
		mock.ExpectQuery(`SELECT .+ FROM rooms WHERE 1=1 ORDER BY room_number ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		rooms, err := repo.List(context.Background(), repository.RoomFilter{})
		assert.NoError(t, err)
		assert.Empty(t, rooms)
	})
}

func TestRoomSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRoomRepository(db)
	room, err := domain.NewRoom("101", 1, 4, 500000, []string{"wifi"})
	assert.NoError(t, err)

	mock.ExpectExec(`INSERT INTO rooms .+ ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs(room.ID, "101", 1, 4, int64(500000), sqlmock.AnyArg(), "AVAILABLE", room.CreatedAt, room.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Save(context.Background(), room))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomDelete(t *testing.T) {
	t.Run("Missing row is NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := postgres.NewRoomRepository(db)
		mock.ExpectExec(`DELETE FROM rooms WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Delete(context.Background(), "ghost")

		var notFoundErr *domain.NotFoundError
		assert.ErrorAs(t, err, &notFoundErr)
	})
}

func TestRoomExistsByNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRoomRepository(db)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("101", "room-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByNumber(context.Background(), "101", "room-1")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestRoomGetStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRoomRepository(db)
	mock.ExpectQuery(`SELECT count\(\*\),`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "available", "occupied", "maintenance"}).
			AddRow(10, 4, 5, 1))

	stats, err := repo.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 5, stats.Occupied)
}
