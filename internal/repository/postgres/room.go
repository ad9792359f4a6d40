package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"

	"github.com/lib/pq"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

const roomColumns = `id, room_number, floor, capacity, monthly_rate_cents, amenities, status, created_at, updated_at`

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	room, err := scanRoom(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("room", id)
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) List(ctx context.Context, filter repository.RoomFilter) ([]domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.Floor != nil {
		query += fmt.Sprintf(" AND floor = $%d", argIdx)
		args = append(args, *filter.Floor)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND room_number ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	query += " ORDER BY room_number ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) Save(ctx context.Context, room *domain.Room) error {
	query := `INSERT INTO rooms (` + roomColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (id) DO UPDATE SET
	            room_number = EXCLUDED.room_number,
	            floor = EXCLUDED.floor,
	            capacity = EXCLUDED.capacity,
	            monthly_rate_cents = EXCLUDED.monthly_rate_cents,
	            amenities = EXCLUDED.amenities,
	            status = EXCLUDED.status,
	            updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		room.ID, room.RoomNumber, room.Floor, room.Capacity, room.MonthlyRateCents,
		pq.Array(room.Amenities), room.Status, room.CreatedAt, room.UpdatedAt)
	return err
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("room", id)
	}
	return nil
}

func (r *roomRepository) ExistsByNumber(ctx context.Context, roomNumber, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM rooms WHERE LOWER(room_number) = LOWER($1) AND id <> $2)`
	err := r.db.QueryRowContext(ctx, query, roomNumber, excludeID).Scan(&exists)
	return exists, err
}

func (r *roomRepository) TotalCapacity(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(capacity), 0) FROM rooms`).Scan(&total)
	return total, err
}

func (r *roomRepository) GetStats(ctx context.Context) (*domain.RoomStats, error) {
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE status = 'AVAILABLE'),
	                 count(*) FILTER (WHERE status = 'OCCUPIED'),
	                 count(*) FILTER (WHERE status = 'MAINTENANCE')
	          FROM rooms`
	stats := &domain.RoomStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Available, &stats.Occupied, &stats.Maintenance)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	room := &domain.Room{}
	err := row.Scan(&room.ID, &room.RoomNumber, &room.Floor, &room.Capacity,
		&room.MonthlyRateCents, pq.Array(&room.Amenities), &room.Status,
		&room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return room, nil
}
