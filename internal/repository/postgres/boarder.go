package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
)

type boarderRepository struct {
	db *sql.DB
}

func NewBoarderRepository(db *sql.DB) repository.BoarderRepository {
	return &boarderRepository{db: db}
}

const boarderColumns = `id, first_name, last_name, email, phone, emergency_contact, emergency_phone,
	access_code, move_in_date, move_out_date, is_active, room_id, created_at, updated_at`

func (r *boarderRepository) GetByID(ctx context.Context, id string) (*domain.Boarder, error) {
	query := `SELECT ` + boarderColumns + ` FROM boarders WHERE id = $1`
	b, err := scanBoarder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("boarder", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *boarderRepository) GetByAccessCode(ctx context.Context, code string) (*domain.Boarder, error) {
	query := `SELECT ` + boarderColumns + ` FROM boarders WHERE access_code = $1`
	b, err := scanBoarder(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("boarder with access code", code)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *boarderRepository) List(ctx context.Context, filter repository.BoarderFilter) ([]domain.Boarder, error) {
	query := `SELECT ` + boarderColumns + ` FROM boarders WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if filter.Active != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.RoomID != "" {
		query += fmt.Sprintf(" AND room_id = $%d", argIdx)
		args = append(args, filter.RoomID)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	query += " ORDER BY last_name ASC, first_name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boarders []domain.Boarder
	for rows.Next() {
		b, err := scanBoarder(rows)
		if err != nil {
			return nil, err
		}
		boarders = append(boarders, *b)
	}
	return boarders, rows.Err()
}

func (r *boarderRepository) Save(ctx context.Context, b *domain.Boarder) error {
	query := `INSERT INTO boarders (` + boarderColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          ON CONFLICT (id) DO UPDATE SET
	            first_name = EXCLUDED.first_name,
	            last_name = EXCLUDED.last_name,
	            email = EXCLUDED.email,
	            phone = EXCLUDED.phone,
	            emergency_contact = EXCLUDED.emergency_contact,
	            emergency_phone = EXCLUDED.emergency_phone,
	            access_code = EXCLUDED.access_code,
	            move_in_date = EXCLUDED.move_in_date,
	            move_out_date = EXCLUDED.move_out_date,
	            is_active = EXCLUDED.is_active,
	            room_id = EXCLUDED.room_id,
	            updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.FirstName, b.LastName, b.Email, b.Phone, b.EmergencyContact, b.EmergencyPhone,
		b.AccessCode, b.MoveInDate, b.MoveOutDate, b.IsActive, b.RoomID, b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *boarderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boarders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("boarder", id)
	}
	return nil
}

func (r *boarderRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM boarders WHERE LOWER(email) = LOWER($1) AND id <> $2)`
	err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *boarderRepository) CountActiveByRoom(ctx context.Context, roomID string) (int, error) {
	var count int
	query := `SELECT count(*) FROM boarders WHERE room_id = $1 AND is_active = TRUE`
	err := r.db.QueryRowContext(ctx, query, roomID).Scan(&count)
	return count, err
}

func (r *boarderRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM boarders WHERE is_active = TRUE`).Scan(&count)
	return count, err
}

func (r *boarderRepository) CountActiveAssigned(ctx context.Context) (int, error) {
	var count int
	query := `SELECT count(*) FROM boarders WHERE is_active = TRUE AND room_id IS NOT NULL`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (r *boarderRepository) GetStats(ctx context.Context) (*domain.BoarderStats, error) {
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE is_active),
	                 count(*) FILTER (WHERE NOT is_active)
	          FROM boarders`
	stats := &domain.BoarderStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Active, &stats.Inactive)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func scanBoarder(row rowScanner) (*domain.Boarder, error) {
	b := &domain.Boarder{}
	err := row.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
		&b.EmergencyContact, &b.EmergencyPhone, &b.AccessCode, &b.MoveInDate,
		&b.MoveOutDate, &b.IsActive, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}
