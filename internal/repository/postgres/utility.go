package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/repository"
)

type utilityRepository struct {
	db *sql.DB
}

func NewUtilityRepository(db *sql.DB) repository.UtilityRepository {
	return &utilityRepository{db: db}
}

const utilityColumns = `id, room_id, type, previous_reading, current_reading, rate_per_unit_cents,
	reading_date, billing_period_start, billing_period_end, created_at`

func (r *utilityRepository) GetByID(ctx context.Context, id string) (*domain.UtilityReading, error) {
	query := `SELECT ` + utilityColumns + ` FROM utility_readings WHERE id = $1`
	reading, err := scanUtilityReading(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("utility reading", id)
	}
	if err != nil {
		return nil, err
	}
	return reading, nil
}

func (r *utilityRepository) List(ctx context.Context, filter repository.UtilityFilter) ([]domain.UtilityReading, error) {
	query := `SELECT ` + utilityColumns + ` FROM utility_readings WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if filter.RoomID != "" {
		query += fmt.Sprintf(" AND room_id = $%d", argIdx)
		args = append(args, filter.RoomID)
		argIdx++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, string(*filter.Type))
		argIdx++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND reading_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND reading_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	query += " ORDER BY reading_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []domain.UtilityReading
	for rows.Next() {
		reading, err := scanUtilityReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, *reading)
	}
	return readings, rows.Err()
}

func (r *utilityRepository) Save(ctx context.Context, reading *domain.UtilityReading) error {
	query := `INSERT INTO utility_readings (` + utilityColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query,
		reading.ID, reading.RoomID, reading.Type, reading.PreviousReading,
		reading.CurrentReading, reading.RatePerUnitCents, reading.ReadingDate,
		reading.PeriodStart, reading.PeriodEnd, reading.CreatedAt)
	return err
}

func (r *utilityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM utility_readings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("utility reading", id)
	}
	return nil
}

func (r *utilityRepository) GetLatestByRoomAndType(ctx context.Context, roomID string, utilityType domain.UtilityType) (*domain.UtilityReading, error) {
	query := `SELECT ` + utilityColumns + ` FROM utility_readings
	          WHERE room_id = $1 AND type = $2
	          ORDER BY reading_date DESC LIMIT 1`
	reading, err := scanUtilityReading(r.db.QueryRowContext(ctx, query, roomID, utilityType))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reading, nil
}

func (r *utilityRepository) ListForSummary(ctx context.Context, roomID string, utilityType *domain.UtilityType, since time.Time) ([]domain.ConsumptionSummaryItem, error) {
	// Consumption and cost are derived here at read time, never stored.
	query := `SELECT u.room_id, r.room_number, u.type,
	                 u.current_reading - u.previous_reading,
	                 ROUND((u.current_reading - u.previous_reading) * u.rate_per_unit_cents)::bigint,
	                 u.reading_date
	          FROM utility_readings u
	          JOIN rooms r ON r.id = u.room_id
	          WHERE u.reading_date >= $1`
	args := []interface{}{since}
	argIdx := 2

	if roomID != "" {
		query += fmt.Sprintf(" AND u.room_id = $%d", argIdx)
		args = append(args, roomID)
		argIdx++
	}
	if utilityType != nil {
		query += fmt.Sprintf(" AND u.type = $%d", argIdx)
		args = append(args, string(*utilityType))
		argIdx++
	}
	query += " ORDER BY u.reading_date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ConsumptionSummaryItem
	for rows.Next() {
		var item domain.ConsumptionSummaryItem
		if err := rows.Scan(&item.RoomID, &item.RoomNumber, &item.Type,
			&item.Consumption, &item.CostCents, &item.Date); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *utilityRepository) TotalCostForPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(ROUND((current_reading - previous_reading) * rate_per_unit_cents)), 0)::bigint
	          FROM utility_readings
	          WHERE reading_date >= $1 AND reading_date <= $2`
	var total int64
	err := r.db.QueryRowContext(ctx, query, start, end).Scan(&total)
	return total, err
}

func (r *utilityRepository) GetStats(ctx context.Context) (*domain.UtilityStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, count(*) FROM utility_readings GROUP BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.UtilityStats{ByType: make(map[domain.UtilityType]int)}
	for rows.Next() {
		var utilityType domain.UtilityType
		var count int
		if err := rows.Scan(&utilityType, &count); err != nil {
			return nil, err
		}
		stats.ByType[utilityType] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

func scanUtilityReading(row rowScanner) (*domain.UtilityReading, error) {
	reading := &domain.UtilityReading{}
	err := row.Scan(&reading.ID, &reading.RoomID, &reading.Type,
		&reading.PreviousReading, &reading.CurrentReading, &reading.RatePerUnitCents,
		&reading.ReadingDate, &reading.PeriodStart, &reading.PeriodEnd, &reading.CreatedAt)
	if err != nil {
		return nil, err
	}
	return reading, nil
}
