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

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, boarder_id, amount_cents, type, status, due_date, paid_date, receipt_number, description, created_at, updated_at`

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("payment", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	var args []interface{}
	argIdx := 1

	if filter.BoarderID != "" {
		query += fmt.Sprintf(" AND boarder_id = $%d", argIdx)
		args = append(args, filter.BoarderID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, string(*filter.Type))
		argIdx++
	}
	if filter.DueFrom != nil {
		query += fmt.Sprintf(" AND due_date >= $%d", argIdx)
		args = append(args, *filter.DueFrom)
		argIdx++
	}
	if filter.DueTo != nil {
		query += fmt.Sprintf(" AND due_date <= $%d", argIdx)
		args = append(args, *filter.DueTo)
		argIdx++
	}
	query += " ORDER BY due_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Save(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (id) DO UPDATE SET
	            amount_cents = EXCLUDED.amount_cents,
	            type = EXCLUDED.type,
	            status = EXCLUDED.status,
	            due_date = EXCLUDED.due_date,
	            paid_date = EXCLUDED.paid_date,
	            receipt_number = EXCLUDED.receipt_number,
	            description = EXCLUDED.description,
	            updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.BoarderID, p.AmountCents, p.Type, p.Status, p.DueDate,
		p.PaidDate, p.ReceiptNumber, p.Description, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("payment", id)
	}
	return nil
}

func (r *paymentRepository) GetStats(ctx context.Context, now time.Time) (*domain.PaymentStats, error) {
	// PENDING payments past due count as overdue even before the nightly
	// sweep has persisted the OVERDUE status.
	query := `SELECT count(*),
	                 count(*) FILTER (WHERE status = 'PENDING' AND due_date >= $1),
	                 count(*) FILTER (WHERE status = 'PAID'),
	                 count(*) FILTER (WHERE status = 'OVERDUE' OR (status = 'PENDING' AND due_date < $1)),
	                 count(*) FILTER (WHERE status = 'CANCELLED'),
	                 COALESCE(SUM(amount_cents) FILTER (WHERE status = 'PAID'), 0)
	          FROM payments`
	stats := &domain.PaymentStats{}
	err := r.db.QueryRowContext(ctx, query, now).Scan(&stats.Total, &stats.Pending,
		&stats.Paid, &stats.Overdue, &stats.Cancelled, &stats.CollectedCents)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *paymentRepository) GetMonthlyRevenue(ctx context.Context, year int) (*domain.MonthlyRevenue, error) {
	query := `SELECT EXTRACT(MONTH FROM paid_date)::int, COALESCE(SUM(amount_cents), 0)
	          FROM payments
	          WHERE status = 'PAID' AND EXTRACT(YEAR FROM paid_date) = $1
	          GROUP BY 1`
	rows, err := r.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revenue := &domain.MonthlyRevenue{Year: year}
	for rows.Next() {
		var month int
		var total int64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, err
		}
		if month >= 1 && month <= 12 {
			revenue.Months[month-1] = total
		}
	}
	return revenue, rows.Err()
}

func (r *paymentRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
	          WHERE status = 'OVERDUE' OR (status = 'PENDING' AND due_date < $1)
	          ORDER BY due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) MarkOverdue(ctx context.Context, asOf time.Time) ([]string, error) {
	query := `UPDATE payments SET status = 'OVERDUE', updated_at = $1
	          WHERE status = 'PENDING' AND due_date < $1
	          RETURNING id`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	p := &domain.Payment{}
	var receipt, description sql.NullString
	err := row.Scan(&p.ID, &p.BoarderID, &p.AmountCents, &p.Type, &p.Status,
		&p.DueDate, &p.PaidDate, &receipt, &description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ReceiptNumber = receipt.String
	p.Description = description.String
	return p, nil
}
