package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"novalib-backend/internal/domains/returndesk"
	"novalib-backend/internal/infrastructure/database"
)

// PostgresReturnDeskRepository implements returndesk.Repository.
type PostgresReturnDeskRepository struct {
	db database.PgxPool
}

func NewPostgresReturnDeskRepository(db database.PgxPool) *PostgresReturnDeskRepository {
	return &PostgresReturnDeskRepository{db: db}
}

var _ returndesk.Repository = (*PostgresReturnDeskRepository)(nil)

func (r *PostgresReturnDeskRepository) Create(ctx context.Context, e *returndesk.Entry) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO return_desk (student_id, book, fine, otp, otp_expired)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.StudentID, e.Book, e.Fine, e.OTP, e.OTPExpired,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return returndesk.ErrStudentNotFound
		}
		return fmt.Errorf("create return desk entry: %w", err)
	}
	return nil
}

func (r *PostgresReturnDeskRepository) ListByStudent(ctx context.Context, studentID int64) ([]returndesk.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, student_id, book, fine, otp, otp_expired, created_at
		 FROM return_desk
		 WHERE student_id = $1
		 ORDER BY created_at DESC, id DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("list return desk entries: %w", err)
	}
	defer rows.Close()

	var out []returndesk.Entry
	for rows.Next() {
		var e returndesk.Entry
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Book, &e.Fine, &e.OTP, &e.OTPExpired, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan return desk entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresReturnDeskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM return_desk WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete return desk entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return returndesk.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresReturnDeskRepository) DueFine(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(fine), 0) FROM return_desk WHERE student_id = $1`,
		studentID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("due fine: %w", err)
	}
	return total, nil
}
