package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"novalib-backend/internal/domains/user"
	"novalib-backend/internal/infrastructure/database"
)

const userColumns = `u.id, u.barcode, u.first_name, u.last_name, u.phone, u.email,
		u.department_id, u.otp_hash, u.otp_created_at, u.created_at, u.updated_at`

// PostgresUserRepository implements user.Repository and
// user.DepartmentRepository on top of a pgx pool.
type PostgresUserRepository struct {
	db database.PgxPool
}

func NewPostgresUserRepository(db database.PgxPool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var _ user.Repository = (*PostgresUserRepository)(nil)
var _ user.DepartmentRepository = (*PostgresUserRepository)(nil)

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (barcode, first_name, last_name, phone, email, department_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		u.Barcode, u.FirstName, u.LastName, u.Phone, u.Email, u.DepartmentID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrBarcodeAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return user.ErrDepartmentNotFound
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE u.id = $1`, userColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresUserRepository) FindByBarcode(ctx context.Context, barcode string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE LOWER(u.barcode) = LOWER($1)`, userColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, barcode))
}

func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, email = $4,
		    department_id = $5, updated_at = NOW()
		WHERE id = $6`

	tag, err := r.db.Exec(ctx, query,
		u.FirstName, u.LastName, u.Phone, u.Email, u.DepartmentID, u.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return user.ErrDepartmentNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u ORDER BY u.id`, userColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *PostgresUserRepository) Resolve(ctx context.Context, q user.Identifiers) ([]user.User, error) {
	clause, args := user.ResolveClause(q, 1)
	if clause == "" {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE %s ORDER BY u.id`, userColumns, clause)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *PostgresUserRepository) SetOTP(ctx context.Context, id int64, otpHash string, createdAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET otp_hash = $1, otp_created_at = $2, updated_at = NOW() WHERE id = $3`,
		otpHash, createdAt, id)
	if err != nil {
		return fmt.Errorf("set otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) ClearOTP(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET otp_hash = NULL, otp_created_at = NULL, updated_at = NOW() WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ========================================
// DEPARTMENTS
// ========================================

func (r *PostgresUserRepository) CreateDepartment(ctx context.Context, d *user.Department) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (name) VALUES ($1) RETURNING id`, d.Name,
	).Scan(&d.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrDepartmentNameExists
		}
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) ListDepartments(ctx context.Context) ([]user.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var out []user.Department
	for rows.Next() {
		var d user.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) DeleteDepartment(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return user.ErrDepartmentInUse
		}
		return fmt.Errorf("delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrDepartmentNotFound
	}
	return nil
}

// ========================================
// helpers
// ========================================

func (r *PostgresUserRepository) scanOne(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Barcode, &u.FirstName, &u.LastName, &u.Phone, &u.Email,
		&u.DepartmentID, &u.OTPHash, &u.OTPCreatedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]user.User, error) {
	var out []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Barcode, &u.FirstName, &u.LastName, &u.Phone, &u.Email,
			&u.DepartmentID, &u.OTPHash, &u.OTPCreatedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
