package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"novalib-backend/internal/domains/auth"
	"novalib-backend/internal/infrastructure/database"
)

// PostgresLoginRepository implements auth.LoginRepository.
type PostgresLoginRepository struct {
	db database.PgxPool
}

func NewPostgresLoginRepository(db database.PgxPool) *PostgresLoginRepository {
	return &PostgresLoginRepository{db: db}
}

var _ auth.LoginRepository = (*PostgresLoginRepository)(nil)

func (r *PostgresLoginRepository) Create(ctx context.Context, l *auth.Login) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO logins (user_id, ip_address, authorized)
		 VALUES ($1, $2, $3)
		 RETURNING id, login_time`,
		l.UserID, l.ClientIP, l.Authorized,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create login: %w", err)
	}
	return nil
}

func (r *PostgresLoginRepository) LatestByUser(ctx context.Context, userID int64) (*auth.Login, error) {
	var l auth.Login
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, ip_address, authorized, login_time
		 FROM logins
		 WHERE user_id = $1
		 ORDER BY login_time DESC, id DESC
		 LIMIT 1`,
		userID,
	).Scan(&l.ID, &l.UserID, &l.ClientIP, &l.Authorized, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrNoLoginRecord
		}
		return nil, fmt.Errorf("latest login: %w", err)
	}
	return &l, nil
}

func (r *PostgresLoginRepository) MarkAuthorized(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE logins SET authorized = TRUE
		 WHERE id = (
			SELECT id FROM logins
			WHERE user_id = $1
			ORDER BY login_time DESC, id DESC
			LIMIT 1
		 )`,
		userID)
	if err != nil {
		return fmt.Errorf("mark authorized: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNoLoginRecord
	}
	return nil
}
