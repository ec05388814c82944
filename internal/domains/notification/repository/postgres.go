package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"novalib-backend/internal/domains/notification"
	"novalib-backend/internal/infrastructure/database"
)

// PostgresNotificationRepository implements notification.Repository.
type PostgresNotificationRepository struct {
	db database.PgxPool
}

func NewPostgresNotificationRepository(db database.PgxPool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

var _ notification.Repository = (*PostgresNotificationRepository)(nil)

func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO notifications (id, code, channel, title, message, uploaded_by, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		n.ID, n.Code, string(n.Channel), n.Title, n.Message, n.UploadedBy, n.ImageURL,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *PostgresNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	var ch string
	err := r.db.QueryRow(ctx,
		`SELECT id, code, channel, title, message, uploaded_by, image_url, created_at
		 FROM notifications WHERE id = $1`, id,
	).Scan(&n.ID, &n.Code, &ch, &n.Title, &n.Message, &n.UploadedBy, &n.ImageURL, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	n.Channel = notification.Channel(ch)
	return &n, nil
}

func (r *PostgresNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotFound
	}
	return nil
}

func (r *PostgresNotificationRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notifications WHERE code = $1)`, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("code exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresNotificationRepository) ListByChannel(ctx context.Context, ch notification.Channel) ([]notification.FeedEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT n.id, n.code, n.channel, n.title, n.message, n.uploaded_by,
			n.image_url, n.created_at,
			u.first_name, u.last_name, u.barcode
		 FROM notifications n
		 JOIN users u ON u.id = n.uploaded_by
		 WHERE n.channel = $1
		 ORDER BY n.created_at DESC, n.id`,
		string(ch))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []notification.FeedEntry
	for rows.Next() {
		var e notification.FeedEntry
		var chs string
		if err := rows.Scan(&e.ID, &e.Code, &chs, &e.Title, &e.Message, &e.UploadedBy,
			&e.ImageURL, &e.CreatedAt,
			&e.AuthorFirstName, &e.AuthorLastName, &e.AuthorBarcode); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		e.Channel = notification.Channel(chs)
		out = append(out, e)
	}
	return out, rows.Err()
}
