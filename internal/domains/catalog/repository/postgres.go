package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"novalib-backend/internal/domains/catalog"
	"novalib-backend/internal/infrastructure/database"
	"novalib-backend/internal/shared/utils"
)

// displayName mirrors user.DisplayName in SQL so feed rows carry the
// same fallback the Go side uses.
const displayName = `CASE WHEN BTRIM(%[1]s.first_name || ' ' || %[1]s.last_name) = ''
		THEN %[1]s.barcode
		ELSE BTRIM(%[1]s.first_name || ' ' || %[1]s.last_name) END`

// PostgresCatalogRepository implements catalog.Repository.
type PostgresCatalogRepository struct {
	db database.PgxPool
}

func NewPostgresCatalogRepository(db database.PgxPool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

var _ catalog.Repository = (*PostgresCatalogRepository)(nil)

// ========================================
// ENTRIES
// ========================================

func (r *PostgresCatalogRepository) CreateEntry(ctx context.Context, e *catalog.CatalogEntry) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO catalog_entries (title, author) VALUES ($1, $2) RETURNING id`,
		e.Title, e.Author,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

func (r *PostgresCatalogRepository) FindEntry(ctx context.Context, id int64) (*catalog.CatalogEntry, error) {
	var e catalog.CatalogEntry
	err := r.db.QueryRow(ctx,
		`SELECT id, title, author FROM catalog_entries WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return &e, nil
}

func (r *PostgresCatalogRepository) UpdateEntry(ctx context.Context, e *catalog.CatalogEntry) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE catalog_entries SET title = $1, author = $2 WHERE id = $3`,
		e.Title, e.Author, e.ID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresCatalogRepository) DeleteEntry(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM catalog_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrEntryNotFound
	}
	return nil
}

func (r *PostgresCatalogRepository) ListEntries(ctx context.Context, search string) ([]catalog.CatalogEntry, error) {
	query := `SELECT id, title, author FROM catalog_entries`
	var args []any
	if search != "" {
		query += ` WHERE title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY title`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []catalog.CatalogEntry
	for rows.Next() {
		var e catalog.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Author); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ========================================
// COPIES
// ========================================

func (r *PostgresCatalogRepository) CreateCopy(ctx context.Context, c *catalog.Copy) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO copies (barcode, entry_id) VALUES ($1, $2) RETURNING id`,
		c.Barcode, c.EntryID,
	).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return catalog.ErrCopyBarcodeExists
			case "23503":
				return catalog.ErrEntryNotFound
			}
		}
		return fmt.Errorf("create copy: %w", err)
	}
	return nil
}

func (r *PostgresCatalogRepository) FindCopy(ctx context.Context, id int64) (*catalog.Copy, error) {
	var c catalog.Copy
	err := r.db.QueryRow(ctx,
		`SELECT id, barcode, entry_id, holder_id, issued_date, return_date
		 FROM copies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Barcode, &c.EntryID, &c.HolderID, &c.IssuedDate, &c.ReturnDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrCopyNotFound
		}
		return nil, fmt.Errorf("find copy: %w", err)
	}
	return &c, nil
}

func (r *PostgresCatalogRepository) DeleteCopy(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM copies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete copy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrCopyNotFound
	}
	return nil
}

func (r *PostgresCatalogRepository) ListCopiesByEntry(ctx context.Context, entryID int64) ([]catalog.Copy, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, barcode, entry_id, holder_id, issued_date, return_date
		 FROM copies WHERE entry_id = $1 ORDER BY id`, entryID)
	if err != nil {
		return nil, fmt.Errorf("list copies: %w", err)
	}
	defer rows.Close()

	var out []catalog.Copy
	for rows.Next() {
		var c catalog.Copy
		if err := rows.Scan(&c.ID, &c.Barcode, &c.EntryID, &c.HolderID, &c.IssuedDate, &c.ReturnDate); err != nil {
			return nil, fmt.Errorf("scan copy: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ========================================
// CIRCULATION
// ========================================

// Checkout claims the copy with a conditional update so two
// concurrent checkouts of the same copy cannot both win.
func (r *PostgresCatalogRepository) Checkout(ctx context.Context, copyID, userID int64, issued, due *time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE copies
		 SET holder_id = $2, issued_date = $3, return_date = $4
		 WHERE id = $1 AND holder_id IS NULL`,
		copyID, userID, issued, due)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalog.ErrCopyNotFound
		}
		return fmt.Errorf("checkout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM copies WHERE id = $1)`, copyID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		if exists {
			return catalog.ErrCopyUnavailable
		}
		return catalog.ErrCopyNotFound
	}
	return nil
}

func (r *PostgresCatalogRepository) Return(ctx context.Context, copyID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE copies
		 SET holder_id = NULL, issued_date = NULL, return_date = NULL
		 WHERE id = $1`,
		copyID)
	if err != nil {
		return fmt.Errorf("return copy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrCopyNotFound
	}
	return nil
}

// ========================================
// WISHLIST
// ========================================

func (r *PostgresCatalogRepository) AddToWishlist(ctx context.Context, entryID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO wishlists (entry_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		entryID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalog.ErrEntryNotFound
		}
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

func (r *PostgresCatalogRepository) RemoveFromWishlist(ctx context.Context, entryID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM wishlists WHERE entry_id = $1 AND user_id = $2`,
		entryID, userID)
	if err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}

// ========================================
// LEGACY FEED QUERIES
// ========================================

// BookLog serves the flat circulation feed. Scoping depends on the
// query: wishlisted entries of the resolved users, copies held by
// them, or the whole stock when nobody resolved.
func (r *PostgresCatalogRepository) BookLog(ctx context.Context, q catalog.BookLogQuery, userIDs []int64) ([]catalog.BookLogRow, error) {
	query := fmt.Sprintf(
		`SELECT e.title, e.author, c.issued_date, c.return_date,
			CASE WHEN u.id IS NULL THEN NULL ELSE `+displayName+` END
		 FROM copies c
		 JOIN catalog_entries e ON e.id = c.entry_id
		 LEFT JOIN users u ON u.id = c.holder_id`, "u")

	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case q.Wishlist && len(userIDs) > 0:
		where = append(where, fmt.Sprintf(
			`c.entry_id IN (SELECT entry_id FROM wishlists WHERE user_id = ANY(%s))`,
			arg(userIDs)))
	case len(userIDs) > 0:
		// The availability filter narrows the holder scope rather than
		// replacing it, so available=true under a holder filter is the
		// empty intersection.
		where = append(where, fmt.Sprintf("c.holder_id = ANY(%s)", arg(userIDs)))
		if q.Available != nil {
			if *q.Available {
				where = append(where, "c.holder_id IS NULL")
			} else {
				where = append(where, "c.holder_id IS NOT NULL")
			}
		}
	default:
		if q.Available != nil {
			if *q.Available {
				where = append(where, "c.holder_id IS NULL")
			} else {
				where = append(where, "c.holder_id IS NOT NULL")
			}
		}
	}

	if q.Search != "" {
		p := arg(q.Search)
		where = append(where, fmt.Sprintf(
			`(e.title ILIKE '%%' || %[1]s || '%%' OR e.author ILIKE '%%' || %[1]s || '%%' OR c.barcode ILIKE '%%' || %[1]s || '%%')`,
			p))
	}

	if len(where) > 0 {
		query += " WHERE " + utils.JoinWithAnd(where)
	}
	query += " ORDER BY c.issued_date DESC NULLS LAST, c.id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("book log: %w", err)
	}
	defer rows.Close()

	var out []catalog.BookLogRow
	for rows.Next() {
		var row catalog.BookLogRow
		if err := rows.Scan(&row.BookTitle, &row.BookAuthor, &row.IssuedDate, &row.ReturnDate, &row.Username); err != nil {
			return nil, fmt.Errorf("scan book log row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UserWishlist lists the entries wishlisted by the resolved users,
// each with its most recently issued copy and the display names of
// everyone wishing for it.
func (r *PostgresCatalogRepository) UserWishlist(ctx context.Context, search string, userIDs []int64) ([]catalog.WishlistRow, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT e.title, e.author, lc.barcode, lc.issued_date, lc.return_date,
			(SELECT COALESCE(array_agg(`+displayName+` ORDER BY u2.id), '{}')
			 FROM wishlists w2
			 JOIN users u2 ON u2.id = w2.user_id
			 WHERE w2.entry_id = e.id)
		 FROM catalog_entries e
		 LEFT JOIN LATERAL (
			SELECT c.barcode, c.issued_date, c.return_date
			FROM copies c
			WHERE c.entry_id = e.id
			ORDER BY c.issued_date DESC NULLS LAST, c.id DESC
			LIMIT 1
		 ) lc ON TRUE
		 WHERE e.id IN (SELECT entry_id FROM wishlists WHERE user_id = ANY($1))`, "u2")

	args := []any{userIDs}
	if search != "" {
		query += ` AND (e.title ILIKE '%' || $2 || '%' OR e.author ILIKE '%' || $2 || '%' OR lc.barcode ILIKE '%' || $2 || '%')`
		args = append(args, search)
	}
	query += ` ORDER BY lc.issued_date DESC NULLS LAST, e.id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("user wishlist: %w", err)
	}
	defer rows.Close()

	var out []catalog.WishlistRow
	for rows.Next() {
		var row catalog.WishlistRow
		if err := rows.Scan(&row.BookTitle, &row.BookAuthor, &row.Barcode, &row.IssuedDate, &row.ReturnDate, &row.WishlistUsers); err != nil {
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
