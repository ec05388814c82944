package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novalib-backend/internal/domains/catalog"
)

func errDuplicate() error {
	return &pgconn.PgError{Code: "23505"}
}

func newMockRepo(t *testing.T) (*PostgresCatalogRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresCatalogRepository(mock), mock
}

func TestCheckoutClaimsShelvedCopy(t *testing.T) {
	repo, mock := newMockRepo(t)
	issued := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("AND holder_id IS NULL")).
		WithArgs(int64(5), int64(7), &issued, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Checkout(context.Background(), 5, 7, &issued, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutHeldCopyIsUnavailable(t *testing.T) {
	repo, mock := newMockRepo(t)
	issued := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("AND holder_id IS NULL")).
		WithArgs(int64(5), int64(7), &issued, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Checkout(context.Background(), 5, 7, &issued, nil)
	assert.ErrorIs(t, err, catalog.ErrCopyUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutMissingCopy(t *testing.T) {
	repo, mock := newMockRepo(t)
	issued := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("AND holder_id IS NULL")).
		WithArgs(int64(99), int64(7), &issued, (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Checkout(context.Background(), 99, 7, &issued, nil)
	assert.ErrorIs(t, err, catalog.ErrCopyNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnClearsLoanFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET holder_id = NULL, issued_date = NULL, return_date = NULL")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Return(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookLogGlobalAvailableOnly(t *testing.T) {
	repo, mock := newMockRepo(t)

	avail := true
	mock.ExpectQuery("holder_id IS NULL").
		WillReturnRows(pgxmock.NewRows([]string{"title", "author", "issued_date", "return_date", "username"}).
			AddRow("Dune", "Frank Herbert", nil, nil, nil))

	rows, err := repo.BookLog(context.Background(), catalog.BookLogQuery{Available: &avail}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dune", rows[0].BookTitle)
	assert.Nil(t, rows[0].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookLogIssuedScopedToUsers(t *testing.T) {
	repo, mock := newMockRepo(t)
	issued := time.Now()
	name := "Ada Lovelace"

	mock.ExpectQuery(regexp.QuoteMeta("c.holder_id = ANY($1)")).
		WithArgs([]int64{7}).
		WillReturnRows(pgxmock.NewRows([]string{"title", "author", "issued_date", "return_date", "username"}).
			AddRow("Dune", "Frank Herbert", &issued, nil, &name))

	rows, err := repo.BookLog(context.Background(), catalog.BookLogQuery{}, []int64{7})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Username)
	assert.Equal(t, "Ada Lovelace", *rows[0].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookLogIssuedAndAvailableIntersect(t *testing.T) {
	repo, mock := newMockRepo(t)
	avail := true

	// A copy cannot be both held by someone and shelved, so the scoped
	// query keeps both predicates and matches nothing.
	mock.ExpectQuery(regexp.QuoteMeta("c.holder_id = ANY($1) AND c.holder_id IS NULL")).
		WithArgs([]int64{7}).
		WillReturnRows(pgxmock.NewRows([]string{"title", "author", "issued_date", "return_date", "username"}))

	rows, err := repo.BookLog(context.Background(), catalog.BookLogQuery{Available: &avail}, []int64{7})
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookLogIssuedAndUnavailable(t *testing.T) {
	repo, mock := newMockRepo(t)
	issued := time.Now()
	name := "Ada Lovelace"
	avail := false

	mock.ExpectQuery(regexp.QuoteMeta("c.holder_id = ANY($1) AND c.holder_id IS NOT NULL")).
		WithArgs([]int64{7}).
		WillReturnRows(pgxmock.NewRows([]string{"title", "author", "issued_date", "return_date", "username"}).
			AddRow("Dune", "Frank Herbert", &issued, nil, &name))

	rows, err := repo.BookLog(context.Background(), catalog.BookLogQuery{Available: &avail}, []int64{7})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dune", rows[0].BookTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookLogWishlistMode(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM wishlists WHERE user_id = ANY($1)")).
		WithArgs([]int64{7, 8}).
		WillReturnRows(pgxmock.NewRows([]string{"title", "author", "issued_date", "return_date", "username"}))

	rows, err := repo.BookLog(context.Background(), catalog.BookLogQuery{Wishlist: true}, []int64{7, 8})
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWishlistNoUsers(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows, err := repo.UserWishlist(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Nil(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWishlistRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	barcode := "BK-100"

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY lc.issued_date DESC NULLS LAST")).
		WithArgs([]int64{7}).
		WillReturnRows(pgxmock.NewRows([]string{"title", "author", "barcode", "issued_date", "return_date", "wishlist_users"}).
			AddRow("Dune", "Frank Herbert", &barcode, nil, nil, []string{"Ada Lovelace"}).
			AddRow("Emma", "Jane Austen", nil, nil, nil, []string{"Ada Lovelace", "Grace Hopper"}))

	rows, err := repo.UserWishlist(context.Background(), "", []int64{7})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BK-100", *rows[0].Barcode)
	assert.Nil(t, rows[1].Barcode, "entry with no copies carries null loan fields")
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, rows[1].WishlistUsers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWishlistSearchMatchesCopyBarcode(t *testing.T) {
	repo, mock := newMockRepo(t)
	barcode := "BK-100"

	mock.ExpectQuery(regexp.QuoteMeta("lc.barcode ILIKE '%' || $2 || '%'")).
		WithArgs([]int64{7}, "BK-1").
		WillReturnRows(pgxmock.NewRows([]string{"title", "author", "barcode", "issued_date", "return_date", "wishlist_users"}).
			AddRow("Dune", "Frank Herbert", &barcode, nil, nil, []string{"Ada Lovelace"}))

	rows, err := repo.UserWishlist(context.Background(), "BK-1", []int64{7})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BK-100", *rows[0].Barcode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCopyDuplicateBarcode(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO copies")).
		WithArgs("BK-100", int64(1)).
		WillReturnError(errDuplicate())

	err := repo.CreateCopy(context.Background(), &catalog.Copy{Barcode: "BK-100", EntryID: 1})
	assert.ErrorIs(t, err, catalog.ErrCopyBarcodeExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToWishlistIdempotent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT DO NOTHING")).
		WithArgs(int64(1), int64(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, repo.AddToWishlist(context.Background(), 1, 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
