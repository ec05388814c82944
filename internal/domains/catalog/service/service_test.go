package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novalib-backend/internal/domains/catalog"
	"novalib-backend/internal/domains/user"
)

// ========================================
// fakes
// ========================================

type fakeCatalogRepo struct {
	catalog.Repository

	checkoutCopy   int64
	checkoutUser   int64
	checkoutIssued *time.Time
	checkoutDue    *time.Time

	bookLogQuery   catalog.BookLogQuery
	bookLogUserIDs []int64
	bookLogRows    []catalog.BookLogRow

	wishlistUserIDs []int64
	wishlistRows    []catalog.WishlistRow
}

func (f *fakeCatalogRepo) Checkout(ctx context.Context, copyID, userID int64, issued, due *time.Time) error {
	f.checkoutCopy = copyID
	f.checkoutUser = userID
	f.checkoutIssued = issued
	f.checkoutDue = due
	return nil
}

func (f *fakeCatalogRepo) BookLog(ctx context.Context, q catalog.BookLogQuery, userIDs []int64) ([]catalog.BookLogRow, error) {
	f.bookLogQuery = q
	f.bookLogUserIDs = userIDs
	return f.bookLogRows, nil
}

func (f *fakeCatalogRepo) UserWishlist(ctx context.Context, search string, userIDs []int64) ([]catalog.WishlistRow, error) {
	f.wishlistUserIDs = userIDs
	return f.wishlistRows, nil
}

type fakeUserRepo struct {
	user.Repository

	resolved []user.User
}

func (f *fakeUserRepo) Resolve(ctx context.Context, q user.Identifiers) ([]user.User, error) {
	return f.resolved, nil
}

// ========================================
// tests
// ========================================

func TestCheckoutDefaultsIssuedDate(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := NewCatalogService(repo, &fakeUserRepo{})
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	err := svc.Checkout(context.Background(), 5, catalog.CheckoutRequest{UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(5), repo.checkoutCopy)
	assert.Equal(t, int64(7), repo.checkoutUser)
	require.NotNil(t, repo.checkoutIssued)
	assert.Equal(t, fixed, *repo.checkoutIssued)
	assert.Nil(t, repo.checkoutDue)
}

func TestCheckoutKeepsExplicitDates(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := NewCatalogService(repo, &fakeUserRepo{})
	issued := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	due := issued.AddDate(0, 0, 14)

	err := svc.Checkout(context.Background(), 5, catalog.CheckoutRequest{
		UserID: 7, IssuedDate: &issued, ReturnDate: &due,
	})
	require.NoError(t, err)
	assert.Equal(t, issued, *repo.checkoutIssued)
	assert.Equal(t, due, *repo.checkoutDue)
}

func TestCheckoutRequiresUser(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogRepo{}, &fakeUserRepo{})

	err := svc.Checkout(context.Background(), 5, catalog.CheckoutRequest{})
	assert.Error(t, err)
}

func TestListBookLogUnresolvedIdentifiersYieldEmpty(t *testing.T) {
	repo := &fakeCatalogRepo{bookLogRows: []catalog.BookLogRow{{BookTitle: "Dune"}}}
	svc := NewCatalogService(repo, &fakeUserRepo{resolved: nil})

	rows, err := svc.ListBookLog(context.Background(), catalog.BookLogQuery{
		Identifiers: user.Identifiers{Barcode: "NOPE"},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, repo.bookLogUserIDs, "repo must not be asked for the global view")
}

func TestListBookLogGlobalWhenNoIdentifiers(t *testing.T) {
	repo := &fakeCatalogRepo{bookLogRows: []catalog.BookLogRow{{BookTitle: "Dune"}}}
	svc := NewCatalogService(repo, &fakeUserRepo{})

	rows, err := svc.ListBookLog(context.Background(), catalog.BookLogQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Nil(t, repo.bookLogUserIDs)
}

func TestListBookLogPassesResolvedUsers(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := NewCatalogService(repo, &fakeUserRepo{resolved: []user.User{{ID: 7}, {ID: 9}}})

	rows, err := svc.ListBookLog(context.Background(), catalog.BookLogQuery{
		Identifiers: user.Identifiers{Username: "Ada"},
	})
	require.NoError(t, err)
	assert.NotNil(t, rows, "nil repo result still serializes as an empty array")
	assert.Equal(t, []int64{7, 9}, repo.bookLogUserIDs)
}

func TestListUserWishlistEmptyWhenNobodyResolves(t *testing.T) {
	repo := &fakeCatalogRepo{wishlistRows: []catalog.WishlistRow{{BookTitle: "Dune"}}}
	svc := NewCatalogService(repo, &fakeUserRepo{resolved: nil})

	rows, err := svc.ListUserWishlist(context.Background(), "", user.Identifiers{Email: "x@y.z"})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Nil(t, repo.wishlistUserIDs, "repo must not be queried")
}

func TestListUserWishlistPassesUsers(t *testing.T) {
	repo := &fakeCatalogRepo{wishlistRows: []catalog.WishlistRow{{BookTitle: "Dune"}}}
	svc := NewCatalogService(repo, &fakeUserRepo{resolved: []user.User{{ID: 7}}})

	rows, err := svc.ListUserWishlist(context.Background(), "dune", user.Identifiers{Barcode: "LIB-001"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []int64{7}, repo.wishlistUserIDs)
}
