package catalog

import (
	"context"
	"time"
)

// Repository is the catalog and circulation data access contract.
type Repository interface {
	// Entries
	CreateEntry(ctx context.Context, e *CatalogEntry) error
	FindEntry(ctx context.Context, id int64) (*CatalogEntry, error)
	UpdateEntry(ctx context.Context, e *CatalogEntry) error
	DeleteEntry(ctx context.Context, id int64) error
	ListEntries(ctx context.Context, search string) ([]CatalogEntry, error)

	// Copies
	CreateCopy(ctx context.Context, c *Copy) error
	FindCopy(ctx context.Context, id int64) (*Copy, error)
	DeleteCopy(ctx context.Context, id int64) error
	ListCopiesByEntry(ctx context.Context, entryID int64) ([]Copy, error)

	// Circulation. Checkout only succeeds when the copy has no holder.
	Checkout(ctx context.Context, copyID, userID int64, issued, due *time.Time) error
	Return(ctx context.Context, copyID int64) error

	// Wishlist
	AddToWishlist(ctx context.Context, entryID, userID int64) error
	RemoveFromWishlist(ctx context.Context, entryID, userID int64) error

	// Legacy feed queries. userIDs scope the result; semantics depend
	// on the query's wishlist flag and availability filter.
	BookLog(ctx context.Context, q BookLogQuery, userIDs []int64) ([]BookLogRow, error)
	UserWishlist(ctx context.Context, search string, userIDs []int64) ([]WishlistRow, error)
}
