package service

import (
	"context"
	"time"

	"novalib-backend/internal/domains/catalog"
	"novalib-backend/internal/domains/user"
	"novalib-backend/pkg/logger"
)

// CatalogService drives catalog CRUD, circulation and the legacy feed
// queries. User resolution is delegated to the user repository so the
// feed endpoints accept any of the historical identifier params.
type CatalogService struct {
	repo  catalog.Repository
	users user.Repository
	now   func() time.Time
}

func NewCatalogService(repo catalog.Repository, users user.Repository) *CatalogService {
	return &CatalogService{repo: repo, users: users, now: time.Now}
}

// ========================================
// ENTRIES & COPIES
// ========================================

func (s *CatalogService) CreateEntry(ctx context.Context, req catalog.CreateEntryRequest) (*catalog.CatalogEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	e := &catalog.CatalogEntry{Title: req.Title, Author: req.Author}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *CatalogService) GetEntry(ctx context.Context, id int64) (*catalog.CatalogEntry, error) {
	return s.repo.FindEntry(ctx, id)
}

func (s *CatalogService) UpdateEntry(ctx context.Context, id int64, req catalog.UpdateEntryRequest) (*catalog.CatalogEntry, error) {
	e, err := s.repo.FindEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Author != nil {
		e.Author = *req.Author
	}
	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *CatalogService) DeleteEntry(ctx context.Context, id int64) error {
	return s.repo.DeleteEntry(ctx, id)
}

func (s *CatalogService) ListEntries(ctx context.Context, search string) ([]catalog.CatalogEntry, error) {
	return s.repo.ListEntries(ctx, search)
}

func (s *CatalogService) CreateCopy(ctx context.Context, req catalog.CreateCopyRequest) (*catalog.Copy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &catalog.Copy{Barcode: req.Barcode, EntryID: req.EntryID}
	if err := s.repo.CreateCopy(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetCopy(ctx context.Context, id int64) (*catalog.Copy, error) {
	return s.repo.FindCopy(ctx, id)
}

func (s *CatalogService) DeleteCopy(ctx context.Context, id int64) error {
	return s.repo.DeleteCopy(ctx, id)
}

func (s *CatalogService) ListCopiesByEntry(ctx context.Context, entryID int64) ([]catalog.Copy, error) {
	return s.repo.ListCopiesByEntry(ctx, entryID)
}

// ========================================
// CIRCULATION
// ========================================

// Checkout claims the copy for the user. The issued date defaults to
// now; the update fails if another holder got there first.
func (s *CatalogService) Checkout(ctx context.Context, copyID int64, req catalog.CheckoutRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	issued := req.IssuedDate
	if issued == nil {
		t := s.now()
		issued = &t
	}

	if err := s.repo.Checkout(ctx, copyID, req.UserID, issued, req.ReturnDate); err != nil {
		return err
	}

	logger.Info("copy checked out", map[string]interface{}{
		"copy_id": copyID,
		"user_id": req.UserID,
	})
	return nil
}

func (s *CatalogService) Return(ctx context.Context, copyID int64) error {
	if err := s.repo.Return(ctx, copyID); err != nil {
		return err
	}
	logger.Info("copy returned", map[string]interface{}{"copy_id": copyID})
	return nil
}

func (s *CatalogService) AddToWishlist(ctx context.Context, req catalog.WishlistRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.AddToWishlist(ctx, req.EntryID, req.UserID)
}

func (s *CatalogService) RemoveFromWishlist(ctx context.Context, req catalog.WishlistRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.RemoveFromWishlist(ctx, req.EntryID, req.UserID)
}

// ========================================
// LEGACY FEEDS
// ========================================

// ListBookLog resolves the query's identifiers to users and returns
// the circulation rows they scope. With no identifiers at all the feed
// covers the whole stock.
func (s *CatalogService) ListBookLog(ctx context.Context, q catalog.BookLogQuery) ([]catalog.BookLogRow, error) {
	userIDs, err := s.resolveUserIDs(ctx, q.Identifiers)
	if err != nil {
		return nil, err
	}
	// Identifiers that match nobody scope the feed to nothing rather
	// than falling back to the global view.
	if !q.Identifiers.Empty() && len(userIDs) == 0 {
		return []catalog.BookLogRow{}, nil
	}

	rows, err := s.repo.BookLog(ctx, q, userIDs)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []catalog.BookLogRow{}
	}
	return rows, nil
}

// ListUserWishlist returns the wishlist rows for the resolved users.
// When no user resolves the result is empty, not an error.
func (s *CatalogService) ListUserWishlist(ctx context.Context, search string, ids user.Identifiers) ([]catalog.WishlistRow, error) {
	userIDs, err := s.resolveUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return []catalog.WishlistRow{}, nil
	}

	rows, err := s.repo.UserWishlist(ctx, search, userIDs)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []catalog.WishlistRow{}
	}
	return rows, nil
}

func (s *CatalogService) resolveUserIDs(ctx context.Context, ids user.Identifiers) ([]int64, error) {
	if ids.Empty() {
		return nil, nil
	}
	users, err := s.users.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(users))
	for i := range users {
		out = append(out, users[i].ID)
	}
	return out, nil
}
