package catalog

import "time"

// CatalogEntry is a title record; physical stock hangs off Copy rows.
type CatalogEntry struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Copy is one physical item of a catalog entry. A copy on loan has a
// holder; availability is always derived from that, never stored.
type Copy struct {
	ID         int64      `json:"id"`
	Barcode    string     `json:"barcode"`
	EntryID    int64      `json:"entry_id"`
	HolderID   *int64     `json:"holder_id,omitempty"`
	IssuedDate *time.Time `json:"issued_date,omitempty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// Available reports whether the copy is on the shelf.
func (c *Copy) Available() bool {
	return c.HolderID == nil
}

// BookLogRow is one flat circulation row as served to the legacy feed.
type BookLogRow struct {
	BookTitle  string     `json:"book_title"`
	BookAuthor string     `json:"book_author"`
	IssuedDate *time.Time `json:"issued_date"`
	ReturnDate *time.Time `json:"return_date"`
	Username   *string    `json:"username"`
}

// WishlistRow is one wishlisted title with its latest copy's loan
// details. Copy fields are nil when the entry has no copies at all.
type WishlistRow struct {
	BookTitle     string     `json:"book_title"`
	BookAuthor    string     `json:"book_author"`
	Barcode       *string    `json:"book_barcode"`
	IssuedDate    *time.Time `json:"issued_date"`
	ReturnDate    *time.Time `json:"return_date"`
	WishlistUsers []string   `json:"wishlist_users"`
}
