package catalog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novalib-backend/internal/domains/user"
)

// BookLogQuery is the parsed form of the legacy /book-log/ and
// /user-wishlist/ query strings.
type BookLogQuery struct {
	Search      string
	Identifiers user.Identifiers
	Wishlist    bool
	// Available is a tri-state availability filter: nil means default
	// behavior for the active mode.
	Available *bool
}

type CreateEntryRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

func (r CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.Length(0, 255)),
	)
}

type UpdateEntryRequest struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
}

type CreateCopyRequest struct {
	Barcode string `json:"barcode"`
	EntryID int64  `json:"entry_id"`
}

func (r CreateCopyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Barcode, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.EntryID, validation.Required),
	)
}

type CheckoutRequest struct {
	UserID     int64      `json:"user_id"`
	IssuedDate *time.Time `json:"issued_date,omitempty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
	)
}

type WishlistRequest struct {
	EntryID int64 `json:"entry_id"`
	UserID  int64 `json:"user_id"`
}

func (r WishlistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EntryID, validation.Required),
		validation.Field(&r.UserID, validation.Required),
	)
}
