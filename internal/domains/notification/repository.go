package notification

import (
	"context"

	"github.com/google/uuid"
)

// FeedEntry is a notification joined with its author's name parts,
// as read for the legacy feeds.
type FeedEntry struct {
	Notification
	AuthorFirstName string
	AuthorLastName  string
	AuthorBarcode   string
}

// Repository persists notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CodeExists(ctx context.Context, code string) (bool, error)

	// ListByChannel returns the channel's feed newest-first, with the
	// author columns needed for the display-name fallback.
	ListByChannel(ctx context.Context, ch Channel) ([]FeedEntry, error)
}
