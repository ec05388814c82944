package auth

import "context"

// LoginRepository persists sign-in attempt rows.
type LoginRepository interface {
	// Create inserts an unauthorized login row for the user.
	Create(ctx context.Context, l *Login) error

	// LatestByUser returns the most recent login row for the user, or
	// ErrNoLoginRecord when the user has never requested a code.
	LatestByUser(ctx context.Context, userID int64) (*Login, error)

	// MarkAuthorized flips the most recent login row for the user to
	// authorized. Older rows are left untouched.
	MarkAuthorized(ctx context.Context, userID int64) error
}
