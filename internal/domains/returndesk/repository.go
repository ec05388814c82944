package returndesk

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository persists return desk entries.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByStudent(ctx context.Context, studentID int64) ([]Entry, error)
	Delete(ctx context.Context, id int64) error

	// DueFine sums the student's fines; zero when no rows exist.
	DueFine(ctx context.Context, studentID int64) (decimal.Decimal, error)
}
