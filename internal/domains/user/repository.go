package user

import (
	"context"
	"time"
)

// Repository is the user data access contract.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByBarcode(ctx context.Context, barcode string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]User, error)

	// Resolve returns the users matching any of the supplied
	// identifiers (OR semantics). Empty identifiers resolve to nil.
	Resolve(ctx context.Context, q Identifiers) ([]User, error)

	// SetOTP stores the hashed one-time code and its issuance time.
	SetOTP(ctx context.Context, id int64, otpHash string, createdAt time.Time) error

	// ClearOTP wipes the OTP fields after a successful verification.
	ClearOTP(ctx context.Context, id int64) error
}

// DepartmentRepository is the department data access contract.
type DepartmentRepository interface {
	CreateDepartment(ctx context.Context, d *Department) error
	ListDepartments(ctx context.Context) ([]Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}
