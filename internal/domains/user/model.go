package user

import (
	"strings"
	"time"
)

// User is a registered library member, looked up by the barcode on
// their membership card.
type User struct {
	ID           int64      `json:"id"`
	Barcode      string     `json:"barcode"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	DepartmentID *int64     `json:"department_id,omitempty"`
	OTPHash      *string    `json:"-"` // bcrypt hash, never exposed
	OTPCreatedAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DisplayName is "First Last", falling back to the barcode when both
// name parts are blank.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Barcode
	}
	return name
}

// Department groups users; referenced by User.DepartmentID.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
