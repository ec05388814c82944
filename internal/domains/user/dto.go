package user

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// USER DTOs
// ========================================

type CreateUserRequest struct {
	Barcode      string `json:"barcode" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"required"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Barcode,
			validation.Required.Error("barcode is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName, validation.Length(0, 100)),
		validation.Field(&r.Phone, validation.Length(0, 15)),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
	)
}

type UpdateUserRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.When(r.Email != nil && *r.Email != "", is.Email),
		),
	)
}

// UserDTO is the public user representation.
type UserDTO struct {
	ID           int64  `json:"id"`
	Barcode      string `json:"barcode"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:           u.ID,
		Barcode:      u.Barcode,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Email:        u.Email,
		DepartmentID: u.DepartmentID,
	}
}

// ========================================
// DEPARTMENT DTOs
// ========================================

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r CreateDepartmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
	)
}
