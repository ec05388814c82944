package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrBarcodeAlreadyExists = errors.New("barcode already exists")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department name already exists")
	ErrDepartmentInUse      = errors.New("department is referenced by users")
)
