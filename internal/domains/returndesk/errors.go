package returndesk

import "errors"

var (
	ErrEntryNotFound   = errors.New("return desk entry not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrNegativeFine    = errors.New("fine must not be negative")
)
