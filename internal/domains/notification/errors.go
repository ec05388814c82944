package notification

import "errors"

var (
	ErrNotFound       = errors.New("notification not found")
	ErrInvalidChannel = errors.New("invalid notification channel")
	ErrCodeExhausted  = errors.New("could not generate a unique notification code")
	ErrInvalidImage   = errors.New("invalid image upload")
)
