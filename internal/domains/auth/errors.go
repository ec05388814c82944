package auth

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidOrExpired = errors.New("invalid or expired OTP")
	ErrNoLoginRecord    = errors.New("no login record found for this user")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrTooManyRequests  = errors.New("too many OTP requests")
	ErrEmailDelivery    = errors.New("failed to send OTP email")
)
