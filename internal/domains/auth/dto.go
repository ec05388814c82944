package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SendOTPRequest carries the barcode of the member requesting a code.
type SendOTPRequest struct {
	Barcode string `json:"barcode"`
}

func (r SendOTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Barcode, validation.Required),
	)
}

// VerifyOTPRequest carries the barcode and the code being checked.
type VerifyOTPRequest struct {
	Barcode string `json:"barcode"`
	OTP     string `json:"otp"`
}

func (r VerifyOTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Barcode, validation.Required),
		validation.Field(&r.OTP, validation.Required),
	)
}

// SendOTPResult is returned after a code has been emailed.
type SendOTPResult struct {
	Name  string
	Phone string
	Email string
}

// VerifyOTPResult is returned after a successful verification.
type VerifyOTPResult struct {
	Token string
}
