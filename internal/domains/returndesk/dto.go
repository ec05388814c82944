package returndesk

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type CreateEntryRequest struct {
	StudentID  int64           `json:"student_id"`
	Book       string          `json:"book"`
	Fine       decimal.Decimal `json:"fine"`
	OTP        string          `json:"otp"`
	OTPExpired bool            `json:"otp_expired"`
}

func (r CreateEntryRequest) Validate() error {
	if r.Fine.IsNegative() {
		return ErrNegativeFine
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.StudentID, validation.Required),
		validation.Field(&r.Book, validation.Required, validation.Length(1, 255)),
	)
}
