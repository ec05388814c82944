package returndesk

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one book going through return processing at the desk,
// carrying whatever fine has accrued on it.
type Entry struct {
	ID         int64           `json:"id"`
	StudentID  int64           `json:"student_id"`
	Book       string          `json:"book"`
	Fine       decimal.Decimal `json:"fine"`
	OTP        string          `json:"otp,omitempty"`
	OTPExpired bool            `json:"otp_expired"`
	CreatedAt  time.Time       `json:"created_at"`
}
