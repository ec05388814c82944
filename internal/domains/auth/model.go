package auth

import "time"

// Login records one sign-in attempt. A row is written when a code is
// sent; Authorized flips to true when the code is verified.
type Login struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ClientIP   string    `json:"client_ip"`
	Authorized bool      `json:"authorized"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	// OTPLength is the number of digits in a one-time code.
	OTPLength = 6

	// OTPTTL is how long a code stays valid after issuance.
	OTPTTL = 5 * time.Minute

	// MaxOTPRequests caps code requests per user inside ThrottleWindow.
	MaxOTPRequests = 5

	// ThrottleWindow is the sliding window for MaxOTPRequests.
	ThrottleWindow = 15 * time.Minute
)
