package email

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"novalib-backend/pkg/logger"
)

// OTPEmailData carries everything needed to render the verification mail.
type OTPEmailData struct {
	Email     string
	FirstName string
	Code      string
	ExpiresIn time.Duration
}

// EmailService sends mail on the request path. Delivery failure is the
// caller's failure: OTP issuance aborts when the mail cannot be sent.
type EmailService interface {
	SendOTPEmail(ctx context.Context, data OTPEmailData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	msg := otpMessage(s.smtpFrom, data)

	err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg)
	if err != nil {
		logger.Error("failed to send OTP email", err)
		return fmt.Errorf("send otp email: %w", err)
	}

	return nil
}

func otpMessage(from string, data OTPEmailData) []byte {
	subject := "NovaLib verification code"
	body := fmt.Sprintf(`Please verify your identity, %s

Here is your NovaLib verification code:

%s

This code is valid for %s and can only be used once.

Please don't share this code with anyone: we'll never ask for it on the phone or via email.

Thanks,
The NovaLib Team`, data.FirstName, data.Code, formatExpiry(data.ExpiresIn))

	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, data.Email, subject, body))
}

func formatExpiry(d time.Duration) string {
	minutes := int(d.Minutes())
	switch {
	case minutes < 1:
		return "less than a minute"
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
