package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"novalib-backend/internal/domains/auth"
	"novalib-backend/internal/domains/user"
	"novalib-backend/internal/infrastructure/email"
	"novalib-backend/internal/shared/middleware"
	"novalib-backend/pkg/cache"
	"novalib-backend/pkg/jwt"
	"novalib-backend/pkg/logger"
)

// AuthService drives the barcode + emailed-code login flow.
type AuthService struct {
	users  user.Repository
	logins auth.LoginRepository
	mailer email.EmailService
	cache  cache.Cache
	tokens *jwt.Manager
	now    func() time.Time
}

func NewAuthService(
	users user.Repository,
	logins auth.LoginRepository,
	mailer email.EmailService,
	c cache.Cache,
	tokens *jwt.Manager,
) *AuthService {
	return &AuthService{
		users:  users,
		logins: logins,
		mailer: mailer,
		cache:  c,
		tokens: tokens,
		now:    time.Now,
	}
}

// IssueOTP generates a code for the member with the given barcode,
// emails it, and records an unauthorized login attempt. The email send
// is blocking; a delivery failure aborts the whole operation and no
// login row is written.
func (s *AuthService) IssueOTP(ctx context.Context, req auth.SendOTPRequest) (*auth.SendOTPResult, error) {
	if err := req.Validate(); err != nil {
		return nil, auth.ErrInvalidRequest
	}

	u, err := s.findUser(ctx, req.Barcode)
	if err != nil {
		return nil, err
	}

	if err := s.throttle(ctx, u.ID); err != nil {
		return nil, err
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash otp: %w", err)
	}

	issuedAt := s.now()
	if err := s.users.SetOTP(ctx, u.ID, string(hash), issuedAt); err != nil {
		return nil, err
	}

	if err := s.mailer.SendOTPEmail(ctx, email.OTPEmailData{
		Email:     u.Email,
		FirstName: u.FirstName,
		Code:      code,
		ExpiresIn: auth.OTPTTL,
	}); err != nil {
		logger.Error("otp email delivery failed", err)
		return nil, auth.ErrEmailDelivery
	}

	login := &auth.Login{
		UserID:   u.ID,
		ClientIP: middleware.GetClientIPFromContext(ctx),
	}
	if err := s.logins.Create(ctx, login); err != nil {
		return nil, err
	}

	logger.Info("otp issued", map[string]interface{}{
		"user_id":   u.ID,
		"client_ip": login.ClientIP,
	})

	return &auth.SendOTPResult{
		Name:  u.DisplayName(),
		Phone: u.Phone,
		Email: u.Email,
	}, nil
}

// VerifyOTP checks the submitted code against the stored hash. On
// success the latest login row is authorized, the code is cleared so
// it cannot be replayed, and a session token is returned.
func (s *AuthService) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (*auth.VerifyOTPResult, error) {
	if err := req.Validate(); err != nil {
		return nil, auth.ErrInvalidRequest
	}

	u, err := s.findUser(ctx, req.Barcode)
	if err != nil {
		return nil, err
	}

	// A user who never requested a code has no login row; report that
	// before judging the code itself.
	if _, err := s.logins.LatestByUser(ctx, u.ID); err != nil {
		return nil, err
	}

	if u.OTPHash == nil || u.OTPCreatedAt == nil {
		return nil, auth.ErrInvalidOrExpired
	}
	if s.now().Sub(*u.OTPCreatedAt) > auth.OTPTTL {
		return nil, auth.ErrInvalidOrExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.OTPHash), []byte(req.OTP)) != nil {
		return nil, auth.ErrInvalidOrExpired
	}

	if err := s.logins.MarkAuthorized(ctx, u.ID); err != nil {
		return nil, err
	}
	if err := s.users.ClearOTP(ctx, u.ID); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Barcode)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	logger.Info("otp verified", map[string]interface{}{"user_id": u.ID})

	return &auth.VerifyOTPResult{Token: token}, nil
}

func (s *AuthService) findUser(ctx context.Context, barcode string) (*user.User, error) {
	u, err := s.users.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// throttle enforces the per-user request cap via a Redis counter.
// Cache outages do not block logins.
func (s *AuthService) throttle(ctx context.Context, userID int64) error {
	key := fmt.Sprintf("otp:throttle:%d", userID)
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Warn("otp throttle unavailable", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, key, auth.ThrottleWindow); err != nil {
			logger.Warn("otp throttle expire failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if count > auth.MaxOTPRequests {
		return auth.ErrTooManyRequests
	}
	return nil
}
