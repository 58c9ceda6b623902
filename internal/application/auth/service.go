package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/otp-auth-api/internal/application/otp"
	"github.com/otp-auth-api/internal/domain"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
	"github.com/otp-auth-api/internal/pkg/password"
)

type InitiateLoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VerifyLoginRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,numeric"`
}

// UserStore is the read-only credential lookup this service consumes.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.UserCredential, error)
	GetByPhone(ctx context.Context, phone string) (*domain.UserCredential, error)
}

// RefreshTokenStore persists issued refresh tokens. The store is authoritative:
// absence means invalid, whatever the token's own claims say.
type RefreshTokenStore interface {
	Save(ctx context.Context, rec *domain.RefreshTokenRecord) error
	Find(ctx context.Context, token string) (*domain.RefreshTokenRecord, error)
	Delete(ctx context.Context, token string) error
}

// TokenProvider signs and verifies the two token kinds.
type TokenProvider interface {
	SignAccess(userID, phone string) (string, error)
	SignRefresh(userID, phone string) (string, error)
	Verify(token string, use jwtinfra.TokenUse) (*jwtinfra.Claims, error)
	RefreshTTL() time.Duration
}

// Service orchestrates the two-phase login flow: password check then OTP,
// ending in a signed token pair. Logout revokes the refresh token only —
// access tokens already issued stay valid until their own expiry.
type Service interface {
	InitiateLogin(ctx context.Context, req InitiateLoginRequest) error
	VerifyLogin(ctx context.Context, req VerifyLoginRequest) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(token string) (*domain.Principal, error)
}

type ServiceDeps struct {
	UserRepo         UserStore
	RefreshTokenRepo RefreshTokenStore
	OTPService       otp.Service
	TokenProvider    TokenProvider
}

type service struct {
	userRepo         UserStore
	refreshTokenRepo RefreshTokenStore
	otpSvc           otp.Service
	tokens           TokenProvider
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:         deps.UserRepo,
		refreshTokenRepo: deps.RefreshTokenRepo,
		otpSvc:           deps.OTPService,
		tokens:           deps.TokenProvider,
	}
}

// InitiateLogin verifies the password and, on success, issues and sends a
// one-time code. Unknown phone, disabled account and wrong password all
// collapse to ErrInvalidCredentials so the endpoint cannot be used to probe
// which phone numbers have accounts.
func (s *service) InitiateLogin(ctx context.Context, req InitiateLoginRequest) error {
	u, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", domain.ErrInvalidCredentials)
	}
	if !u.Enable {
		return fmt.Errorf("account disabled: %w", domain.ErrInvalidCredentials)
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return fmt.Errorf("password mismatch: %w", domain.ErrInvalidCredentials)
	}
	return s.otpSvc.IssueAndSend(ctx, req.Phone)
}

// VerifyLogin consumes the one-time code and issues the token pair. The user
// is re-fetched after the consume: the account can vanish between phases, and
// that narrow race is the only path that reports ErrNotFound to the caller.
func (s *service) VerifyLogin(ctx context.Context, req VerifyLoginRequest) (*domain.TokenPair, error) {
	if err := s.otpSvc.VerifyAndConsume(ctx, req.Phone, req.OTP); err != nil {
		return nil, err
	}
	u, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("user vanished after OTP: %w", domain.ErrNotFound)
	}
	accessToken, err := s.tokens.SignAccess(u.UserID, u.Phone)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.SignRefresh(u.UserID, u.Phone)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec := &domain.RefreshTokenRecord{
		Token:     refreshToken,
		UserID:    u.UserID,
		ExpiresAt: now.Add(s.tokens.RefreshTTL()).Unix(),
		CreatedAt: now,
	}
	if err := s.refreshTokenRepo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout deletes the refresh token unconditionally. Idempotent — revoking a
// token that was never issued or is already gone is not an error.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokenRepo.Delete(ctx, refreshToken); err != nil {
		slog.Warn("failed to delete refresh token on logout", "err", err)
		return err
	}
	return nil
}

// ValidateAccessToken is a pure function of the token provider: signature and
// expiry only, no store lookup.
func (s *service) ValidateAccessToken(token string) (*domain.Principal, error) {
	claims, err := s.tokens.Verify(token, jwtinfra.UseAccess)
	if err != nil {
		return nil, err
	}
	return &domain.Principal{UserID: claims.Subject, Phone: claims.Phone}, nil
}
