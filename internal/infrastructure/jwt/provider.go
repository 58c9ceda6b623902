package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/pkg/id"
)

// TokenUse discriminates the two token kinds signed with the shared secret.
// A refresh token presented where an access token is expected is rejected,
// and vice versa.
type TokenUse string

const (
	UseAccess  TokenUse = "access"
	UseRefresh TokenUse = "refresh"
)

// Verification failure kinds. All wrap domain.ErrTokenInvalid so callers map
// them to a single 401; the kinds themselves exist for diagnostics.
var (
	ErrMalformed        = fmt.Errorf("malformed token: %w", domain.ErrTokenInvalid)
	ErrSignatureInvalid = fmt.Errorf("signature invalid: %w", domain.ErrTokenInvalid)
	ErrExpired          = fmt.Errorf("token expired: %w", domain.ErrTokenInvalid)
	ErrWrongUse         = fmt.Errorf("wrong token use: %w", domain.ErrTokenInvalid)
)

// Claims holds the JWT payload fields. Subject carries the user ID; Phone is
// embedded so a Principal can be built without a store lookup.
type Claims struct {
	Phone    string   `json:"phone"`
	TokenUse TokenUse `json:"token_use"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a server-held secret.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &Provider{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

// RefreshTTL exposes the refresh token lifetime so the store record's expiry
// can match the token's own exp claim.
func (p *Provider) RefreshTTL() time.Duration { return p.refreshTTL }

func (p *Provider) SignAccess(userID, phone string) (string, error) {
	return p.sign(userID, phone, UseAccess, p.accessTTL)
}

func (p *Provider) SignRefresh(userID, phone string) (string, error) {
	return p.sign(userID, phone, UseRefresh, p.refreshTTL)
}

func (p *Provider) sign(userID, phone string, use TokenUse, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Phone:    phone,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        id.New(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks signature, structure and expiry, and that the token was issued
// for the expected use. Side-effect free — no store lookup is involved.
func (p *Provider) Verify(tokenStr string, use TokenUse) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrSignatureInvalid
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}
	if claims.TokenUse != use {
		return nil, ErrWrongUse
	}
	return claims, nil
}
