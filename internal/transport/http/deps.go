package http

import (
	"github.com/otp-auth-api/internal/application/auth"
	"github.com/otp-auth-api/internal/application/otp"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
)

// Deps holds all infrastructure dependencies for the router. Stores arrive as
// the interfaces the application layer consumes, so the DynamoDB and in-memory
// implementations are interchangeable here.
type Deps struct {
	UserRepo         auth.UserStore
	OTPStore         otp.Store
	RefreshTokenRepo auth.RefreshTokenStore
	SMSSender        otp.SMSSender
	JWTProvider      *jwtinfra.Provider
}
