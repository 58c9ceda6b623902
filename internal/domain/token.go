package domain

import "time"

// RefreshTokenRecord maps an issued refresh token to its user. The store, not
// the token's own claims, is authoritative: a token absent from the store is
// invalid no matter what its signature says.
type RefreshTokenRecord struct {
	Token     string    `json:"-" dynamodbav:"token"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds, used as DynamoDB TTL
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

// TokenPair is the result of a completed login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Principal is the request-scoped identity derived from a validated access
// token. Never persisted.
type Principal struct {
	UserID string `json:"user_id"`
	Phone  string `json:"phone"`
}
