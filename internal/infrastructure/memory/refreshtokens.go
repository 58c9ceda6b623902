package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/otp-auth-api/internal/domain"
)

// RefreshTokenStore is a mutex-guarded in-process refresh token store.
type RefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]domain.RefreshTokenRecord
}

func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{tokens: make(map[string]domain.RefreshTokenRecord)}
}

func (s *RefreshTokenStore) Save(_ context.Context, rec *domain.RefreshTokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[rec.Token] = *rec
	return nil
}

func (s *RefreshTokenStore) Find(_ context.Context, token string) (*domain.RefreshTokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tokens[token]
	if !ok {
		return nil, fmt.Errorf("refresh token not found: %w", domain.ErrNotFound)
	}
	return &rec, nil
}

// Delete removes a refresh token. Deleting an absent token is not an error.
func (s *RefreshTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
