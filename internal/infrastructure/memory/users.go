package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/otp-auth-api/internal/domain"
)

// UserStore is an in-process credential store. The auth core never writes
// users; Seed exists so local development and tests can plant credentials.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.UserCredential
	byPhone map[string]domain.UserCredential
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.UserCredential),
		byPhone: make(map[string]domain.UserCredential),
	}
}

// Seed inserts a credential, replacing any prior entry for the same phone.
func (s *UserStore) Seed(u domain.UserCredential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[u.UserID] = u
	s.byPhone[u.Phone] = u
}

// Remove deletes a credential by user ID. Test helper for the post-OTP
// user-vanished race.
func (s *UserStore) Remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[userID]; ok {
		delete(s.byPhone, u.Phone)
		delete(s.byID, userID)
	}
}

func (s *UserStore) Get(_ context.Context, userID string) (*domain.UserCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return &u, nil
}

func (s *UserStore) GetByPhone(_ context.Context, phone string) (*domain.UserCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byPhone[phone]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return &u, nil
}
