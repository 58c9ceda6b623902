package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/otp-auth-api/internal/domain"
)

// OTPStore is a mutex-guarded in-process one-time code store. It backs local
// development (STORAGE_BACKEND=memory) and is the fake injected in tests.
type OTPStore struct {
	mu    sync.Mutex
	codes map[string]domain.OneTimeCode
}

func NewOTPStore() *OTPStore {
	return &OTPStore{codes: make(map[string]domain.OneTimeCode)}
}

func (s *OTPStore) Put(_ context.Context, c *domain.OneTimeCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[c.Destination] = *c
	return nil
}

// Take removes and returns the pending code for a destination. The mutex makes
// the read-and-delete atomic: of N racing Takes, exactly one gets the entry.
func (s *OTPStore) Take(_ context.Context, destination string) (*domain.OneTimeCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[destination]
	if !ok {
		return nil, fmt.Errorf("one-time code not found: %w", domain.ErrNotFound)
	}
	delete(s.codes, destination)
	return &c, nil
}
