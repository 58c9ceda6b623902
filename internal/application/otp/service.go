package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/otp-auth-api/internal/domain"
)

// Store persists pending one-time codes. Take must be atomic with respect to
// concurrent calls for the same destination: it removes the entry and returns
// it, so exactly one of several racing consumers observes it.
type Store interface {
	Put(ctx context.Context, c *domain.OneTimeCode) error
	Take(ctx context.Context, destination string) (*domain.OneTimeCode, error)
}

// SMSSender delivers the code out of band.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type Service interface {
	// IssueAndSend generates a fresh code for the destination, stores it
	// (superseding any pending code) and hands it to the delivery channel.
	// A delivery failure surfaces as domain.ErrDeliveryUnavailable; the stored
	// code survives it, so a later verify with the code still works.
	IssueAndSend(ctx context.Context, destination string) error
	// VerifyAndConsume checks a submitted code. Whatever the outcome, a stored
	// entry never survives the call: a match consumes it, and a mismatch or
	// expired entry is discarded so the caller must re-initiate.
	VerifyAndConsume(ctx context.Context, destination, submitted string) error
}

type ServiceDeps struct {
	Store      Store
	Sender     SMSSender
	TTL        time.Duration
	CodeLength int
}

type service struct {
	store      Store
	sender     SMSSender
	ttl        time.Duration
	codeLength int
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:      deps.Store,
		sender:     deps.Sender,
		ttl:        deps.TTL,
		codeLength: deps.CodeLength,
	}
}

func (s *service) IssueAndSend(ctx context.Context, destination string) error {
	code, err := generateCode(s.codeLength)
	if err != nil {
		return err
	}
	c := &domain.OneTimeCode{
		Destination: destination,
		Code:        code,
		ExpiresAt:   time.Now().Add(s.ttl).Unix(),
	}
	if err := s.store.Put(ctx, c); err != nil {
		return err
	}
	if err := s.sender.SendSMS(ctx, destination, "Your verification code: "+code); err != nil {
		return fmt.Errorf("send code: %v: %w", err, domain.ErrDeliveryUnavailable)
	}
	return nil
}

func (s *service) VerifyAndConsume(ctx context.Context, destination, submitted string) error {
	c, err := s.store.Take(ctx, destination)
	if err != nil {
		return fmt.Errorf("no pending code: %w", domain.ErrInvalidOrExpiredOTP)
	}
	if c.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("code expired: %w", domain.ErrInvalidOrExpiredOTP)
	}
	if c.Code != submitted {
		return fmt.Errorf("code mismatch: %w", domain.ErrInvalidOrExpiredOTP)
	}
	return nil
}

// generateCode draws a code uniformly from the full n-digit space, leading
// zeros included.
func generateCode(n int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < n; i++ {
		max.Mul(max, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
