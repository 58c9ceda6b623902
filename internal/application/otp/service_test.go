package otp

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- stubs ---

// recordingSender captures every message handed to the delivery channel.
type recordingSender struct {
	mu       sync.Mutex
	calls    []string
	messages []string
	err      error
}

func (s *recordingSender) SendSMS(_ context.Context, to, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, to)
	s.messages = append(s.messages, message)
	return s.err
}

func (s *recordingSender) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.messages)
	m := regexp.MustCompile(`\d+$`).FindString(s.messages[len(s.messages)-1])
	require.NotEmpty(t, m)
	return m
}

func newTestService(store Store, sender SMSSender) Service {
	return NewService(ServiceDeps{
		Store:      store,
		Sender:     sender,
		TTL:        5 * time.Minute,
		CodeLength: 6,
	})
}

// --- IssueAndSend ---

func TestIssueAndSend_DeliversSixDigitCodeOnce(t *testing.T) {
	store := memory.NewOTPStore()
	sender := &recordingSender{}
	svc := newTestService(store, sender)

	require.NoError(t, svc.IssueAndSend(context.Background(), "+15551234567"))

	require.Len(t, sender.calls, 1)
	assert.Equal(t, "+15551234567", sender.calls[0])
	assert.Regexp(t, `^\d{6}$`, sender.lastCode(t))
}

func TestIssueAndSend_DeliveryFailureKeepsStoredCode(t *testing.T) {
	store := memory.NewOTPStore()
	sender := &recordingSender{err: errors.New("sns is down")}
	svc := newTestService(store, sender)

	err := svc.IssueAndSend(context.Background(), "+15551234567")
	require.ErrorIs(t, err, domain.ErrDeliveryUnavailable)

	// Storage and delivery are decoupled: the code that failed to send still verifies.
	code := sender.lastCode(t)
	assert.NoError(t, svc.VerifyAndConsume(context.Background(), "+15551234567", code))
}

func TestIssueAndSend_NewCodeSupersedesPrevious(t *testing.T) {
	store := memory.NewOTPStore()
	sender := &recordingSender{}
	svc := newTestService(store, sender)

	require.NoError(t, svc.IssueAndSend(context.Background(), "+15551234567"))
	first := sender.lastCode(t)
	require.NoError(t, svc.IssueAndSend(context.Background(), "+15551234567"))
	second := sender.lastCode(t)

	if first == second {
		t.Skip("collision between independently drawn codes")
	}
	err := svc.VerifyAndConsume(context.Background(), "+15551234567", first)
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)
}

// --- VerifyAndConsume ---

func seed(t *testing.T, store Store, destination, code string, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), &domain.OneTimeCode{
		Destination: destination,
		Code:        code,
		ExpiresAt:   expiresAt.Unix(),
	}))
}

func TestVerifyAndConsume_SingleUse(t *testing.T) {
	store := memory.NewOTPStore()
	svc := newTestService(store, &recordingSender{})
	seed(t, store, "+15551234567", "482913", time.Now().Add(5*time.Minute))

	require.NoError(t, svc.VerifyAndConsume(context.Background(), "+15551234567", "482913"))

	err := svc.VerifyAndConsume(context.Background(), "+15551234567", "482913")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)
}

func TestVerifyAndConsume_Expired(t *testing.T) {
	store := memory.NewOTPStore()
	svc := newTestService(store, &recordingSender{})
	seed(t, store, "+15551234567", "482913", time.Now().Add(-time.Minute))

	err := svc.VerifyAndConsume(context.Background(), "+15551234567", "482913")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)
}

func TestVerifyAndConsume_Absent(t *testing.T) {
	store := memory.NewOTPStore()
	svc := newTestService(store, &recordingSender{})

	err := svc.VerifyAndConsume(context.Background(), "+15550000000", "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)
}

func TestVerifyAndConsume_MismatchBurnsPendingCode(t *testing.T) {
	store := memory.NewOTPStore()
	svc := newTestService(store, &recordingSender{})
	seed(t, store, "+15551234567", "482913", time.Now().Add(5*time.Minute))

	err := svc.VerifyAndConsume(context.Background(), "+15551234567", "000000")
	require.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)

	// The wrong guess consumed the entry; even the correct code now fails.
	err = svc.VerifyAndConsume(context.Background(), "+15551234567", "482913")
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)
}

func TestVerifyAndConsume_ConcurrentExactlyOneWins(t *testing.T) {
	store := memory.NewOTPStore()
	svc := newTestService(store, &recordingSender{})
	seed(t, store, "+15551234567", "482913", time.Now().Add(5*time.Minute))

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.VerifyAndConsume(context.Background(), "+15551234567", "482913")
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredOTP)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestGenerateCode_WidthAndCharset(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode(6)
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
	code, err := generateCode(4)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}$`, code)
}
