package sns

import (
	"context"
	"log/slog"
)

// LogSender writes the message to the structured log instead of sending it.
// For local development only — it prints one-time codes in clear text.
type LogSender struct{}

func NewLogSender() SMSSender { return LogSender{} }

func (LogSender) SendSMS(_ context.Context, to, message string) error {
	slog.Info("sms (log sender)", "to", to, "message", message)
	return nil
}
