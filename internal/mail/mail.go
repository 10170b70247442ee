// Package mail delivers transactional email through an external provider.
// Callers treat the provider as fallible: there is no delivery guarantee
// beyond "accepted by provider".
package mail

import (
	"context"
	"log/slog"
)

// Sender delivers a single message to a single recipient. Tests inject a stub
// that records calls without hitting the network.
type Sender interface {
	SendOne(ctx context.Context, to, subject, htmlBody string) error
}

// LoggerSender writes outgoing mail to the structured logger. Used in
// development when no provider credential is configured.
type LoggerSender struct {
	logger *slog.Logger
}

// NewLoggerSender constructs a logging mail sender.
func NewLoggerSender(logger *slog.Logger) *LoggerSender {
	return &LoggerSender{logger: logger}
}

// SendOne writes the message to the logger and reports success.
func (s *LoggerSender) SendOne(_ context.Context, to, subject, _ string) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Info("outgoing mail", "to", to, "subject", subject)
	return nil
}
