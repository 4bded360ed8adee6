// Package notify delivers password reset tokens to users over a side
// channel. Actual mail transport is deliberately out of scope; the shipped
// implementation records the delivery in the log so operators can wire a
// real sender behind the same interface.
package notify

import (
	"context"
	"log/slog"
)

// Notifier delivers a password reset token to a user's email address.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogNotifier writes deliveries to the structured log
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Ensure LogNotifier implements Notifier
var _ Notifier = (*LogNotifier)(nil)

// SendPasswordReset logs the reset delivery. The token itself is the
// secret, so it is logged at debug level only; the info record carries
// just the recipient.
func (n *LogNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	n.logger.InfoContext(ctx, "password reset issued", slog.String("email", email))
	n.logger.DebugContext(ctx, "password reset token", slog.String("token", token))
	return nil
}
