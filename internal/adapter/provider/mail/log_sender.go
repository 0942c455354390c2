// Package mail delivers sign-in links to users.
package mail

import (
	"context"
	"log/slog"
)

// LogSender writes magic links to the structured log instead of sending
// email. It is the default sender for local development and self-hosting
// setups without an SMTP relay.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a sender that logs at info level.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{log: logger.With("adapter", "mail_log")}
}

// SendMagicLink logs the link for email.
func (s *LogSender) SendMagicLink(ctx context.Context, email, link string) error {
	s.log.InfoContext(ctx, "magic link issued",
		slog.String("email", email),
		slog.String("link", link),
	)
	return nil
}
