package email

import (
	"context"
	"log/slog"
)

// LogMailer writes reset links to the log instead of sending them. It is
// used when no mail provider is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "password reset link",
		slog.String("to", toEmail),
		slog.String("url", resetURL),
	)
	return nil
}
