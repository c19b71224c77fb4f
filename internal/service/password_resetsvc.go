package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"GymMembershipServer/internal/auth"
	"GymMembershipServer/internal/domain"
)

const DefaultResetTokenTTL = time.Hour

type PasswordResetStore interface {
	ReplaceResetToken(ctx context.Context, token domain.PasswordResetToken) error
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (int64, error)
}

type ResetAccountsStore interface {
	GetAccountByEmail(ctx context.Context, email string) (domain.AccountWithPassword, error)
}

type ResetMailer interface {
	SendPasswordReset(ctx context.Context, toEmail, resetURL string) error
}

type PasswordResetService struct {
	Store    PasswordResetStore
	Accounts ResetAccountsStore
	Mailer   ResetMailer
	// PublicURL is the base the reset link is built on.
	PublicURL *url.URL
	TokenTTL  time.Duration
	Logger    *slog.Logger
	Now       func() time.Time

	// OnReset is called after a successful reset, with the account id.
	OnReset func(userID int64)
}

func (s *PasswordResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *PasswordResetService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Request issues a reset token for the email, if an account has it, and
// mails the link. The outcome is never revealed: an unknown email and a mail
// delivery failure both return nil. Only store failures are returned.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	a, err := s.Accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}

	raw, tokenHash, err := newResetToken()
	if err != nil {
		return err
	}
	now := s.now()
	if err := s.Store.ReplaceResetToken(ctx, domain.PasswordResetToken{
		UserID:    a.ID,
		TokenHash: tokenHash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}); err != nil {
		return err
	}

	if s.Mailer == nil {
		return nil
	}
	if err := s.Mailer.SendPasswordReset(ctx, a.Email, s.resetURL(raw)); err != nil {
		s.logger().ErrorContext(ctx, "send password reset email", "user_id", a.ID, "err", err)
	}
	return nil
}

// Reset sets a new password using a reset token. Unknown, used and expired
// tokens are all domain.ErrResetTokenInvalid; a token works at most once.
func (s *PasswordResetService) Reset(ctx context.Context, rawToken, newPassword string) error {
	fields := map[string]string{}
	validatePassword(fields, "password", newPassword)
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	if rawToken == "" {
		return domain.ErrResetTokenInvalid
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.Store.ConsumeResetToken(ctx, hashResetToken(rawToken), hash, s.now())
	if err != nil {
		return err
	}
	if s.OnReset != nil {
		s.OnReset(userID)
	}
	return nil
}

func (s *PasswordResetService) resetURL(raw string) string {
	base := &url.URL{Path: "/"}
	if s.PublicURL != nil {
		base = s.PublicURL
	}
	u := base.JoinPath("reset-password")
	u.RawQuery = url.Values{"token": {raw}}.Encode()
	return u.String()
}

func newResetToken() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("read token: %w", err)
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)
	return raw, hashResetToken(raw), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
