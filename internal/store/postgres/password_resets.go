package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GymMembershipServer/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PasswordResetStore struct {
	pool *pgxpool.Pool
}

func NewPasswordResetStore(pool *pgxpool.Pool) *PasswordResetStore {
	return &PasswordResetStore{pool: pool}
}

// ReplaceResetToken stores a new reset token for the user and retires every
// earlier unused one in the same transaction. The user row is locked first so
// concurrent requests for one user run one after the other and the retire
// step always sees the token inserted by the previous request.
func (s *PasswordResetStore) ReplaceResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked int64
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, token.UserID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock user: %w", err)
	}

	const retire = `
		UPDATE password_reset_tokens
		SET used = true, used_at = $2
		WHERE user_id = $1 AND used = false
	`
	if _, err := tx.Exec(ctx, retire, token.UserID, token.CreatedAt); err != nil {
		return fmt.Errorf("retire reset tokens: %w", err)
	}

	const insert = `
		INSERT INTO password_reset_tokens (user_id, token_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, insert, token.UserID, token.TokenHash, token.CreatedAt, token.ExpiresAt); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken marks the token used and sets the new password hash
// atomically. Unknown, used and expired tokens all yield
// domain.ErrResetTokenInvalid. Of two concurrent calls with the same token at
// most one succeeds.
func (s *PasswordResetStore) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (int64, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const consume = `
		UPDATE password_reset_tokens
		SET used = true, used_at = $2
		WHERE token_hash = $1 AND used = false AND expires_at > $2
		RETURNING user_id
	`
	var userID int64
	if err := tx.QueryRow(ctx, consume, tokenHash, now).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrResetTokenInvalid
		}
		return 0, fmt.Errorf("consume reset token: %w", err)
	}

	const setPassword = `
		UPDATE users
		SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, setPassword, userID, passwordHash, now)
	if err != nil {
		return 0, fmt.Errorf("set password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, domain.ErrResetTokenInvalid
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit password reset: %w", err)
	}
	return userID, nil
}

// DeleteExpired removes used tokens and tokens that expired before the cutoff.
func (s *PasswordResetStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE used OR expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
