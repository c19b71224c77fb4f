package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RevokedTokensStore is the optional session denylist. Entries are kept only
// until the revoked token would have expired anyway.
type RevokedTokensStore struct {
	pool *pgxpool.Pool
}

func NewRevokedTokensStore(pool *pgxpool.Pool) *RevokedTokensStore {
	return &RevokedTokensStore{pool: pool}
}

func (s *RevokedTokensStore) RevokeToken(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	const q = `
		INSERT INTO revoked_session_tokens (jti, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING
	`
	if _, err := s.pool.Exec(ctx, q, jti, userID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RevokedTokensStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM revoked_session_tokens WHERE jti = $1)`

	var revoked bool
	if err := s.pool.QueryRow(ctx, q, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

func (s *RevokedTokensStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM revoked_session_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
