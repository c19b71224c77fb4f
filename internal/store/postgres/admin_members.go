package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"GymMembershipServer/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminMembersStore holds the member-administration queries. Every write is
// restricted to rows with user_type = 'member'; a missing or admin row
// reports domain.ErrNotFound.
type AdminMembersStore struct {
	pool *pgxpool.Pool
}

func NewAdminMembersStore(pool *pgxpool.Pool) *AdminMembersStore {
	return &AdminMembersStore{pool: pool}
}

// ListMembers returns members awaiting approval first, newest first within
// each group. A non-empty query filters by id, email or name.
func (s *AdminMembersStore) ListMembers(ctx context.Context, query string) ([]domain.Account, error) {
	query = strings.TrimSpace(query)

	var (
		rows pgx.Rows
		err  error
	)
	if query == "" {
		const q = `
			SELECT ` + accountColumns + `
			FROM users
			WHERE user_type = 'member'
			ORDER BY is_approved ASC, created_at DESC
		`
		rows, err = s.pool.Query(ctx, q)
	} else {
		const q = `
			SELECT ` + accountColumns + `
			FROM users
			WHERE user_type = 'member'
			  AND (id::text ILIKE $1
			    OR email ILIKE $1
			    OR first_name ILIKE $1
			    OR last_name ILIKE $1
			    OR (first_name || ' ' || last_name) ILIKE $1)
			ORDER BY is_approved ASC, created_at DESC
		`
		rows, err = s.pool.Query(ctx, q, "%"+escapeLike(query)+"%")
	}
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	out := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return out, nil
}

func (s *AdminMembersStore) SetApproved(ctx context.Context, id int64, approved bool) error {
	const q = `
		UPDATE users
		SET is_approved = $2, updated_at = now()
		WHERE id = $1 AND user_type = 'member'
	`
	return s.execMember(ctx, "set approved", q, id, approved)
}

func (s *AdminMembersStore) SetActive(ctx context.Context, id int64, active bool) error {
	const q = `
		UPDATE users
		SET is_active = $2, updated_at = now()
		WHERE id = $1 AND user_type = 'member'
	`
	return s.execMember(ctx, "set active", q, id, active)
}

// ToggleActive flips is_active and returns the new value.
func (s *AdminMembersStore) ToggleActive(ctx context.Context, id int64) (bool, error) {
	const q = `
		UPDATE users
		SET is_active = NOT is_active, updated_at = now()
		WHERE id = $1 AND user_type = 'member'
		RETURNING is_active
	`
	var active bool
	if err := s.pool.QueryRow(ctx, q, id).Scan(&active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("toggle active: %w", err)
	}
	return active, nil
}

// DeleteMember removes the member; attendance, notifications and reset
// tokens go with it through ON DELETE CASCADE.
func (s *AdminMembersStore) DeleteMember(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1 AND user_type = 'member'`
	return s.execMember(ctx, "delete member", q, id)
}

func (s *AdminMembersStore) execMember(ctx context.Context, op, q string, args ...any) error {
	tag, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
