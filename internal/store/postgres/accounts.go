package postgres

import (
	"context"
	"errors"
	"fmt"

	"GymMembershipServer/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountsStore struct {
	pool *pgxpool.Pool
}

func NewAccountsStore(pool *pgxpool.Pool) *AccountsStore {
	return &AccountsStore{pool: pool}
}

func (s *AccountsStore) CreateAccount(ctx context.Context, in domain.NewAccount) (domain.Account, error) {
	const q = `
		INSERT INTO users (email, password_hash, user_type, is_approved, first_name, last_name, age, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + accountColumns

	approved := in.Role == domain.RoleAdmin
	a, err := scanAccount(s.pool.QueryRow(ctx, q,
		in.Email,
		in.PasswordHash,
		in.Role,
		approved,
		in.FirstName,
		in.LastName,
		nullIfNil(in.Age),
		nullIfEmpty(in.PhoneNumber),
	))
	if err != nil {
		return domain.Account{}, mapAccountWriteError(err)
	}
	return a, nil
}

func (s *AccountsStore) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM users WHERE id = $1`

	a, err := scanAccount(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

// GetAccountByEmail matches case-insensitively, backed by users_email_lower_uq.
func (s *AccountsStore) GetAccountByEmail(ctx context.Context, email string) (domain.AccountWithPassword, error) {
	const q = `SELECT ` + accountColumns + `, password_hash FROM users WHERE lower(email) = lower($1) LIMIT 1`

	var hash string
	a, err := scanAccount(s.pool.QueryRow(ctx, q, email), &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AccountWithPassword{}, domain.ErrNotFound
		}
		return domain.AccountWithPassword{}, fmt.Errorf("get account by email: %w", err)
	}
	return domain.AccountWithPassword{Account: a, PasswordHash: hash}, nil
}

func (s *AccountsStore) GetAccountState(ctx context.Context, id int64) (domain.AccountState, error) {
	const q = `
		SELECT id, user_type, is_approved, is_active
		FROM users
		WHERE id = $1
	`

	var st domain.AccountState
	err := s.pool.QueryRow(ctx, q, id).Scan(&st.ID, &st.Role, &st.IsApproved, &st.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AccountState{}, domain.ErrNotFound
		}
		return domain.AccountState{}, fmt.Errorf("get account state: %w", err)
	}
	return st, nil
}

func (s *AccountsStore) SetPasswordHash(ctx context.Context, id int64, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, q, id, passwordHash)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *AccountsStore) UpdateProfile(ctx context.Context, id int64, in domain.ProfileUpdate) (domain.Account, error) {
	const q = `
		UPDATE users
		SET first_name = $2, last_name = $3, age = $4, phone_number = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + accountColumns

	a, err := scanAccount(s.pool.QueryRow(ctx, q, id, in.FirstName, in.LastName, nullIfNil(in.Age), nullIfEmpty(in.PhoneNumber)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("update profile: %w", err)
	}
	return a, nil
}

// PromoteToAdmin sets the role and approval for an existing account and
// replaces its password hash.
func (s *AccountsStore) PromoteToAdmin(ctx context.Context, id int64, passwordHash string) error {
	const q = `
		UPDATE users
		SET user_type = 'admin', is_approved = true, is_active = true, password_hash = $2, updated_at = now()
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, q, id, passwordHash)
	if err != nil {
		return fmt.Errorf("promote to admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapAccountWriteError(err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		switch pgerr.ConstraintName {
		case "users_email_lower_uq":
			return domain.ErrEmailTaken
		default:
			return fmt.Errorf("unique violation (%s): %w", pgerr.ConstraintName, err)
		}
	}
	return fmt.Errorf("create account: %w", err)
}
