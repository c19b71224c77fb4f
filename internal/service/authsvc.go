package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"GymMembershipServer/internal/auth"
	"GymMembershipServer/internal/cache"
	"GymMembershipServer/internal/domain"
)

type AccountsStore interface {
	CreateAccount(ctx context.Context, in domain.NewAccount) (domain.Account, error)
	GetAccountByID(ctx context.Context, id int64) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.AccountWithPassword, error)
	GetAccountState(ctx context.Context, id int64) (domain.AccountState, error)
	SetPasswordHash(ctx context.Context, id int64, passwordHash string) error
}

// RevokedTokensStore is the optional logout denylist.
type RevokedTokensStore interface {
	RevokeToken(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type SessionTokens interface {
	Issue(userID int64, role domain.Role) (string, time.Time, error)
	Verify(token string) (auth.Claims, error)
}

type SignupInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Age         *int
	PhoneNumber string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   domain.Account
}

type AuthService struct {
	Accounts AccountsStore
	Tokens   SessionTokens

	// Revoked enables the logout denylist for member tokens when set.
	Revoked RevokedTokensStore
	// States caches live account state for members when set. Entries are
	// dropped on every admin write through InvalidateAccount, but another
	// instance's writes are seen only after the entry's TTL.
	States *cache.TTL[int64, domain.AccountState]

	Logger *slog.Logger
	Now    func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Signup creates an unapproved member. No session is issued: the member
// cannot hold one until an admin approves the account.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.Account, error) {
	in.Email = normalizeEmail(in.Email)
	profile := domain.ProfileUpdate{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Age:         in.Age,
		PhoneNumber: in.PhoneNumber,
	}

	fields := map[string]string{}
	if !validEmail(in.Email) {
		fields["email"] = "must be a valid email address"
	}
	validatePassword(fields, "password", in.Password)
	validateProfile(fields, &profile)
	if len(fields) > 0 {
		return domain.Account{}, domain.NewValidationError(fields)
	}

	if _, err := s.Accounts.GetAccountByEmail(ctx, in.Email); err == nil {
		return domain.Account{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Account{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.Account{}, err
	}

	return s.Accounts.CreateAccount(ctx, domain.NewAccount{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Age:          profile.Age,
		PhoneNumber:  profile.PhoneNumber,
	})
}

// VerifyCredentials checks an email and password pair. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.Account{}, domain.ErrInvalidCredentials
	}

	a, err := s.Accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Unknown emails still pay for one hash comparison.
			_, _ = auth.VerifyPassword(dummyHash(), password)
			return domain.Account{}, domain.ErrInvalidCredentials
		}
		return domain.Account{}, err
	}

	ok, err := auth.VerifyPassword(a.PasswordHash, password)
	if err != nil || !ok {
		return domain.Account{}, domain.ErrInvalidCredentials
	}

	if auth.NeedsRehash(a.PasswordHash) {
		s.rehash(ctx, a.ID, password)
	}
	return a.Account, nil
}

func (s *AuthService) rehash(ctx context.Context, id int64, password string) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = s.Accounts.SetPasswordHash(ctx, id, hash)
	}
	if err != nil {
		s.logger().WarnContext(ctx, "password rehash failed", "user_id", id, "err", err)
	}
}

// Login runs the credential check and the account state machine. A non-empty
// roleHint that differs from the stored role is treated as bad credentials.
// Blocked is reported before pending.
func (s *AuthService) Login(ctx context.Context, email, password string, roleHint domain.Role) (Session, error) {
	a, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	if roleHint != "" && roleHint != a.Role {
		return Session{}, domain.ErrInvalidCredentials
	}

	if a.Role == domain.RoleMember {
		if !a.IsActive {
			return Session{}, domain.ErrAccountBlocked
		}
		if !a.IsApproved {
			return Session{}, domain.ErrAccountPending
		}
	}

	token, expiresAt, err := s.Tokens.Issue(a.ID, a.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expiresAt, Account: a}, nil
}

// Logout denylists the token's id until its expiry when the denylist is
// enabled. Tokens that fail verification are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.Revoked == nil || token == "" {
		return nil
	}
	claims, err := s.Tokens.Verify(token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return s.Revoked.RevokeToken(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time)
}

// Resolve is the access gate. Admin tokens are trusted without a lookup;
// member tokens are honored only while the account exists, is active and is
// approved. Every rejection is domain.ErrUnauthorized; store failures are
// returned as is.
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	p := domain.Principal{UserID: claims.UserID, Role: claims.Role}
	if p.Role == domain.RoleAdmin {
		return p, nil
	}

	if s.Revoked != nil && claims.ID != "" {
		revoked, err := s.Revoked.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			return domain.Principal{}, err
		}
		if revoked {
			return domain.Principal{}, domain.ErrUnauthorized
		}
	}

	st, err := s.accountState(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, domain.ErrUnauthorized
		}
		return domain.Principal{}, err
	}
	if st.Role != domain.RoleMember || !st.IsActive || !st.IsApproved {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}

func (s *AuthService) accountState(ctx context.Context, id int64) (domain.AccountState, error) {
	if s.States != nil {
		if st, ok := s.States.Get(id); ok {
			return st, nil
		}
	}
	st, err := s.Accounts.GetAccountState(ctx, id)
	if err != nil {
		return domain.AccountState{}, err
	}
	if s.States != nil {
		s.States.Set(id, st)
	}
	return st, nil
}

// InvalidateAccount drops any cached state for the account.
func (s *AuthService) InvalidateAccount(id int64) {
	if s.States != nil {
		s.States.Delete(id)
	}
}

// Me returns the account behind a resolved principal.
func (s *AuthService) Me(ctx context.Context, p domain.Principal) (domain.Account, error) {
	a, err := s.Accounts.GetAccountByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Account{}, domain.ErrUnauthorized
		}
		return domain.Account{}, err
	}
	return a, nil
}

var dummyHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("gym-membership-dummy-password")
	return h
})
