package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"GymMembershipServer/internal/domain"
)

type stubAccountsStore struct {
	t *testing.T

	createAccountFunc     func(context.Context, domain.NewAccount) (domain.Account, error)
	getAccountByIDFunc    func(context.Context, int64) (domain.Account, error)
	getAccountByEmailFunc func(context.Context, string) (domain.AccountWithPassword, error)
	getAccountStateFunc   func(context.Context, int64) (domain.AccountState, error)
	setPasswordHashFunc   func(context.Context, int64, string) error
}

func (s *stubAccountsStore) CreateAccount(ctx context.Context, in domain.NewAccount) (domain.Account, error) {
	if s.createAccountFunc != nil {
		return s.createAccountFunc(ctx, in)
	}
	s.t.Fatalf("CreateAccount called unexpectedly")
	return domain.Account{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	if s.getAccountByIDFunc != nil {
		return s.getAccountByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetAccountByID called unexpectedly")
	return domain.Account{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) GetAccountByEmail(ctx context.Context, email string) (domain.AccountWithPassword, error) {
	if s.getAccountByEmailFunc != nil {
		return s.getAccountByEmailFunc(ctx, email)
	}
	s.t.Fatalf("GetAccountByEmail called unexpectedly")
	return domain.AccountWithPassword{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) GetAccountState(ctx context.Context, id int64) (domain.AccountState, error) {
	if s.getAccountStateFunc != nil {
		return s.getAccountStateFunc(ctx, id)
	}
	s.t.Fatalf("GetAccountState called unexpectedly")
	return domain.AccountState{}, errors.New("unexpected call")
}

func (s *stubAccountsStore) SetPasswordHash(ctx context.Context, id int64, passwordHash string) error {
	if s.setPasswordHashFunc != nil {
		return s.setPasswordHashFunc(ctx, id, passwordHash)
	}
	s.t.Fatalf("SetPasswordHash called unexpectedly")
	return errors.New("unexpected call")
}

type stubRevokedStore struct {
	t *testing.T

	revokeTokenFunc    func(context.Context, string, int64, time.Time) error
	isTokenRevokedFunc func(context.Context, string) (bool, error)
}

func (s *stubRevokedStore) RevokeToken(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	if s.revokeTokenFunc != nil {
		return s.revokeTokenFunc(ctx, jti, userID, expiresAt)
	}
	s.t.Fatalf("RevokeToken called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubRevokedStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if s.isTokenRevokedFunc != nil {
		return s.isTokenRevokedFunc(ctx, jti)
	}
	s.t.Fatalf("IsTokenRevoked called unexpectedly")
	return false, errors.New("unexpected call")
}
