package service

import (
	"context"
	"errors"
	"testing"

	"GymMembershipServer/internal/domain"
)

type stubMembersStore struct {
	t *testing.T

	listMembersFunc  func(context.Context, string) ([]domain.Account, error)
	setApprovedFunc  func(context.Context, int64, bool) error
	setActiveFunc    func(context.Context, int64, bool) error
	toggleActiveFunc func(context.Context, int64) (bool, error)
	deleteMemberFunc func(context.Context, int64) error
}

func (s *stubMembersStore) ListMembers(ctx context.Context, query string) ([]domain.Account, error) {
	if s.listMembersFunc != nil {
		return s.listMembersFunc(ctx, query)
	}
	s.t.Fatalf("ListMembers called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubMembersStore) SetApproved(ctx context.Context, id int64, approved bool) error {
	if s.setApprovedFunc != nil {
		return s.setApprovedFunc(ctx, id, approved)
	}
	s.t.Fatalf("SetApproved called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubMembersStore) SetActive(ctx context.Context, id int64, active bool) error {
	if s.setActiveFunc != nil {
		return s.setActiveFunc(ctx, id, active)
	}
	s.t.Fatalf("SetActive called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubMembersStore) ToggleActive(ctx context.Context, id int64) (bool, error) {
	if s.toggleActiveFunc != nil {
		return s.toggleActiveFunc(ctx, id)
	}
	s.t.Fatalf("ToggleActive called unexpectedly")
	return false, errors.New("unexpected call")
}

func (s *stubMembersStore) DeleteMember(ctx context.Context, id int64) error {
	if s.deleteMemberFunc != nil {
		return s.deleteMemberFunc(ctx, id)
	}
	s.t.Fatalf("DeleteMember called unexpectedly")
	return errors.New("unexpected call")
}

func stateReader(t *testing.T, states map[int64]domain.AccountState) *stubAccountsStore {
	return &stubAccountsStore{
		t: t,
		getAccountStateFunc: func(_ context.Context, id int64) (domain.AccountState, error) {
			st, ok := states[id]
			if !ok {
				return domain.AccountState{}, domain.ErrNotFound
			}
			return st, nil
		},
	}
}

var adminActor = domain.Principal{UserID: 1, Role: domain.RoleAdmin}

func TestAdminServiceApproveInvalidates(t *testing.T) {
	var invalidated []int64
	members := &stubMembersStore{
		t: t,
		setApprovedFunc: func(_ context.Context, id int64, approved bool) error {
			if id != 9 || !approved {
				t.Fatalf("unexpected args: %d %v", id, approved)
			}
			return nil
		},
	}
	svc := &AdminService{
		Members:    members,
		Accounts:   stateReader(t, map[int64]domain.AccountState{9: {ID: 9, Role: domain.RoleMember}}),
		Invalidate: func(id int64) { invalidated = append(invalidated, id) },
	}

	if err := svc.SetApproval(context.Background(), adminActor, 9, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invalidated) != 1 || invalidated[0] != 9 {
		t.Fatalf("expected invalidation of 9, got %v", invalidated)
	}
}

func TestAdminServiceRejectsSelfAndAdmins(t *testing.T) {
	svc := &AdminService{
		Members:  &stubMembersStore{t: t},
		Accounts: stateReader(t, map[int64]domain.AccountState{2: {ID: 2, Role: domain.RoleAdmin}}),
	}
	ctx := context.Background()

	if err := svc.DeleteMember(ctx, adminActor, adminActor.UserID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("self delete: expected validation error, got %v", err)
	}
	if _, err := svc.ToggleActive(ctx, adminActor, 2); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("toggle admin: expected validation error, got %v", err)
	}
	if err := svc.SetActive(ctx, adminActor, 404, false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing member: expected not found, got %v", err)
	}
}

func TestAdminServiceToggle(t *testing.T) {
	members := &stubMembersStore{
		t: t,
		toggleActiveFunc: func(_ context.Context, id int64) (bool, error) {
			return false, nil
		},
	}
	svc := &AdminService{
		Members:  members,
		Accounts: stateReader(t, map[int64]domain.AccountState{9: {ID: 9, Role: domain.RoleMember, IsActive: true}}),
	}

	active, err := svc.ToggleActive(context.Background(), adminActor, 9)
	if err != nil || active {
		t.Fatalf("expected blocked member, got %v %v", active, err)
	}
}
