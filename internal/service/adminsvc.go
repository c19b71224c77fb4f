package service

import (
	"context"
	"errors"

	"GymMembershipServer/internal/domain"
)

type AdminMembersStore interface {
	ListMembers(ctx context.Context, query string) ([]domain.Account, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	SetActive(ctx context.Context, id int64, active bool) error
	ToggleActive(ctx context.Context, id int64) (bool, error)
	DeleteMember(ctx context.Context, id int64) error
}

type MemberStateReader interface {
	GetAccountState(ctx context.Context, id int64) (domain.AccountState, error)
}

// AdminService changes member approval and block state. Every write goes
// through Invalidate so a cached account state is never served after the
// change on this instance.
type AdminService struct {
	Members    AdminMembersStore
	Accounts   MemberStateReader
	Invalidate func(id int64)
}

func (s *AdminService) ListMembers(ctx context.Context, query string) ([]domain.Account, error) {
	return s.Members.ListMembers(ctx, query)
}

func (s *AdminService) SetApproval(ctx context.Context, actor domain.Principal, memberID int64, approve bool) error {
	if err := s.checkTarget(ctx, actor, memberID, "cannot approve or reject non-member users"); err != nil {
		return err
	}
	return s.after(memberID, s.Members.SetApproved(ctx, memberID, approve))
}

func (s *AdminService) SetActive(ctx context.Context, actor domain.Principal, memberID int64, active bool) error {
	if err := s.checkTarget(ctx, actor, memberID, "cannot block admin users"); err != nil {
		return err
	}
	return s.after(memberID, s.Members.SetActive(ctx, memberID, active))
}

// ToggleActive flips the member's block state and returns the new is_active.
func (s *AdminService) ToggleActive(ctx context.Context, actor domain.Principal, memberID int64) (bool, error) {
	if err := s.checkTarget(ctx, actor, memberID, "cannot block admin users"); err != nil {
		return false, err
	}
	active, err := s.Members.ToggleActive(ctx, memberID)
	return active, s.after(memberID, err)
}

func (s *AdminService) DeleteMember(ctx context.Context, actor domain.Principal, memberID int64) error {
	if err := s.checkTarget(ctx, actor, memberID, "cannot delete admin users"); err != nil {
		return err
	}
	return s.after(memberID, s.Members.DeleteMember(ctx, memberID))
}

func (s *AdminService) checkTarget(ctx context.Context, actor domain.Principal, memberID int64, adminMsg string) error {
	if memberID <= 0 {
		return domain.NewValidationError(map[string]string{"id": "invalid member id"})
	}
	if memberID == actor.UserID {
		return domain.NewValidationError(map[string]string{"id": "cannot change your own account"})
	}
	st, err := s.Accounts.GetAccountState(ctx, memberID)
	if err != nil {
		return err
	}
	if st.Role != domain.RoleMember {
		return domain.NewValidationError(map[string]string{"id": adminMsg})
	}
	return nil
}

func (s *AdminService) after(memberID int64, err error) error {
	if s.Invalidate != nil && (err == nil || errors.Is(err, domain.ErrNotFound)) {
		s.Invalidate(memberID)
	}
	return err
}
