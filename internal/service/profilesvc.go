package service

import (
	"context"

	"GymMembershipServer/internal/domain"
)

type ProfileStore interface {
	GetAccountByID(ctx context.Context, id int64) (domain.Account, error)
	UpdateProfile(ctx context.Context, id int64, in domain.ProfileUpdate) (domain.Account, error)
}

type ProfileService struct {
	Store ProfileStore
}

func (s *ProfileService) Get(ctx context.Context, p domain.Principal) (domain.Account, error) {
	return s.Store.GetAccountByID(ctx, p.UserID)
}

func (s *ProfileService) Update(ctx context.Context, p domain.Principal, in domain.ProfileUpdate) (domain.Account, error) {
	fields := map[string]string{}
	validateProfile(fields, &in)
	if len(fields) > 0 {
		return domain.Account{}, domain.NewValidationError(fields)
	}
	return s.Store.UpdateProfile(ctx, p.UserID, in)
}
