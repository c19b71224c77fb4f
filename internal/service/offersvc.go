package service

import (
	"context"
	"strings"

	"GymMembershipServer/internal/domain"
)

type OffersStore interface {
	ListOffers(ctx context.Context, activeOnly bool) ([]domain.Offer, error)
	CreateOffer(ctx context.Context, adminID int64, in domain.OfferInput) (domain.Offer, error)
	UpdateOffer(ctx context.Context, id int64, in domain.OfferInput) (domain.Offer, error)
	DeleteOffer(ctx context.Context, id int64) error
}

type OfferService struct {
	Store OffersStore
}

// ListActive is what members see. Inactive offers are admin-only.
func (s *OfferService) ListActive(ctx context.Context) ([]domain.Offer, error) {
	return s.Store.ListOffers(ctx, true)
}

func (s *OfferService) ListAll(ctx context.Context) ([]domain.Offer, error) {
	return s.Store.ListOffers(ctx, false)
}

func (s *OfferService) Create(ctx context.Context, actor domain.Principal, in domain.OfferInput) (domain.Offer, error) {
	if err := validateOffer(&in); err != nil {
		return domain.Offer{}, err
	}
	return s.Store.CreateOffer(ctx, actor.UserID, in)
}

func (s *OfferService) Update(ctx context.Context, id int64, in domain.OfferInput) (domain.Offer, error) {
	if id <= 0 {
		return domain.Offer{}, domain.ErrNotFound
	}
	if err := validateOffer(&in); err != nil {
		return domain.Offer{}, err
	}
	return s.Store.UpdateOffer(ctx, id, in)
}

func (s *OfferService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.Store.DeleteOffer(ctx, id)
}

func validateOffer(in *domain.OfferInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	fields := map[string]string{}
	validateTitle(fields, in.Title)
	validateText(fields, "description", in.Description)
	if d := in.DiscountPercentage; d != nil && (*d < 0 || *d > 100) {
		fields["discount_percentage"] = "must be between 0 and 100"
	}
	if in.ValidFrom.IsZero() {
		fields["valid_from"] = "is required"
	}
	if in.ValidUntil.IsZero() {
		fields["valid_until"] = "is required"
	} else if !in.ValidFrom.IsZero() && in.ValidUntil.Before(in.ValidFrom) {
		fields["valid_until"] = "must not be before valid_from"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func validateTitle(fields map[string]string, title string) {
	switch {
	case title == "":
		fields["title"] = "is required"
	case len(title) > 200:
		fields["title"] = "must be 200 characters or less"
	}
}

func validateText(fields map[string]string, key, v string) {
	switch {
	case v == "":
		fields[key] = "is required"
	case len(v) > 10000:
		fields[key] = "must be 10000 characters or less"
	}
}
