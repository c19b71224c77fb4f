package service

import (
	"context"
	"strings"

	"GymMembershipServer/internal/domain"
)

type AnnouncementsStore interface {
	ListAnnouncements(ctx context.Context, activeOnly bool) ([]domain.Announcement, error)
	CreateAnnouncement(ctx context.Context, adminID int64, in domain.AnnouncementInput) (domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, in domain.AnnouncementInput) (domain.Announcement, error)
	DeactivateAnnouncement(ctx context.Context, id int64) error
	MarkNotificationsRead(ctx context.Context, userID int64) (int64, error)
}

type AnnouncementService struct {
	Store AnnouncementsStore
}

// ForMember lists active announcements. With markRead the member's unread
// notifications are cleared as well.
func (s *AnnouncementService) ForMember(ctx context.Context, p domain.Principal, markRead bool) ([]domain.Announcement, error) {
	list, err := s.Store.ListAnnouncements(ctx, true)
	if err != nil {
		return nil, err
	}
	if markRead {
		if _, err := s.Store.MarkNotificationsRead(ctx, p.UserID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *AnnouncementService) ListAll(ctx context.Context) ([]domain.Announcement, error) {
	return s.Store.ListAnnouncements(ctx, false)
}

func (s *AnnouncementService) Create(ctx context.Context, actor domain.Principal, in domain.AnnouncementInput) (domain.Announcement, error) {
	if err := validateAnnouncement(&in); err != nil {
		return domain.Announcement{}, err
	}
	return s.Store.CreateAnnouncement(ctx, actor.UserID, in)
}

func (s *AnnouncementService) Update(ctx context.Context, id int64, in domain.AnnouncementInput) (domain.Announcement, error) {
	if id <= 0 {
		return domain.Announcement{}, domain.ErrNotFound
	}
	if err := validateAnnouncement(&in); err != nil {
		return domain.Announcement{}, err
	}
	return s.Store.UpdateAnnouncement(ctx, id, in)
}

func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.Store.DeactivateAnnouncement(ctx, id)
}

func validateAnnouncement(in *domain.AnnouncementInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	fields := map[string]string{}
	validateTitle(fields, in.Title)
	validateText(fields, "content", in.Content)
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
