package service

import (
	"context"

	"GymMembershipServer/internal/domain"
)

type AttendanceStore interface {
	MarkToday(ctx context.Context, userID int64) (bool, error)
	MarkedToday(ctx context.Context, userID int64) (bool, error)
	ListForMember(ctx context.Context, userID int64) ([]domain.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]domain.AttendanceEntry, error)
}

type AttendanceService struct {
	Store AttendanceStore
}

// Mark checks the member in for today. It is idempotent and reports whether
// this call created the record.
func (s *AttendanceService) Mark(ctx context.Context, p domain.Principal) (bool, error) {
	return s.Store.MarkToday(ctx, p.UserID)
}

func (s *AttendanceService) MarkedToday(ctx context.Context, p domain.Principal) (bool, error) {
	return s.Store.MarkedToday(ctx, p.UserID)
}

func (s *AttendanceService) History(ctx context.Context, p domain.Principal) ([]domain.AttendanceRecord, error) {
	return s.Store.ListForMember(ctx, p.UserID)
}

func (s *AttendanceService) ListAll(ctx context.Context) ([]domain.AttendanceEntry, error) {
	return s.Store.ListAll(ctx)
}
