package service

import (
	"context"
	"time"

	"GymMembershipServer/internal/domain"
)

// activeWindow is how far back an attendance makes a member count as active.
const activeWindow = 7 * 24 * time.Hour

type StatsStore interface {
	MemberStats(ctx context.Context, userID int64, weekStart, monthStart time.Time) (domain.MemberStats, error)
	AdminStats(ctx context.Context, activeSince time.Time) (domain.AdminStats, error)
}

type StatsService struct {
	Store StatsStore
	Now   func() time.Time
}

func (s *StatsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *StatsService) ForMember(ctx context.Context, p domain.Principal) (domain.MemberStats, error) {
	weekStart, monthStart := periodStarts(s.now())
	return s.Store.MemberStats(ctx, p.UserID, weekStart, monthStart)
}

func (s *StatsService) ForAdmin(ctx context.Context) (domain.AdminStats, error) {
	return s.Store.AdminStats(ctx, startOfDay(s.now().Add(-activeWindow)))
}

// periodStarts returns midnight of the most recent Sunday and of the first
// day of the month, in now's location.
func periodStarts(now time.Time) (time.Time, time.Time) {
	day := startOfDay(now)
	week := day.AddDate(0, 0, -int(day.Weekday()))
	month := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	return week, month
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
