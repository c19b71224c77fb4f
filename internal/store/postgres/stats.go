package postgres

import (
	"context"
	"fmt"
	"time"

	"GymMembershipServer/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsStore struct {
	pool *pgxpool.Pool
}

func NewStatsStore(pool *pgxpool.Pool) *StatsStore {
	return &StatsStore{pool: pool}
}

// MemberStats counts distinct attendance days on or after weekStart and
// monthStart. Both are compared as calendar dates.
func (s *StatsStore) MemberStats(ctx context.Context, userID int64, weekStart, monthStart time.Time) (domain.MemberStats, error) {
	const q = `
		SELECT
			EXISTS (SELECT 1 FROM attendance WHERE user_id = $1 AND date = CURRENT_DATE),
			(SELECT COUNT(DISTINCT date) FROM attendance WHERE user_id = $1 AND date >= $2::date),
			(SELECT COUNT(DISTINCT date) FROM attendance WHERE user_id = $1 AND date >= $3::date),
			(SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false)
	`
	var st domain.MemberStats
	err := s.pool.QueryRow(ctx, q, userID, weekStart, monthStart).Scan(
		&st.TodayAttended,
		&st.WeekAttendance,
		&st.MonthAttendance,
		&st.UnreadNotifications,
	)
	if err != nil {
		return domain.MemberStats{}, fmt.Errorf("member stats: %w", err)
	}
	return st, nil
}

// AdminStats counts members who attended on or after activeSince as active.
func (s *StatsStore) AdminStats(ctx context.Context, activeSince time.Time) (domain.AdminStats, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM users WHERE user_type = 'member'),
			(SELECT COUNT(DISTINCT user_id) FROM attendance WHERE date = CURRENT_DATE),
			(SELECT COUNT(*) FROM announcements WHERE is_active = true),
			(SELECT COUNT(DISTINCT user_id) FROM attendance WHERE date >= $1::date)
	`
	var st domain.AdminStats
	err := s.pool.QueryRow(ctx, q, activeSince).Scan(
		&st.TotalMembers,
		&st.TodayAttendance,
		&st.TotalAnnouncements,
		&st.ActiveMembers,
	)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("admin stats: %w", err)
	}
	return st, nil
}
