package postgres

import (
	"context"
	"errors"
	"fmt"

	"GymMembershipServer/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceStore dates every check-in with the database's CURRENT_DATE so
// that marking and the "today" checks agree on what today is.
type AttendanceStore struct {
	pool *pgxpool.Pool
}

func NewAttendanceStore(pool *pgxpool.Pool) *AttendanceStore {
	return &AttendanceStore{pool: pool}
}

// MarkToday records today's check-in. It reports false when the member had
// already checked in today.
func (s *AttendanceStore) MarkToday(ctx context.Context, userID int64) (bool, error) {
	const q = `
		INSERT INTO attendance (user_id, date, check_in_time)
		VALUES ($1, CURRENT_DATE, now())
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING id
	`
	var id int64
	if err := s.pool.QueryRow(ctx, q, userID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("mark attendance: %w", err)
	}
	return true, nil
}

func (s *AttendanceStore) MarkedToday(ctx context.Context, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM attendance WHERE user_id = $1 AND date = CURRENT_DATE)`

	var marked bool
	if err := s.pool.QueryRow(ctx, q, userID).Scan(&marked); err != nil {
		return false, fmt.Errorf("attendance today: %w", err)
	}
	return marked, nil
}

func (s *AttendanceStore) ListForMember(ctx context.Context, userID int64) ([]domain.AttendanceRecord, error) {
	const q = `
		SELECT id, user_id, date, check_in_time, check_out_time
		FROM attendance
		WHERE user_id = $1
		ORDER BY date DESC, check_in_time DESC
	`
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	defer rows.Close()

	out := []domain.AttendanceRecord{}
	for rows.Next() {
		var (
			r        domain.AttendanceRecord
			checkOut pgtype.Timestamptz
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.CheckInTime, &checkOut); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		r.CheckOutTime = timestamptzPtr(checkOut)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	return out, nil
}

func (s *AttendanceStore) ListAll(ctx context.Context) ([]domain.AttendanceEntry, error) {
	const q = `
		SELECT a.id, trim(u.first_name || ' ' || u.last_name), u.age, a.date, a.check_in_time
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.date DESC, a.check_in_time DESC
	`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	out := []domain.AttendanceEntry{}
	for rows.Next() {
		var (
			e   domain.AttendanceEntry
			age pgtype.Int4
		)
		if err := rows.Scan(&e.ID, &e.MemberName, &age, &e.Date, &e.CheckInTime); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		e.Age = int4Ptr(age)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return out, nil
}
