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

type AnnouncementsStore struct {
	pool *pgxpool.Pool
}

func NewAnnouncementsStore(pool *pgxpool.Pool) *AnnouncementsStore {
	return &AnnouncementsStore{pool: pool}
}

const announcementColumns = `id, admin_id, title, content, is_active, created_at, updated_at`

func scanAnnouncement(row rowScanner) (domain.Announcement, error) {
	var (
		a       domain.Announcement
		adminID pgtype.Int8
	)
	if err := row.Scan(&a.ID, &adminID, &a.Title, &a.Content, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return domain.Announcement{}, err
	}
	if adminID.Valid {
		a.AdminID = adminID.Int64
	}
	return a, nil
}

func (s *AnnouncementsStore) ListAnnouncements(ctx context.Context, activeOnly bool) ([]domain.Announcement, error) {
	const q = `
		SELECT ` + announcementColumns + `
		FROM announcements
		WHERE is_active OR NOT $1
		ORDER BY created_at DESC
	`
	rows, err := s.pool.Query(ctx, q, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	out := []domain.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return out, nil
}

// CreateAnnouncement inserts the announcement and, when it is active, one
// unread notification per active member, in a single transaction.
func (s *AnnouncementsStore) CreateAnnouncement(ctx context.Context, adminID int64, in domain.AnnouncementInput) (domain.Announcement, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insert = `
		INSERT INTO announcements (admin_id, title, content, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + announcementColumns

	a, err := scanAnnouncement(tx.QueryRow(ctx, insert, adminID, in.Title, in.Content, in.IsActive))
	if err != nil {
		return domain.Announcement{}, fmt.Errorf("insert announcement: %w", err)
	}

	if a.IsActive {
		const notify = `
			INSERT INTO notifications (user_id, announcement_id, title, message)
			SELECT id, $1, $2, $3
			FROM users
			WHERE user_type = 'member' AND is_active = true
		`
		if _, err := tx.Exec(ctx, notify, a.ID, a.Title, a.Content); err != nil {
			return domain.Announcement{}, fmt.Errorf("insert notifications: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Announcement{}, fmt.Errorf("commit announcement: %w", err)
	}
	return a, nil
}

func (s *AnnouncementsStore) UpdateAnnouncement(ctx context.Context, id int64, in domain.AnnouncementInput) (domain.Announcement, error) {
	const q = `
		UPDATE announcements
		SET title = $2, content = $3, is_active = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + announcementColumns

	a, err := scanAnnouncement(s.pool.QueryRow(ctx, q, id, in.Title, in.Content, in.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Announcement{}, domain.ErrNotFound
		}
		return domain.Announcement{}, fmt.Errorf("update announcement: %w", err)
	}
	return a, nil
}

// DeactivateAnnouncement hides the announcement from members. Rows are kept
// so existing notifications still reference them.
func (s *AnnouncementsStore) DeactivateAnnouncement(ctx context.Context, id int64) error {
	const q = `
		UPDATE announcements
		SET is_active = false, updated_at = now()
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("deactivate announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *AnnouncementsStore) MarkNotificationsRead(ctx context.Context, userID int64) (int64, error) {
	const q = `
		UPDATE notifications
		SET is_read = true
		WHERE user_id = $1 AND is_read = false
	`
	tag, err := s.pool.Exec(ctx, q, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
