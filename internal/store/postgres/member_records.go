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

// MemberRecordsStore holds admin notes and billing entries. Records are only
// ever attached to, and reachable through, member accounts.
type MemberRecordsStore struct {
	pool *pgxpool.Pool
}

func NewMemberRecordsStore(pool *pgxpool.Pool) *MemberRecordsStore {
	return &MemberRecordsStore{pool: pool}
}

const recordSelect = `
	SELECT mr.id, mr.user_id, mr.title, mr.description, mr.amount::float8, mr.record_type,
	       coalesce(trim(u.first_name || ' ' || u.last_name), ''), mr.created_at
`

func scanRecord(row rowScanner) (domain.MemberRecord, error) {
	var (
		r      domain.MemberRecord
		amount pgtype.Float8
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &amount, &r.RecordType, &r.AdminName, &r.CreatedAt)
	if err != nil {
		return domain.MemberRecord{}, err
	}
	r.Amount = float8Ptr(amount)
	return r, nil
}

func (s *MemberRecordsStore) ListRecords(ctx context.Context, userID int64) ([]domain.MemberRecord, error) {
	const q = recordSelect + `
		FROM member_records mr
		LEFT JOIN users u ON u.id = mr.admin_id
		WHERE mr.user_id = $1
		ORDER BY mr.created_at DESC, mr.id DESC
	`
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list member records: %w", err)
	}
	defer rows.Close()

	out := []domain.MemberRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list member records: %w", err)
	}
	return out, nil
}

// CreateRecord attaches a record to memberID. It returns domain.ErrNotFound
// when memberID is not a member account.
func (s *MemberRecordsStore) CreateRecord(ctx context.Context, memberID, adminID int64, in domain.MemberRecordInput) (domain.MemberRecord, error) {
	const q = `
		WITH mr AS (
			INSERT INTO member_records (user_id, admin_id, title, description, amount, record_type)
			SELECT id, $2, $3, $4, $5, $6
			FROM users
			WHERE id = $1 AND user_type = 'member'
			RETURNING *
		)` + recordSelect + `
		FROM mr
		LEFT JOIN users u ON u.id = mr.admin_id
	`
	r, err := scanRecord(s.pool.QueryRow(ctx, q, memberID, adminID, in.Title, in.Description, in.Amount, in.RecordType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MemberRecord{}, domain.ErrNotFound
		}
		return domain.MemberRecord{}, fmt.Errorf("create member record: %w", err)
	}
	return r, nil
}

func (s *MemberRecordsStore) UpdateRecord(ctx context.Context, id int64, in domain.MemberRecordInput) (domain.MemberRecord, error) {
	const q = `
		WITH mr AS (
			UPDATE member_records
			SET title = $2, description = $3, amount = $4, record_type = $5
			WHERE id = $1
			  AND user_id IN (SELECT id FROM users WHERE user_type = 'member')
			RETURNING *
		)` + recordSelect + `
		FROM mr
		LEFT JOIN users u ON u.id = mr.admin_id
	`
	r, err := scanRecord(s.pool.QueryRow(ctx, q, id, in.Title, in.Description, in.Amount, in.RecordType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MemberRecord{}, domain.ErrNotFound
		}
		return domain.MemberRecord{}, fmt.Errorf("update member record: %w", err)
	}
	return r, nil
}

func (s *MemberRecordsStore) DeleteRecord(ctx context.Context, id int64) error {
	const q = `
		DELETE FROM member_records
		WHERE id = $1
		  AND user_id IN (SELECT id FROM users WHERE user_type = 'member')
	`
	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete member record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
