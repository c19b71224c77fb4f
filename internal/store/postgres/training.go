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

type TrainingStore struct {
	pool *pgxpool.Pool
}

func NewTrainingStore(pool *pgxpool.Pool) *TrainingStore {
	return &TrainingStore{pool: pool}
}

const programSelect = `
	SELECT pt.id, pt.title, pt.description, pt.trainer_name, pt.duration_weeks, pt.price::float8,
	       pt.is_active, coalesce(trim(u.first_name || ' ' || u.last_name), ''), pt.created_at, pt.updated_at
`

func scanProgram(row rowScanner) (domain.TrainingProgram, error) {
	var (
		p        domain.TrainingProgram
		trainer  pgtype.Text
		duration pgtype.Int4
		price    pgtype.Float8
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &trainer, &duration, &price,
		&p.IsActive, &p.AdminName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.TrainingProgram{}, err
	}
	p.TrainerName = textOrEmpty(trainer)
	p.DurationWeeks = int4Ptr(duration)
	p.Price = float8Ptr(price)
	return p, nil
}

func (s *TrainingStore) ListPrograms(ctx context.Context, activeOnly bool) ([]domain.TrainingProgram, error) {
	const q = programSelect + `
		FROM personal_training pt
		LEFT JOIN users u ON u.id = pt.admin_id
		WHERE pt.is_active OR NOT $1
		ORDER BY pt.created_at DESC
	`
	rows, err := s.pool.Query(ctx, q, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list training programs: %w", err)
	}
	defer rows.Close()

	out := []domain.TrainingProgram{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan training program: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list training programs: %w", err)
	}
	return out, nil
}

func (s *TrainingStore) CreateProgram(ctx context.Context, adminID int64, in domain.TrainingProgramInput) (domain.TrainingProgram, error) {
	const q = `
		WITH pt AS (
			INSERT INTO personal_training (admin_id, title, description, trainer_name, duration_weeks, price, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)` + programSelect + `
		FROM pt
		LEFT JOIN users u ON u.id = pt.admin_id
	`
	p, err := scanProgram(s.pool.QueryRow(ctx, q, adminID, in.Title, in.Description,
		nullIfEmpty(in.TrainerName), nullIfNil(in.DurationWeeks), in.Price, in.IsActive))
	if err != nil {
		return domain.TrainingProgram{}, fmt.Errorf("create training program: %w", err)
	}
	return p, nil
}

func (s *TrainingStore) UpdateProgram(ctx context.Context, id int64, in domain.TrainingProgramInput) (domain.TrainingProgram, error) {
	const q = `
		WITH pt AS (
			UPDATE personal_training
			SET title = $2, description = $3, trainer_name = $4, duration_weeks = $5, price = $6,
			    is_active = $7, updated_at = now()
			WHERE id = $1
			RETURNING *
		)` + programSelect + `
		FROM pt
		LEFT JOIN users u ON u.id = pt.admin_id
	`
	p, err := scanProgram(s.pool.QueryRow(ctx, q, id, in.Title, in.Description,
		nullIfEmpty(in.TrainerName), nullIfNil(in.DurationWeeks), in.Price, in.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TrainingProgram{}, domain.ErrNotFound
		}
		return domain.TrainingProgram{}, fmt.Errorf("update training program: %w", err)
	}
	return p, nil
}

func (s *TrainingStore) DeleteProgram(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM personal_training WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete training program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
