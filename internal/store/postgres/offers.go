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

type OffersStore struct {
	pool *pgxpool.Pool
}

func NewOffersStore(pool *pgxpool.Pool) *OffersStore {
	return &OffersStore{pool: pool}
}

// offerSelect reads offer columns from "o" plus the author's name from "u".
const offerSelect = `
	SELECT o.id, o.title, o.description, o.discount_percentage, o.valid_from, o.valid_until,
	       o.is_active, coalesce(trim(u.first_name || ' ' || u.last_name), ''), o.created_at, o.updated_at
`

func scanOffer(row rowScanner) (domain.Offer, error) {
	var (
		o        domain.Offer
		discount pgtype.Int4
	)
	err := row.Scan(&o.ID, &o.Title, &o.Description, &discount, &o.ValidFrom, &o.ValidUntil,
		&o.IsActive, &o.AdminName, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Offer{}, err
	}
	o.DiscountPercentage = int4Ptr(discount)
	return o, nil
}

func (s *OffersStore) ListOffers(ctx context.Context, activeOnly bool) ([]domain.Offer, error) {
	const q = offerSelect + `
		FROM offers o
		LEFT JOIN users u ON u.id = o.admin_id
		WHERE o.is_active OR NOT $1
		ORDER BY o.created_at DESC
	`
	rows, err := s.pool.Query(ctx, q, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	out := []domain.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return out, nil
}

func (s *OffersStore) CreateOffer(ctx context.Context, adminID int64, in domain.OfferInput) (domain.Offer, error) {
	const q = `
		WITH o AS (
			INSERT INTO offers (admin_id, title, description, discount_percentage, valid_from, valid_until, is_active)
			VALUES ($1, $2, $3, $4, $5::date, $6::date, $7)
			RETURNING *
		)` + offerSelect + `
		FROM o
		LEFT JOIN users u ON u.id = o.admin_id
	`
	o, err := scanOffer(s.pool.QueryRow(ctx, q, adminID, in.Title, in.Description,
		nullIfNil(in.DiscountPercentage), in.ValidFrom, in.ValidUntil, in.IsActive))
	if err != nil {
		return domain.Offer{}, fmt.Errorf("create offer: %w", err)
	}
	return o, nil
}

func (s *OffersStore) UpdateOffer(ctx context.Context, id int64, in domain.OfferInput) (domain.Offer, error) {
	const q = `
		WITH o AS (
			UPDATE offers
			SET title = $2, description = $3, discount_percentage = $4, valid_from = $5::date,
			    valid_until = $6::date, is_active = $7, updated_at = now()
			WHERE id = $1
			RETURNING *
		)` + offerSelect + `
		FROM o
		LEFT JOIN users u ON u.id = o.admin_id
	`
	o, err := scanOffer(s.pool.QueryRow(ctx, q, id, in.Title, in.Description,
		nullIfNil(in.DiscountPercentage), in.ValidFrom, in.ValidUntil, in.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Offer{}, domain.ErrNotFound
		}
		return domain.Offer{}, fmt.Errorf("update offer: %w", err)
	}
	return o, nil
}

func (s *OffersStore) DeleteOffer(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
