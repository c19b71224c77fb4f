package postgres

import (
	"time"

	"GymMembershipServer/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
)

const accountColumns = `id, email, user_type, is_approved, is_active, first_name, last_name, age, phone_number, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner, extra ...any) (domain.Account, error) {
	var (
		a     domain.Account
		age   pgtype.Int4
		phone pgtype.Text
	)
	dest := []any{
		&a.ID,
		&a.Email,
		&a.Role,
		&a.IsApproved,
		&a.IsActive,
		&a.FirstName,
		&a.LastName,
		&age,
		&phone,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Account{}, err
	}
	a.Age = int4Ptr(age)
	a.PhoneNumber = textOrEmpty(phone)
	return a, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIfNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func textOrEmpty(t pgtype.Text) string {
	if t.Valid {
		return t.String
	}
	return ""
}

func timestamptzPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	tt := t.Time
	return &tt
}

func int4Ptr(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}

func float8Ptr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
