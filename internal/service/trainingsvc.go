package service

import (
	"context"
	"math"
	"strings"

	"GymMembershipServer/internal/domain"
)

type TrainingStore interface {
	ListPrograms(ctx context.Context, activeOnly bool) ([]domain.TrainingProgram, error)
	CreateProgram(ctx context.Context, adminID int64, in domain.TrainingProgramInput) (domain.TrainingProgram, error)
	UpdateProgram(ctx context.Context, id int64, in domain.TrainingProgramInput) (domain.TrainingProgram, error)
	DeleteProgram(ctx context.Context, id int64) error
}

type TrainingService struct {
	Store TrainingStore
}

func (s *TrainingService) ListActive(ctx context.Context) ([]domain.TrainingProgram, error) {
	return s.Store.ListPrograms(ctx, true)
}

func (s *TrainingService) ListAll(ctx context.Context) ([]domain.TrainingProgram, error) {
	return s.Store.ListPrograms(ctx, false)
}

func (s *TrainingService) Create(ctx context.Context, actor domain.Principal, in domain.TrainingProgramInput) (domain.TrainingProgram, error) {
	if err := validateProgram(&in); err != nil {
		return domain.TrainingProgram{}, err
	}
	return s.Store.CreateProgram(ctx, actor.UserID, in)
}

func (s *TrainingService) Update(ctx context.Context, id int64, in domain.TrainingProgramInput) (domain.TrainingProgram, error) {
	if id <= 0 {
		return domain.TrainingProgram{}, domain.ErrNotFound
	}
	if err := validateProgram(&in); err != nil {
		return domain.TrainingProgram{}, err
	}
	return s.Store.UpdateProgram(ctx, id, in)
}

func (s *TrainingService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.Store.DeleteProgram(ctx, id)
}

func validateProgram(in *domain.TrainingProgramInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.TrainerName = strings.TrimSpace(in.TrainerName)

	fields := map[string]string{}
	validateTitle(fields, in.Title)
	validateText(fields, "description", in.Description)
	if len(in.TrainerName) > 100 {
		fields["trainer_name"] = "must be 100 characters or less"
	}
	if w := in.DurationWeeks; w != nil && (*w < 1 || *w > 520) {
		fields["duration_weeks"] = "must be between 1 and 520"
	}
	if p := in.Price; p != nil && !validMoney(*p, false) {
		fields["price"] = "must be a non-negative amount"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

// validMoney accepts finite amounts that fit NUMERIC(10,2).
func validMoney(v float64, allowNegative bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1e8 {
		return false
	}
	return allowNegative || v >= 0
}
