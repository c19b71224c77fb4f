package service

import (
	"context"
	"strings"

	"GymMembershipServer/internal/domain"
)

type MemberRecordsStore interface {
	ListRecords(ctx context.Context, userID int64) ([]domain.MemberRecord, error)
	CreateRecord(ctx context.Context, memberID, adminID int64, in domain.MemberRecordInput) (domain.MemberRecord, error)
	UpdateRecord(ctx context.Context, id int64, in domain.MemberRecordInput) (domain.MemberRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
}

// MemberRecordService manages admin notes and billing entries. Members can
// only read their own.
type MemberRecordService struct {
	Store MemberRecordsStore
}

func (s *MemberRecordService) ForMember(ctx context.Context, p domain.Principal) ([]domain.MemberRecord, error) {
	return s.Store.ListRecords(ctx, p.UserID)
}

func (s *MemberRecordService) ListForMember(ctx context.Context, memberID int64) ([]domain.MemberRecord, error) {
	if memberID <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.Store.ListRecords(ctx, memberID)
}

func (s *MemberRecordService) Create(ctx context.Context, actor domain.Principal, memberID int64, in domain.MemberRecordInput) (domain.MemberRecord, error) {
	if memberID <= 0 {
		return domain.MemberRecord{}, domain.ErrNotFound
	}
	if err := validateRecord(&in); err != nil {
		return domain.MemberRecord{}, err
	}
	return s.Store.CreateRecord(ctx, memberID, actor.UserID, in)
}

func (s *MemberRecordService) Update(ctx context.Context, id int64, in domain.MemberRecordInput) (domain.MemberRecord, error) {
	if id <= 0 {
		return domain.MemberRecord{}, domain.ErrNotFound
	}
	if err := validateRecord(&in); err != nil {
		return domain.MemberRecord{}, err
	}
	return s.Store.UpdateRecord(ctx, id, in)
}

func (s *MemberRecordService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return s.Store.DeleteRecord(ctx, id)
}

func validateRecord(in *domain.MemberRecordInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.RecordType = strings.ToLower(strings.TrimSpace(in.RecordType))
	if in.RecordType == "" {
		in.RecordType = domain.DefaultRecordType
	}

	fields := map[string]string{}
	validateTitle(fields, in.Title)
	validateText(fields, "description", in.Description)
	if len(in.RecordType) > 50 {
		fields["record_type"] = "must be 50 characters or less"
	}
	// Refunds and credits are recorded as negative amounts.
	if a := in.Amount; a != nil && !validMoney(*a, true) {
		fields["amount"] = "must be a valid amount"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
