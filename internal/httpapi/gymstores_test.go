package httpapi

import (
	"context"
	"sync"
	"time"

	"GymMembershipServer/internal/domain"
)

type memAttendance struct {
	mu      sync.Mutex
	day     time.Time
	nextID  int64
	records []domain.AttendanceRecord
}

func (m *memAttendance) MarkToday(_ context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UserID == userID && r.Date.Equal(m.day) {
			return false, nil
		}
	}
	m.nextID++
	m.records = append(m.records, domain.AttendanceRecord{ID: m.nextID, UserID: userID, Date: m.day, CheckInTime: m.day.Add(9 * time.Hour)})
	return true, nil
}

func (m *memAttendance) MarkedToday(_ context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UserID == userID && r.Date.Equal(m.day) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAttendance) ListForMember(_ context.Context, userID int64) ([]domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AttendanceRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memAttendance) ListAll(_ context.Context) ([]domain.AttendanceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AttendanceEntry, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, domain.AttendanceEntry{ID: r.ID, Date: r.Date, CheckInTime: r.CheckInTime})
	}
	return out, nil
}

type memAnnouncements struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.Announcement
	readBy map[int64]int
}

func (m *memAnnouncements) ListAnnouncements(_ context.Context, activeOnly bool) ([]domain.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Announcement{}
	for _, a := range m.items {
		if !activeOnly || a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAnnouncements) CreateAnnouncement(_ context.Context, adminID int64, in domain.AnnouncementInput) (domain.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a := domain.Announcement{ID: m.nextID, AdminID: adminID, Title: in.Title, Content: in.Content, IsActive: in.IsActive}
	m.items = append(m.items, a)
	return a, nil
}

func (m *memAnnouncements) UpdateAnnouncement(_ context.Context, id int64, in domain.AnnouncementInput) (domain.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Title, m.items[i].Content, m.items[i].IsActive = in.Title, in.Content, in.IsActive
			return m.items[i], nil
		}
	}
	return domain.Announcement{}, domain.ErrNotFound
}

func (m *memAnnouncements) DeactivateAnnouncement(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].IsActive = false
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memAnnouncements) MarkNotificationsRead(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readBy == nil {
		m.readBy = map[int64]int{}
	}
	m.readBy[userID]++
	return 1, nil
}

func (m *memAnnouncements) readCount(userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readBy[userID]
}

// memStats derives counts from the other in-memory stores.
type memStats struct {
	accounts   *memAccounts
	attendance *memAttendance
	announce   *memAnnouncements
}

func (m *memStats) MemberStats(ctx context.Context, userID int64, _, _ time.Time) (domain.MemberStats, error) {
	today, err := m.attendance.MarkedToday(ctx, userID)
	if err != nil {
		return domain.MemberStats{}, err
	}
	hist, err := m.attendance.ListForMember(ctx, userID)
	if err != nil {
		return domain.MemberStats{}, err
	}
	return domain.MemberStats{TodayAttended: today, WeekAttendance: len(hist), MonthAttendance: len(hist)}, nil
}

func (m *memStats) AdminStats(ctx context.Context, _ time.Time) (domain.AdminStats, error) {
	members, err := m.accounts.ListMembers(ctx, "")
	if err != nil {
		return domain.AdminStats{}, err
	}
	all, err := m.attendance.ListAll(ctx)
	if err != nil {
		return domain.AdminStats{}, err
	}
	anns, err := m.announce.ListAnnouncements(ctx, true)
	if err != nil {
		return domain.AdminStats{}, err
	}
	return domain.AdminStats{TotalMembers: len(members), TodayAttendance: len(all), TotalAnnouncements: len(anns)}, nil
}

type memOffers struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.Offer
}

func (m *memOffers) ListOffers(_ context.Context, activeOnly bool) ([]domain.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Offer{}
	for _, o := range m.items {
		if !activeOnly || o.IsActive {
			out = append(out, o)
		}
	}
	return out, nil
}

func offerFrom(id int64, in domain.OfferInput) domain.Offer {
	return domain.Offer{
		ID:                 id,
		Title:              in.Title,
		Description:        in.Description,
		DiscountPercentage: in.DiscountPercentage,
		ValidFrom:          in.ValidFrom,
		ValidUntil:         in.ValidUntil,
		IsActive:           in.IsActive,
	}
}

func (m *memOffers) CreateOffer(_ context.Context, _ int64, in domain.OfferInput) (domain.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	o := offerFrom(m.nextID, in)
	m.items = append(m.items, o)
	return o, nil
}

func (m *memOffers) UpdateOffer(_ context.Context, id int64, in domain.OfferInput) (domain.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i] = offerFrom(id, in)
			return m.items[i], nil
		}
	}
	return domain.Offer{}, domain.ErrNotFound
}

func (m *memOffers) DeleteOffer(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memTraining struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.TrainingProgram
}

func programFrom(id int64, in domain.TrainingProgramInput) domain.TrainingProgram {
	return domain.TrainingProgram{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		TrainerName:   in.TrainerName,
		DurationWeeks: in.DurationWeeks,
		Price:         in.Price,
		IsActive:      in.IsActive,
	}
}

func (m *memTraining) ListPrograms(_ context.Context, activeOnly bool) ([]domain.TrainingProgram, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.TrainingProgram{}
	for _, p := range m.items {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memTraining) CreateProgram(_ context.Context, _ int64, in domain.TrainingProgramInput) (domain.TrainingProgram, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p := programFrom(m.nextID, in)
	m.items = append(m.items, p)
	return p, nil
}

func (m *memTraining) UpdateProgram(_ context.Context, id int64, in domain.TrainingProgramInput) (domain.TrainingProgram, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i] = programFrom(id, in)
			return m.items[i], nil
		}
	}
	return domain.TrainingProgram{}, domain.ErrNotFound
}

func (m *memTraining) DeleteProgram(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// memRecords only accepts records for accounts that are members, like the
// Postgres store.
type memRecords struct {
	mu       sync.Mutex
	accounts *memAccounts
	nextID   int64
	items    []domain.MemberRecord
}

func (m *memRecords) isMember(id int64) bool {
	m.accounts.mu.Lock()
	defer m.accounts.mu.Unlock()
	_, err := m.accounts.member(id)
	return err == nil
}

func (m *memRecords) ListRecords(_ context.Context, userID int64) ([]domain.MemberRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.MemberRecord{}
	for _, r := range m.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRecords) CreateRecord(_ context.Context, memberID, _ int64, in domain.MemberRecordInput) (domain.MemberRecord, error) {
	if !m.isMember(memberID) {
		return domain.MemberRecord{}, domain.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r := domain.MemberRecord{ID: m.nextID, UserID: memberID, Title: in.Title, Description: in.Description, Amount: in.Amount, RecordType: in.RecordType}
	m.items = append(m.items, r)
	return r, nil
}

func (m *memRecords) UpdateRecord(_ context.Context, id int64, in domain.MemberRecordInput) (domain.MemberRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			r := &m.items[i]
			r.Title, r.Description, r.Amount, r.RecordType = in.Title, in.Description, in.Amount, in.RecordType
			return *r, nil
		}
	}
	return domain.MemberRecord{}, domain.ErrNotFound
}

func (m *memRecords) DeleteRecord(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
