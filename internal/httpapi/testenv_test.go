package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"GymMembershipServer/internal/auth"
	"GymMembershipServer/internal/domain"
	"GymMembershipServer/internal/service"
)

// memAccounts backs every account-shaped store interface with one map.
type memAccounts struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*domain.AccountWithPassword
}

func newMemAccounts() *memAccounts {
	return &memAccounts{nextID: 1, accounts: map[int64]*domain.AccountWithPassword{}}
}

func (m *memAccounts) add(t *testing.T, a domain.Account, password string) domain.Account {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextID
	m.nextID++
	m.accounts[a.ID] = &domain.AccountWithPassword{Account: a, PasswordHash: hash}
	return a
}

func (m *memAccounts) update(id int64, fn func(*domain.Account)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.accounts[id].Account)
}

func (m *memAccounts) CreateAccount(_ context.Context, in domain.NewAccount) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, in.Email) {
			return domain.Account{}, domain.ErrEmailTaken
		}
	}
	a := domain.Account{
		ID:         m.nextID,
		Email:      in.Email,
		Role:       in.Role,
		IsApproved: in.Role == domain.RoleAdmin,
		IsActive:   true,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Age:        in.Age,
	}
	m.nextID++
	m.accounts[a.ID] = &domain.AccountWithPassword{Account: a, PasswordHash: in.PasswordHash}
	return a, nil
}

func (m *memAccounts) GetAccountByID(_ context.Context, id int64) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return a.Account, nil
}

func (m *memAccounts) GetAccountByEmail(_ context.Context, email string) (domain.AccountWithPassword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, email) {
			return *a, nil
		}
	}
	return domain.AccountWithPassword{}, domain.ErrNotFound
}

func (m *memAccounts) GetAccountState(_ context.Context, id int64) (domain.AccountState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.AccountState{}, domain.ErrNotFound
	}
	return domain.AccountState{ID: a.ID, Role: a.Role, IsApproved: a.IsApproved, IsActive: a.IsActive}, nil
}

func (m *memAccounts) SetPasswordHash(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (m *memAccounts) UpdateProfile(_ context.Context, id int64, in domain.ProfileUpdate) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	a.FirstName, a.LastName, a.Age, a.PhoneNumber = in.FirstName, in.LastName, in.Age, in.PhoneNumber
	return a.Account, nil
}

func (m *memAccounts) ListMembers(_ context.Context, _ string) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.accounts {
		if a.Role == domain.RoleMember {
			out = append(out, a.Account)
		}
	}
	return out, nil
}

func (m *memAccounts) member(id int64) (*domain.AccountWithPassword, error) {
	a, ok := m.accounts[id]
	if !ok || a.Role != domain.RoleMember {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (m *memAccounts) SetApproved(_ context.Context, id int64, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.member(id)
	if err != nil {
		return err
	}
	a.IsApproved = approved
	return nil
}

func (m *memAccounts) SetActive(_ context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.member(id)
	if err != nil {
		return err
	}
	a.IsActive = active
	return nil
}

func (m *memAccounts) ToggleActive(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.member(id)
	if err != nil {
		return false, err
	}
	a.IsActive = !a.IsActive
	return a.IsActive, nil
}

func (m *memAccounts) DeleteMember(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.member(id); err != nil {
		return err
	}
	delete(m.accounts, id)
	return nil
}

type memResets struct {
	mu       sync.Mutex
	accounts *memAccounts
	tokens   []domain.PasswordResetToken
}

func (m *memResets) ReplaceResetToken(_ context.Context, token domain.PasswordResetToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tokens {
		if m.tokens[i].UserID == token.UserID {
			m.tokens[i].Used = true
		}
	}
	m.tokens = append(m.tokens, token)
	return nil
}

func (m *memResets) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tokens {
		tok := &m.tokens[i]
		if tok.TokenHash == tokenHash && !tok.Used && tok.ExpiresAt.After(now) {
			tok.Used = true
			return tok.UserID, m.accounts.SetPasswordHash(ctx, tok.UserID, passwordHash)
		}
	}
	return 0, domain.ErrResetTokenInvalid
}

type memMailer struct {
	mu   sync.Mutex
	urls []string
}

func (m *memMailer) SendPasswordReset(_ context.Context, _, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, resetURL)
	return nil
}

func (m *memMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.urls) == 0 {
		t.Fatalf("no reset mail sent")
	}
	u, err := url.Parse(m.urls[len(m.urls)-1])
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u.Query().Get("token")
}

type testEnv struct {
	handler       http.Handler
	accounts      *memAccounts
	mailer        *memMailer
	tokens        *auth.TokenService
	announcements *memAnnouncements
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens, err := auth.NewTokenService([]byte("httpapi-test-secret-httpapi-test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	accounts := newMemAccounts()
	mailer := &memMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	attendance := &memAttendance{day: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)}
	announcements := &memAnnouncements{}
	records := &memRecords{accounts: accounts}
	stats := &memStats{accounts: accounts, attendance: attendance, announce: announcements}

	authSvc := &service.AuthService{Accounts: accounts, Tokens: tokens, Logger: logger}
	h := NewRouter(RouterOpts{
		Logger: logger,
		Auth:   authSvc,
		PasswordReset: &service.PasswordResetService{
			Store:    &memResets{accounts: accounts},
			Accounts: accounts,
			Mailer:   mailer,
			Logger:   logger,
		},
		Admin:         &service.AdminService{Members: accounts, Accounts: accounts, Invalidate: authSvc.InvalidateAccount},
		Profile:       &service.ProfileService{Store: accounts},
		Attendance:    &service.AttendanceService{Store: attendance},
		Announcements: &service.AnnouncementService{Store: announcements},
		Stats:         &service.StatsService{Store: stats},
		Offers:        &service.OfferService{Store: &memOffers{}},
		Training:      &service.TrainingService{Store: &memTraining{}},
		Records:       &service.MemberRecordService{Store: records},
		SessionTTL:    time.Hour,
	})
	return &testEnv{
		handler:       h,
		accounts:      accounts,
		mailer:        mailer,
		tokens:        tokens,
		announcements: announcements,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) sessionFor(t *testing.T, id int64, role domain.Role) *http.Cookie {
	t.Helper()
	token, _, err := e.tokens.Issue(id, role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return out
}
