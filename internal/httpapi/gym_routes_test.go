package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"GymMembershipServer/internal/domain"
)

func addMember(t *testing.T, env *testEnv, email string) domain.Account {
	t.Helper()
	return env.accounts.add(t, domain.Account{Email: email, Role: domain.RoleMember, IsApproved: true, IsActive: true}, "secret1")
}

func addAdmin(t *testing.T, env *testEnv) domain.Account {
	t.Helper()
	return env.accounts.add(t, domain.Account{Email: "admin@gym.example", Role: domain.RoleAdmin}, "adminpass")
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestAttendanceRoutes(t *testing.T) {
	env := newTestEnv(t)
	admin := addAdmin(t, env)
	m := addMember(t, env, "m@gym.example")
	memberCookie := env.sessionFor(t, m.ID, domain.RoleMember)
	adminCookie := env.sessionFor(t, admin.ID, domain.RoleAdmin)

	rr := env.do(t, http.MethodGet, "/v1/member/attendance/today", nil, memberCookie)
	if rr.Code != http.StatusOK || decodeBody(t, rr)["marked"] != false {
		t.Fatalf("today before mark: %d %s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodPost, "/v1/member/attendance", nil, memberCookie)
	if body := decodeBody(t, rr); rr.Code != http.StatusOK || body["success"] != true || body["alreadyMarked"] != nil {
		t.Fatalf("first mark: %d %v", rr.Code, body)
	}
	rr = env.do(t, http.MethodPost, "/v1/member/attendance", nil, memberCookie)
	if body := decodeBody(t, rr); rr.Code != http.StatusOK || body["alreadyMarked"] != true || body["success"] != nil {
		t.Fatalf("second mark: %d %v", rr.Code, body)
	}

	rr = env.do(t, http.MethodGet, "/v1/member/attendance/today", nil, memberCookie)
	if decodeBody(t, rr)["marked"] != true {
		t.Fatalf("today after mark: %s", rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/v1/member/attendance/history", nil, memberCookie)
	if hist := decodeList(t, rr); rr.Code != http.StatusOK || len(hist) != 1 {
		t.Fatalf("history: %d %s", rr.Code, rr.Body.String())
	}

	rr = env.do(t, http.MethodGet, "/v1/admin/attendance", nil, adminCookie)
	if all := decodeList(t, rr); rr.Code != http.StatusOK || len(all) != 1 {
		t.Fatalf("admin attendance: %d %s", rr.Code, rr.Body.String())
	}
}

func TestAnnouncementRoutes(t *testing.T) {
	env := newTestEnv(t)
	admin := addAdmin(t, env)
	m := addMember(t, env, "m@gym.example")
	memberCookie := env.sessionFor(t, m.ID, domain.RoleMember)
	adminCookie := env.sessionFor(t, admin.ID, domain.RoleAdmin)

	rr := env.do(t, http.MethodPost, "/v1/admin/announcements", map[string]any{"title": "Closed Monday", "content": "Maintenance."}, adminCookie)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rr.Code, rr.Body.String())
	}
	created := decodeBody(t, rr)
	if created["is_active"] != true {
		t.Fatalf("is_active should default to true: %v", created)
	}
	id := int64(created["id"].(float64))

	rr = env.do(t, http.MethodPost, "/v1/admin/announcements", map[string]any{"title": "", "content": "x"}, adminCookie)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("blank title: %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/v1/member/announcements", nil, memberCookie)
	if list := decodeList(t, rr); len(list) != 1 {
		t.Fatalf("member list: %s", rr.Body.String())
	}
	if n := env.announcements.readCount(m.ID); n != 0 {
		t.Fatalf("notifications marked read without markRead: %d", n)
	}
	env.do(t, http.MethodGet, "/v1/member/announcements?markRead=true", nil, memberCookie)
	if n := env.announcements.readCount(m.ID); n != 1 {
		t.Fatalf("markRead not applied: %d", n)
	}

	if rr := env.do(t, http.MethodDelete, "/v1/admin/announcements/"+itoa(id), nil, adminCookie); rr.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rr.Code, rr.Body.String())
	}
	rr = env.do(t, http.MethodGet, "/v1/member/announcements", nil, memberCookie)
	if list := decodeList(t, rr); len(list) != 0 {
		t.Fatalf("deleted announcement still visible: %s", rr.Body.String())
	}
	rr = env.do(t, http.MethodGet, "/v1/admin/announcements", nil, adminCookie)
	if list := decodeList(t, rr); len(list) != 1 {
		t.Fatalf("admin list should keep inactive: %s", rr.Body.String())
	}

	if rr := env.do(t, http.MethodPut, "/v1/admin/announcements/999", map[string]any{"title": "t", "content": "c"}, adminCookie); rr.Code != http.StatusNotFound {
		t.Fatalf("update missing: %d", rr.Code)
	}
}

func TestStatsRoutes(t *testing.T) {
	env := newTestEnv(t)
	admin := addAdmin(t, env)
	m := addMember(t, env, "m@gym.example")
	addMember(t, env, "m2@gym.example")
	memberCookie := env.sessionFor(t, m.ID, domain.RoleMember)
	adminCookie := env.sessionFor(t, admin.ID, domain.RoleAdmin)

	env.do(t, http.MethodPost, "/v1/member/attendance", nil, memberCookie)

	rr := env.do(t, http.MethodGet, "/v1/member/stats", nil, memberCookie)
	body := decodeBody(t, rr)
	if rr.Code != http.StatusOK || body["todayAttended"] != true || body["weekAttendance"] != float64(1) {
		t.Fatalf("member stats: %d %v", rr.Code, body)
	}

	rr = env.do(t, http.MethodGet, "/v1/admin/stats", nil, adminCookie)
	body = decodeBody(t, rr)
	if rr.Code != http.StatusOK || body["totalMembers"] != float64(2) || body["todayAttendance"] != float64(1) {
		t.Fatalf("admin stats: %d %v", rr.Code, body)
	}
}

func TestGymRoutesRoleGating(t *testing.T) {
	env := newTestEnv(t)
	admin := addAdmin(t, env)
	m := addMember(t, env, "m@gym.example")
	memberCookie := env.sessionFor(t, m.ID, domain.RoleMember)
	adminCookie := env.sessionFor(t, admin.ID, domain.RoleAdmin)

	memberPaths := []string{
		"/v1/member/attendance/today",
		"/v1/member/attendance/history",
		"/v1/member/announcements",
		"/v1/member/stats",
		"/v1/member/offers",
		"/v1/member/personal-training",
		"/v1/member/records",
	}
	adminPaths := []string{
		"/v1/admin/attendance",
		"/v1/admin/announcements",
		"/v1/admin/stats",
		"/v1/admin/offers",
		"/v1/admin/personal-training",
		"/v1/admin/members/" + itoa(m.ID) + "/records",
	}
	for _, p := range memberPaths {
		if rr := env.do(t, http.MethodGet, p, nil, nil); rr.Code != http.StatusUnauthorized {
			t.Errorf("%s without session: %d", p, rr.Code)
		}
		if rr := env.do(t, http.MethodGet, p, nil, adminCookie); rr.Code != http.StatusForbidden {
			t.Errorf("%s as admin: %d", p, rr.Code)
		}
		if rr := env.do(t, http.MethodGet, p, nil, memberCookie); rr.Code != http.StatusOK {
			t.Errorf("%s as member: %d %s", p, rr.Code, rr.Body.String())
		}
	}
	for _, p := range adminPaths {
		if rr := env.do(t, http.MethodGet, p, nil, nil); rr.Code != http.StatusUnauthorized {
			t.Errorf("%s without session: %d", p, rr.Code)
		}
		if rr := env.do(t, http.MethodGet, p, nil, memberCookie); rr.Code != http.StatusForbidden {
			t.Errorf("%s as member: %d", p, rr.Code)
		}
		if rr := env.do(t, http.MethodGet, p, nil, adminCookie); rr.Code != http.StatusOK {
			t.Errorf("%s as admin: %d %s", p, rr.Code, rr.Body.String())
		}
	}
	if rr := env.do(t, http.MethodPost, "/v1/member/attendance", nil, adminCookie); rr.Code != http.StatusForbidden {
		t.Errorf("admin marking attendance: %d", rr.Code)
	}
}
