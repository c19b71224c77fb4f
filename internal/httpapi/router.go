package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"GymMembershipServer/internal/domain"
	"GymMembershipServer/internal/service"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing func(context.Context) error

	Auth          *service.AuthService
	PasswordReset *service.PasswordResetService
	Admin         *service.AdminService
	Attendance    *service.AttendanceService
	Announcements *service.AnnouncementService
	Profile       *service.ProfileService
	Stats         *service.StatsService
	Offers        *service.OfferService
	Training      *service.TrainingService
	Records       *service.MemberRecordService

	CookieSecure bool
	SessionTTL   time.Duration
	CORSOrigins  []string
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := &api{
		logger:        logger,
		isProd:        opts.IsProd,
		dbPing:        opts.DBPing,
		authSvc:       opts.Auth,
		resetSvc:      opts.PasswordReset,
		adminSvc:      opts.Admin,
		attendanceSvc: opts.Attendance,
		announceSvc:   opts.Announcements,
		profileSvc:    opts.Profile,
		statsSvc:      opts.Stats,
		offerSvc:      opts.Offers,
		trainingSvc:   opts.Training,
		recordSvc:     opts.Records,
		cookieSecure:  opts.CookieSecure,
		sessionTTL:    opts.SessionTTL,
		loginLimiter:  newLoginLimiter(),
	}

	publicMux := http.NewServeMux()
	apiMux := http.NewServeMux()

	publicMux.HandleFunc("GET /healthz", api.handleHealthz)

	if api.authSvc == nil {
		apiMux.HandleFunc("/v1/", handleNotImplemented)
	} else {
		member := func(h http.HandlerFunc) http.HandlerFunc { return api.requireRole(domain.RoleMember, h) }
		admin := func(h http.HandlerFunc) http.HandlerFunc { return api.requireRole(domain.RoleAdmin, h) }

		apiMux.HandleFunc("POST /v1/auth/signup", api.handleAuthSignup)
		apiMux.HandleFunc("POST /v1/auth/login", api.handleAuthLogin)
		apiMux.HandleFunc("POST /v1/auth/logout", api.handleAuthLogout)
		apiMux.HandleFunc("GET /v1/me", api.requireAuth(api.handleMe))

		if api.resetSvc != nil {
			apiMux.HandleFunc("POST /v1/auth/forgot-password", api.handleAuthForgot)
			apiMux.HandleFunc("POST /v1/auth/reset-password", api.handleAuthReset)
		}

		if api.profileSvc != nil {
			apiMux.HandleFunc("GET /v1/member/profile", member(api.handleProfileGet))
			apiMux.HandleFunc("PUT /v1/member/profile", member(api.handleProfileUpdate))
		}
		if api.attendanceSvc != nil {
			apiMux.HandleFunc("POST /v1/member/attendance", member(api.handleAttendanceMark))
			apiMux.HandleFunc("GET /v1/member/attendance/today", member(api.handleAttendanceToday))
			apiMux.HandleFunc("GET /v1/member/attendance/history", member(api.handleAttendanceHistory))
			apiMux.HandleFunc("GET /v1/admin/attendance", admin(api.handleAdminAttendance))
		}
		if api.announceSvc != nil {
			apiMux.HandleFunc("GET /v1/member/announcements", member(api.handleMemberAnnouncements))
			apiMux.HandleFunc("GET /v1/admin/announcements", admin(api.handleAdminAnnouncementsList))
			apiMux.HandleFunc("POST /v1/admin/announcements", admin(api.handleAdminAnnouncementsCreate))
			apiMux.HandleFunc("PUT /v1/admin/announcements/{id}", admin(api.handleAdminAnnouncementsUpdate))
			apiMux.HandleFunc("DELETE /v1/admin/announcements/{id}", admin(api.handleAdminAnnouncementsDelete))
		}
		if api.statsSvc != nil {
			apiMux.HandleFunc("GET /v1/member/stats", member(api.handleMemberStats))
			apiMux.HandleFunc("GET /v1/admin/stats", admin(api.handleAdminStats))
		}
		if api.adminSvc != nil {
			apiMux.HandleFunc("GET /v1/admin/members", admin(api.handleAdminMembersList))
			apiMux.HandleFunc("POST /v1/admin/members/{id}/approve", admin(api.handleAdminMembersApprove))
			apiMux.HandleFunc("POST /v1/admin/members/{id}/toggle", admin(api.handleAdminMembersToggle))
			apiMux.HandleFunc("PATCH /v1/admin/members/{id}/status", admin(api.handleAdminMembersStatus))
			apiMux.HandleFunc("DELETE /v1/admin/members/{id}", admin(api.handleAdminMembersDelete))
		}
		if api.offerSvc != nil {
			apiMux.HandleFunc("GET /v1/member/offers", member(api.handleMemberOffers))
			apiMux.HandleFunc("GET /v1/admin/offers", admin(api.handleAdminOffersList))
			apiMux.HandleFunc("POST /v1/admin/offers", admin(api.handleAdminOffersCreate))
			apiMux.HandleFunc("PUT /v1/admin/offers/{id}", admin(api.handleAdminOffersUpdate))
			apiMux.HandleFunc("DELETE /v1/admin/offers/{id}", admin(api.handleAdminOffersDelete))
		}
		if api.trainingSvc != nil {
			apiMux.HandleFunc("GET /v1/member/personal-training", member(api.handleMemberTraining))
			apiMux.HandleFunc("GET /v1/admin/personal-training", admin(api.handleAdminTrainingList))
			apiMux.HandleFunc("POST /v1/admin/personal-training", admin(api.handleAdminTrainingCreate))
			apiMux.HandleFunc("PUT /v1/admin/personal-training/{id}", admin(api.handleAdminTrainingUpdate))
			apiMux.HandleFunc("DELETE /v1/admin/personal-training/{id}", admin(api.handleAdminTrainingDelete))
		}
		if api.recordSvc != nil {
			apiMux.HandleFunc("GET /v1/member/records", member(api.handleMemberRecords))
			apiMux.HandleFunc("GET /v1/admin/members/{id}/records", admin(api.handleAdminRecordsList))
			apiMux.HandleFunc("POST /v1/admin/members/{id}/records", admin(api.handleAdminRecordsCreate))
			apiMux.HandleFunc("PUT /v1/admin/members/records/{id}", admin(api.handleAdminRecordsUpdate))
			apiMux.HandleFunc("DELETE /v1/admin/members/records/{id}", admin(api.handleAdminRecordsDelete))
		}
	}

	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := apiMux.Handler(r)
		if pattern == "" {
			handleV1NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/") || r.URL.Path == "/v1" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		publicMux.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = RequestLogger(logger)(h)
	h = RequestID()(h)
	h = CORS(opts.CORSOrigins)(h)
	h = Recoverer(logger, opts.IsProd)(h)
	return h
}

func handleNotImplemented(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotImplemented, "not_implemented", "not implemented")
}

func handleV1NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "not found")
}

type api struct {
	logger *slog.Logger
	isProd bool

	dbPing func(context.Context) error

	authSvc       *service.AuthService
	resetSvc      *service.PasswordResetService
	adminSvc      *service.AdminService
	attendanceSvc *service.AttendanceService
	announceSvc   *service.AnnouncementService
	profileSvc    *service.ProfileService
	statsSvc      *service.StatsService
	offerSvc      *service.OfferService
	trainingSvc   *service.TrainingService
	recordSvc     *service.MemberRecordService

	cookieSecure bool
	sessionTTL   time.Duration

	loginLimiter *loginLimiter
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
