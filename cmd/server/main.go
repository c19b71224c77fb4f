package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GymMembershipServer/internal/auth"
	"GymMembershipServer/internal/cache"
	"GymMembershipServer/internal/config"
	"GymMembershipServer/internal/domain"
	"GymMembershipServer/internal/email"
	"GymMembershipServer/internal/httpapi"
	"GymMembershipServer/internal/service"
	"GymMembershipServer/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)
	if cfg.SessionSecretGenerated {
		logger.Warn("APP_SESSION_SECRET not set; using a random secret, sessions will not survive a restart")
	}

	tokens, err := auth.NewTokenService([]byte(cfg.SessionSecret), cfg.SessionTTL)
	if err != nil {
		logger.Error("token service", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := httpapi.RouterOpts{
		Logger:       logger,
		IsProd:       cfg.IsProd(),
		CookieSecure: cfg.CookieSecure(),
		SessionTTL:   tokens.TTL(),
		CORSOrigins:  cfg.CORSOrigins,
	}

	if cfg.DBDSN != "" {
		pgPool, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			logger.Error("db open failed", "err", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		if cfg.Migrate {
			if err := postgres.Migrate(ctx, pgPool); err != nil {
				logger.Error("db migrate failed", "err", err)
				os.Exit(1)
			}
		}

		accounts := postgres.NewAccountsStore(pgPool)
		resets := postgres.NewPasswordResetStore(pgPool)
		revoked := postgres.NewRevokedTokensStore(pgPool)

		if err := bootstrapAdmin(ctx, logger, accounts, cfg.AdminBootstrapEmail, cfg.AdminBootstrapPassword); err != nil {
			logger.Error("bootstrap admin failed", "err", err)
			os.Exit(1)
		}

		mailer, err := newMailer(cfg, logger)
		if err != nil {
			logger.Error("mailer", "err", err)
			os.Exit(1)
		}

		authSvc := &service.AuthService{Accounts: accounts, Tokens: tokens, Logger: logger}
		if cfg.SessionDenylist {
			authSvc.Revoked = revoked
		}
		if cfg.AccountCacheTTL > 0 {
			authSvc.States = cache.NewTTL[int64, domain.AccountState](cfg.AccountCacheTTL)
		}

		opts.DBPing = pgPool.Ping
		opts.Auth = authSvc
		opts.PasswordReset = &service.PasswordResetService{
			Store:     resets,
			Accounts:  accounts,
			Mailer:    mailer,
			PublicURL: cfg.PublicURL,
			TokenTTL:  cfg.ResetTokenTTL,
			Logger:    logger,
			OnReset:   authSvc.InvalidateAccount,
		}
		opts.Admin = &service.AdminService{
			Members:    postgres.NewAdminMembersStore(pgPool),
			Accounts:   accounts,
			Invalidate: authSvc.InvalidateAccount,
		}
		opts.Attendance = &service.AttendanceService{Store: postgres.NewAttendanceStore(pgPool)}
		opts.Announcements = &service.AnnouncementService{Store: postgres.NewAnnouncementsStore(pgPool)}
		opts.Profile = &service.ProfileService{Store: accounts}
		opts.Stats = &service.StatsService{Store: postgres.NewStatsStore(pgPool)}
		opts.Offers = &service.OfferService{Store: postgres.NewOffersStore(pgPool)}
		opts.Training = &service.TrainingService{Store: postgres.NewTrainingStore(pgPool)}
		opts.Records = &service.MemberRecordService{Store: postgres.NewMemberRecordsStore(pgPool)}

		go cleanupLoop(ctx, logger, time.Hour, resets, revoked)
	} else {
		logger.Warn("APP_DB_DSN not set; /v1 routes are disabled")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func newMailer(cfg config.Config, logger *slog.Logger) (email.Mailer, error) {
	if cfg.ResendAPIKey == "" {
		logger.Info("APP_RESEND_API_KEY not set; reset links are logged instead of mailed")
		return email.LogMailer{Logger: logger}, nil
	}
	from, err := mail.ParseAddress(cfg.MailFrom)
	if err != nil {
		return nil, fmt.Errorf("APP_MAIL_FROM: %w", err)
	}
	return email.NewResendMailer(cfg.ResendAPIKey, from.Name, from.Address), nil
}

type expiredPurger interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// cleanupLoop drops used or expired reset tokens and denylist entries that
// outlived the session they revoked.
func cleanupLoop(ctx context.Context, logger *slog.Logger, every time.Duration, purgers ...expiredPurger) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			for _, p := range purgers {
				n, err := p.DeleteExpired(ctx, now)
				if err != nil {
					logger.WarnContext(ctx, "cleanup failed", "err", err)
					continue
				}
				if n > 0 {
					logger.DebugContext(ctx, "cleanup", "deleted", n)
				}
			}
		}
	}
}

func bootstrapAdmin(ctx context.Context, logger *slog.Logger, accounts *postgres.AccountsStore, emailAddr, password string) error {
	if password == "" {
		return nil
	}
	if len(password) < 12 {
		return errors.New("APP_ADMIN_BOOTSTRAP_PASSWORD: must be at least 12 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("admin bootstrap: hash password: %w", err)
	}

	existing, err := accounts.GetAccountByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		if existing.Role == domain.RoleAdmin {
			logger.Info("admin bootstrap: admin already exists", "email", emailAddr)
			return nil
		}
		if err := accounts.PromoteToAdmin(ctx, existing.ID, hash); err != nil {
			return fmt.Errorf("admin bootstrap: promote: %w", err)
		}
		logger.Info("admin bootstrap: promoted existing account", "email", emailAddr)
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("admin bootstrap: lookup account: %w", err)
	}

	_, err = accounts.CreateAccount(ctx, domain.NewAccount{
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		FirstName:    "Admin",
		LastName:     "User",
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			logger.Info("admin bootstrap: admin already exists", "email", emailAddr)
			return nil
		}
		return fmt.Errorf("admin bootstrap: create account: %w", err)
	}

	logger.Info("admin bootstrap: created admin account", "email", emailAddr)
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
