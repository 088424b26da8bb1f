package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/smtp"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/mglsites/vipgate/internal/adapter/driven/credfile"
	"github.com/mglsites/vipgate/internal/adapter/driven/mailer"
	sqliteadapter "github.com/mglsites/vipgate/internal/adapter/driven/sqlite"
	"github.com/mglsites/vipgate/internal/adapter/driven/telegram"
	httphandler "github.com/mglsites/vipgate/internal/adapter/driving/http"
	webhandler "github.com/mglsites/vipgate/internal/adapter/driving/web"
	"github.com/mglsites/vipgate/internal/application"
	"github.com/mglsites/vipgate/internal/config"
	"github.com/mglsites/vipgate/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on malformed env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"credentials_path", cfg.CredentialsPath,
		"session_db_path", cfg.SessionDBPath,
		"cleanup_interval", cfg.CleanupInterval,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the credential file store.
	credStore, err := credfile.Open(cfg.CredentialsPath, slog.Default())
	if err != nil {
		return err
	}
	slog.Info("credential store opened", "path", cfg.CredentialsPath)

	// 4. Open session database (dual reader/writer with WAL mode) and migrate.
	db, err := sqliteadapter.NewDB(cfg.SessionDBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("session database ready", "path", cfg.SessionDBPath)

	sessionStore := sqliteadapter.NewSessionRepo(db)

	// 5. Wire notifiers (disabled fallbacks when unconfigured).
	var admin driven.AdminNotifier
	if cfg.HasTelegram() {
		admin = telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, slog.Default())
		slog.Info("telegram notifier enabled", "chat_id", cfg.TelegramChatID)
	} else {
		admin = telegram.NewDisabledNotifier(slog.Default())
		slog.Warn("telegram not configured, admin notifications disabled")
	}

	var users driven.UserNotifier
	if cfg.HasSMTP() {
		var auth smtp.Auth
		if cfg.SMTPUsername != "" {
			host, _, splitErr := net.SplitHostPort(cfg.SMTPAddr)
			if splitErr != nil {
				return splitErr
			}
			auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, host)
		}
		users = mailer.NewMailer(cfg.SMTPAddr, cfg.SMTPFrom, auth)
		slog.Info("smtp mailer enabled", "addr", cfg.SMTPAddr, "from", cfg.SMTPFrom)
	} else {
		users = mailer.NewDisabledMailer(slog.Default())
		slog.Warn("smtp not configured, user emails disabled")
	}

	// 6. Create application services.
	issueSvc := application.NewIssueService(credStore, admin, users, slog.Default())
	authSvc := application.NewAuthService(credStore, sessionStore, slog.Default())
	cleanupSvc := application.NewCleanupService(credStore, sessionStore, cfg.CleanupInterval, slog.Default())
	go cleanupSvc.Start(ctx)

	// 7. Register API and page routes, then apply middleware.
	mux := http.NewServeMux()
	apiHandler := httphandler.NewHandler(issueSvc, authSvc, cfg.SecureCookies, slog.Default())
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(authSvc, cfg.SecureCookies, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 8. Wait for shutdown signal.
	slog.Info("vipgate started", "listen_addr", cfg.ListenAddr)
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
