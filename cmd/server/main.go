package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/content"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/notification"
	"github.com/portfolio/backend/internal/ratelimit"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "json")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "driver", cfg.DatabaseDriver, "error", err)
	}
	defer db.Close()

	// Schema is created once at startup. A failure usually means the table
	// already exists, so keep going.
	if err := repository.EnsureSchema(ctx, db); err != nil {
		slog.Error("database initialization error, table probably exists", "error", err)
	}

	m := metrics.New()

	notifier := notification.New(notification.Config{
		Recipient:    cfg.ContactEmail,
		SiteURL:      cfg.SiteURL,
		From:         cfg.MailFrom,
		FromName:     cfg.MailFromName,
		DKIMDomain:   cfg.DKIMDomain,
		DKIMSelector: cfg.DKIMSelector,
	}, mailer.NewClient(cfg.MailRelayURL, cfg.MailAPIKey))

	repo := repository.NewSQLSubmissionRepository(db)
	intake := service.NewSubmissionService(repo, notifier, m)
	admin := service.NewSubmissionAdminService(repo, m)

	store, err := content.NewStore(cfg.ContentDir)
	if err != nil {
		logging.Fatal("failed to load content", "dir", cfg.ContentDir, "error", err)
	}
	if cfg.WatchContent {
		w, err := content.NewWatcher(store, content.DefaultDebounce)
		if err != nil {
			slog.Error("content watcher disabled", "error", err)
		} else {
			go w.Run(ctx)
		}
	}

	limiter := newLimiter(ctx, cfg)
	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN is not set; admin endpoints will reject every request")
	}

	router := handler.NewRouter(handler.RouterConfig{
		Handler:     handler.New(db, cfg.CORSOrigin),
		Submissions: handler.NewSubmissionHandler(intake, admin, cfg.ClientIPHeader),
		Content:     handler.NewContentHandler(store),
		AdminToken:  cfg.AdminToken,
		Limiter:     limiter,
		ClientIP:    handler.NewClientIP(cfg.ClientIPHeader),
		Metrics:     m,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 40 * time.Second, // covers the mail relay timeout
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "driver", cfg.DatabaseDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newLimiter uses Redis when configured so limits hold across instances,
// falling back to the in-process limiter.
func newLimiter(ctx context.Context, cfg config.Config) ratelimit.Limiter {
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			return ratelimit.NewRedis(client, cfg.RateLimitPerMinute)
		}
		slog.Error("redis unavailable, using in-memory rate limiter", "error", err)
	}
	mem := ratelimit.NewMemory(cfg.RateLimitPerMinute)
	go mem.Run(ctx, 5*time.Minute)
	return mem
}
