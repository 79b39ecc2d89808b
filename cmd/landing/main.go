package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/neuroeducatimo/landing/internal/admin"
	"github.com/neuroeducatimo/landing/internal/articles"
	"github.com/neuroeducatimo/landing/internal/blog"
	"github.com/neuroeducatimo/landing/internal/leads"
	"github.com/neuroeducatimo/landing/internal/notifications"
	"github.com/neuroeducatimo/landing/internal/pages"
	"github.com/neuroeducatimo/landing/internal/seo"
	"github.com/neuroeducatimo/landing/internal/siteconfig"
	"github.com/neuroeducatimo/landing/internal/uploads"
	"github.com/neuroeducatimo/landing/migrations"
	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/config"
	"github.com/neuroeducatimo/landing/pkg/database"
	"github.com/neuroeducatimo/landing/pkg/health"
	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/neuroeducatimo/landing/pkg/markup"
	"github.com/neuroeducatimo/landing/pkg/ratelimit"
	redisclient "github.com/neuroeducatimo/landing/pkg/redis"
	"github.com/neuroeducatimo/landing/pkg/resilience"
	"github.com/neuroeducatimo/landing/pkg/secrets"
	"github.com/neuroeducatimo/landing/pkg/storage"
	"github.com/neuroeducatimo/landing/pkg/tracing"
	"github.com/neuroeducatimo/landing/pkg/worker"
	"go.uber.org/zap"
)

const (
	serviceName = "landing"
	// backgroundTaskTimeout bounds a single thank-you email
	backgroundTaskTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment, cfg.Server.LogLevel,
		zap.String("service", cfg.Server.ServiceName),
		zap.String("version", cfg.Server.Version),
	); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger.Info("Starting landing service",
		zap.String("version", cfg.Server.Version),
		zap.String("environment", cfg.Server.Environment),
	)

	if cfg.Secrets.Provider != "" {
		manager, err := secrets.NewManager(ctx, secrets.ConfigFromApp(cfg.Secrets))
		if err != nil {
			return fmt.Errorf("secrets manager: %w", err)
		}
		defer manager.Close()

		if err := secrets.ApplySecrets(ctx, cfg, manager); err != nil {
			return err
		}
	}

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Server.Environment,
			Release:          serviceName + "@" + cfg.Server.Version,
			EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
		})
		if err != nil {
			logger.Warn("Failed to initialize Sentry", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.Server)
	if err != nil {
		logger.Warn("Tracing disabled", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	// Database
	pool, err := database.NewPostgresPool(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer database.Close(pool)
	logger.Info("Connected to PostgreSQL")

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(migrations.FS, cfg.Database.MigrationURL()); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		logger.Info("Database migrations applied")
	}

	db := database.OpenSQL(pool)
	defer db.Close()

	checks := map[string]common.CheckFunc{
		"database": health.DatabaseChecker(db),
		"pages":    health.StaticPagesChecker(cfg.Server.StaticDir, string(locale.EN)+".html"),
	}

	// Redis is optional; without it articles are read straight from the
	// database and login attempts are not throttled
	var (
		articleCache articles.Cache = articles.NoopCache{}
		limiter      *ratelimit.Limiter
	)
	if cfg.Redis.Enabled {
		rdb, err := redisclient.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer rdb.Close()
			articleCache = articles.NewRedisCache(rdb.Client, cfg.Redis.CacheTTLDuration())
			limiter = ratelimit.NewLimiter(rdb.Client, cfg.RateLimit)
			checks["redis"] = rdb.Check
			logger.Info("Connected to Redis")
		}
	}

	bundle, err := siteconfig.Load(cfg.Site.ContentFile)
	if err != nil {
		return fmt.Errorf("site content: %w", err)
	}

	executor := worker.NewExecutor(backgroundTaskTimeout)

	h, err := buildHandlers(ctx, cfg, db, articleCache, limiter, bundle, executor)
	if err != nil {
		return err
	}
	h.checks = checks

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           setupRouter(cfg, h),
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := executor.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Background tasks did not finish in time", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("Tracing shutdown failed", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}

// buildHandlers wires services into HTTP handlers
func buildHandlers(ctx context.Context, cfg *config.Config, db *sql.DB, cache articles.Cache, limiter *ratelimit.Limiter, bundle *siteconfig.Bundle, executor *worker.Executor) (*handlers, error) {
	resolver := locale.NewResolver(cfg.Site.DefaultLanguage)

	articleService := articles.NewService(articles.NewRepository(db), cache, markup.NewRenderer())

	linker := seo.NewLinker(bundle)
	site := seo.Site{
		BaseURL:       cfg.Site.BaseURL,
		Author:        cfg.Site.Author,
		Publisher:     cfg.Site.Publisher,
		PublisherLogo: cfg.Site.PublisherLogo,
	}
	blogService := blog.NewService(articleService, linker, resolver, bundle.Catalog(), site, cfg.Site.BlogDefaultLanguage)

	operator, thankYou, err := buildSenders(cfg)
	if err != nil {
		return nil, err
	}
	notifier := notifications.NewService(operator, cfg.SMTP.OperatorEmail, thankYou, bundle)
	leadService := leads.NewService(leads.NewRepository(db), notifier, executor)

	auth, err := admin.NewAuthenticator(cfg.Admin)
	if err != nil {
		return nil, fmt.Errorf("admin auth: %w", err)
	}
	if !auth.Enabled() {
		logger.Warn("Admin login disabled: ADMIN_PASSWORD or ADMIN_PASSWORD_HASH not set")
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	h := &handlers{
		pages:    pages.NewHandler(cfg.Server.StaticDir, resolver),
		blog:     blog.NewHandler(blogService),
		articles: articles.NewHandler(articleService),
		leads:    leads.NewHandler(leadService),
		uploads:  uploads.NewHandler(uploads.NewService(store, cfg.Storage.MaxUploadBytes)),
		admin:    admin.NewHandler(auth, limiter),
		sessions: admin.NewSessionStore(cfg.Session),
	}

	if local, ok := store.(*storage.LocalStorage); ok {
		h.uploadDir = local.Root()
		h.uploadURL = localUploadURL(cfg.Storage.PublicBaseURL)
	}

	return h, nil
}

// buildSenders picks SMTP for operator notices and Postmark for thank-you
// emails. A channel without configuration is left nil and skipped.
func buildSenders(cfg *config.Config) (operator, thankYou notifications.Sender, err error) {
	if cfg.SMTP.Enabled() {
		s, err := notifications.NewSMTPSender(cfg.SMTP)
		if err != nil {
			return nil, nil, fmt.Errorf("smtp: %w", err)
		}
		operator = guard("smtp", s, cfg.Breaker)
	} else {
		logger.Warn("SMTP not configured, operator notifications disabled")
	}

	if cfg.Postmark.Enabled() {
		p, err := notifications.NewPostmarkSender(cfg.Postmark)
		if err != nil {
			return nil, nil, fmt.Errorf("postmark: %w", err)
		}
		thankYou = guard("postmark", p, cfg.Breaker)
	} else if cfg.Server.Environment == "development" {
		logger.Warn("Postmark not configured, thank-you emails are only logged")
		thankYou = notifications.LogSender{}
	} else {
		logger.Warn("Postmark not configured, thank-you emails disabled")
	}

	return operator, thankYou, nil
}

func guard(channel string, s notifications.Sender, cfg config.BreakerConfig) notifications.Sender {
	breaker := resilience.NewCircuitBreaker(resilience.BuildSettings(channel, cfg), resilience.GracefulDegradation(channel))
	return notifications.NewGuardedSender(s, breaker, resilience.BuildRetryConfig(cfg))
}

// localUploadURL returns the path prefix local uploads are served from
func localUploadURL(publicBase string) string {
	if strings.HasPrefix(publicBase, "/") && len(publicBase) > 1 {
		return strings.TrimRight(publicBase, "/")
	}
	return storage.DefaultLocalURL
}
