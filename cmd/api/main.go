// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/heritage-museum/internal/admin"
	"github.com/carterperez-dev/heritage-museum/internal/auth"
	"github.com/carterperez-dev/heritage-museum/internal/bootstrap"
	"github.com/carterperez-dev/heritage-museum/internal/catalog"
	"github.com/carterperez-dev/heritage-museum/internal/config"
	"github.com/carterperez-dev/heritage-museum/internal/core"
	"github.com/carterperez-dev/heritage-museum/internal/engagement"
	"github.com/carterperez-dev/heritage-museum/internal/health"
	"github.com/carterperez-dev/heritage-museum/internal/metrics"
	"github.com/carterperez-dev/heritage-museum/internal/middleware"
	"github.com/carterperez-dev/heritage-museum/internal/server"
	"github.com/carterperez-dev/heritage-museum/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"ttl", tokens.TTL().String(),
	)

	userSvc := user.NewService(user.NewRepository(db.DB))
	userHandler := user.NewHandler(userSvc)

	authHandler := auth.NewHandler(auth.NewService(userSvc, tokens))

	collections := catalog.NewCollections(db.DB, cfg.Storage, logger)
	catalogHandler := catalog.NewHandler(
		collections,
		catalog.NewMediaHandler(cfg.Storage.StaticDir),
	)

	if cfg.Bootstrap.SeedOnStart {
		bootstrap.NewLoader(
			cfg.Storage.DataDir,
			logger,
			bootstrap.CatalogSources(collections, cfg.Storage)...,
		).Run(ctx)
	}

	engagementHandler := engagement.NewHandler(
		engagement.NewService(engagement.NewRepository(db.DB)),
	)

	healthHandler := health.NewHandler(map[string]health.Checker{
		"database": db,
		"redis":    redis,
	})

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Catalog: map[string]admin.Counter{
			collections.Temples.Kind(): collections.Temples,
			collections.Weapons.Kind(): collections.Weapons,
			collections.Fossils.Kind(): collections.Fossils,
		},
		Users: userSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	limiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		KeyFunc:    middleware.KeyByIP,
		BypassFunc: isProbe(cfg.Metrics.Path),
	})
	go limiter.Janitor(ctx)

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics)
	}
	router.Use(limiter.Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		core.Message(w, "Welcome to the "+cfg.App.Name)
	})

	authenticator := middleware.Authenticator(tokens, userSvc)
	queryToken := middleware.QueryToken(tokens)

	router.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		catalogHandler.RegisterContentRoutes(r, authenticator, queryToken)

		r.Route("/user", func(r chi.Router) {
			r.Use(authenticator)
			userHandler.RegisterRoutes(r)
			engagementHandler.RegisterUserRoutes(r)
		})

		r.Route("/gamification", func(r chi.Router) {
			r.Use(authenticator)
			engagementHandler.RegisterGameRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireAdmin)
			catalogHandler.RegisterAdminRoutes(r)
			engagementHandler.RegisterAdminRoutes(r)
			adminHandler.RegisterRoutes(r)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// isProbe exempts health probes and the scrape endpoint from rate limiting.
func isProbe(metricsPath string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		switch r.URL.Path {
		case "/healthz", "/livez", "/readyz", metricsPath:
			return true
		}
		return false
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
