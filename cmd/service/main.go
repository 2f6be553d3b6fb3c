// cmd/service/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github-repo-explorer/internal/api"
	"github-repo-explorer/internal/cache"
	"github-repo-explorer/internal/config"
	"github-repo-explorer/internal/database"
	"github-repo-explorer/internal/github"
	"github-repo-explorer/internal/search"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application startup error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully")

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Initialize database connection and run migrations
	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()
	logger.Info("Database connection established")

	if err := database.Migrate(cfg.MigrationsURL, cfg.DBURL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")

	// 5. Initialize application components
	srv, err := newServer(cfg, dbpool, logger)
	if err != nil {
		return err
	}

	// 6. Serve until a shutdown signal arrives
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received. Draining connections.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newServer wires the GitHub client, cache and search service behind the HTTP router.
func newServer(cfg *config.Config, dbpool *pgxpool.Pool, logger *slog.Logger) (*http.Server, error) {
	ghClient, err := github.NewClient(cfg.GithubToken, logger,
		github.WithBaseURL(cfg.GithubAPIURL),
		github.WithUserAgent(cfg.GithubUserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	if cfg.GithubToken == "" {
		logger.Warn("GITHUB_TOKEN not set; using unauthenticated GitHub requests with lower rate limits")
	}

	q := database.New(dbpool)
	searchService := search.NewService(ghClient, cache.NewWriter(q, logger), logger)
	router := api.NewRouter(
		searchService,
		cache.NewReader(q, logger),
		cache.NewStatsReader(q, logger),
		logger,
		cfg.HTTPTimeout,
	)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
