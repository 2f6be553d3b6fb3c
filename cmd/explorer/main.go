// cmd/explorer/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github-repo-explorer/internal/cache"
	"github-repo-explorer/internal/config"
	"github-repo-explorer/internal/database"
	"github-repo-explorer/internal/github"
	"github-repo-explorer/internal/search"
	"github-repo-explorer/internal/view"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Explorer exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Logs go to stderr so they do not interleave with the interactive output.
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()

	if err := database.Migrate(cfg.MigrationsURL, cfg.DBURL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ghClient, err := github.NewClient(cfg.GithubToken, logger,
		github.WithBaseURL(cfg.GithubAPIURL),
		github.WithUserAgent(cfg.GithubUserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	q := database.New(dbpool)
	statsReader := cache.NewStatsReader(q, logger)
	searchService := search.NewService(ghClient, cache.NewWriter(q, logger), logger)

	r := newREPL(ctx, os.Stdout, statsReader)
	dashboard := view.NewDashboardView(ctx, cache.NewReader(q, logger), statsReader, r, logger,
		view.WithDebounce(cfg.DebounceInterval))
	defer dashboard.Close()
	r.attach(view.NewSearchView(searchService, r, logger), dashboard)

	return r.Run(os.Stdin)
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
