// internal/cache/writer.go
package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github-repo-explorer/internal/database"
	"github-repo-explorer/internal/model"
)

// Writer stores live search results in the repositories table.
type Writer struct {
	q      database.Querier
	logger *slog.Logger
}

// NewWriter creates a new Writer instance.
func NewWriter(q database.Querier, logger *slog.Logger) *Writer {
	return &Writer{q: q, logger: logger}
}

// Save upserts repos keyed on their GitHub id, recording keyword as the search that found them.
// Existing rows are overwritten with the new values.
func (w *Writer) Save(ctx context.Context, repos []model.Repository, keyword string) error {
	if len(repos) == 0 {
		return nil
	}

	params := prepareRepositoryUpsert(repos, keyword)
	if err := w.q.UpsertRepositories(ctx, params); err != nil {
		return fmt.Errorf("upsert %d repositories: %w", len(params), err)
	}

	w.logger.Info("Saved repositories to database", "keyword", keyword, "count", len(params))
	return nil
}
