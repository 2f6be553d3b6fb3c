// internal/cache/reader.go
package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github-repo-explorer/internal/database"
	custom_errors "github-repo-explorer/internal/errors"
	"github-repo-explorer/internal/model"
)

// Reader serves filtered, sorted pages of cached repositories.
type Reader struct {
	q      database.Querier
	logger *slog.Logger
}

// NewReader creates a new Reader instance.
func NewReader(q database.Querier, logger *slog.Logger) *Reader {
	return &Reader{q: q, logger: logger}
}

// List returns the page of cached repositories selected by c. Query failures are
// logged and reported as an empty page.
func (r *Reader) List(ctx context.Context, c model.Criteria) model.RepositoryPage {
	c = c.Normalize()
	start, end := model.RowWindow(c.Page, c.PageSize)
	params := database.ListRepositoriesParams{
		Search:     c.SearchTerm,
		Language:   c.LanguageFilter(),
		SortBy:     string(c.SortBy),
		Descending: c.SortOrder == model.OrderDesc,
		Limit:      int64(end - start + 1),
		Offset:     int64(start),
	}
	logger := r.logger.With("page", c.Page, "search", c.SearchTerm, "language", c.Language, "sort", c.SortBy, "order", c.SortOrder)

	empty := model.RepositoryPage{Repositories: []model.Repository{}, Page: c.Page}

	total, err := r.q.CountRepositories(ctx, params)
	if err != nil {
		logger.Error("Failed to count stored repositories", "error", err)
		return empty
	}

	rows, err := r.q.ListRepositories(ctx, params)
	if err != nil {
		logger.Error("Failed to fetch stored repositories", "error", err)
		return empty
	}

	repos := make([]model.Repository, len(rows))
	for i, row := range rows {
		repos[i] = toModelRepository(row)
	}
	logger.Debug("Loaded stored repositories", "count", len(repos), "total", total)

	return model.RepositoryPage{
		Repositories: repos,
		Total:        int(total),
		Page:         c.Page,
		TotalPages:   model.TotalPages(int(total), c.PageSize),
	}
}

// Get returns one cached repository by GitHub id.
func (r *Reader) Get(ctx context.Context, githubID int64) (*model.Repository, error) {
	row, err := r.q.GetRepositoryByGithubID(ctx, githubID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, custom_errors.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	repo := toModelRepository(row)
	return &repo, nil
}
