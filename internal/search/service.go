// internal/search/service.go
package search

import (
	"context"
	"log/slog"
	"strings"

	custom_errors "github-repo-explorer/internal/errors"
	"github-repo-explorer/internal/model"
)

// RemoteClient is the subset of the GitHub client the service depends on.
type RemoteClient interface {
	SearchRepositories(ctx context.Context, p model.SearchParams) (*model.SearchResult, error)
	GetRepositoryByID(ctx context.Context, id int64) (*model.Repository, error)
}

// CacheWriter persists search results.
type CacheWriter interface {
	Save(ctx context.Context, repos []model.Repository, keyword string) error
}

// Service runs live searches and records their results in the cache.
type Service struct {
	client RemoteClient
	writer CacheWriter
	logger *slog.Logger
}

// NewService creates a new Service instance.
func NewService(client RemoteClient, writer CacheWriter, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		writer: writer,
		logger: logger,
	}
}

// Search queries GitHub and attaches pagination to the result. Non-empty result pages
// are written to the cache under the trimmed query; a failed write does not fail the search.
func (s *Service) Search(ctx context.Context, p model.SearchParams) (*model.SearchResult, error) {
	if strings.TrimSpace(p.Query) == "" {
		return nil, &custom_errors.SearchError{Kind: custom_errors.KindInvalidQuery}
	}
	p = p.WithDefaults()
	if !p.Sort.Valid() {
		return nil, &custom_errors.ErrInvalidParameter{Name: "sort", Value: string(p.Sort)}
	}
	if !p.Order.Valid() {
		return nil, &custom_errors.ErrInvalidParameter{Name: "order", Value: string(p.Order)}
	}

	logger := s.logger.With("query", p.Query, "page", p.Page)

	res, err := s.client.SearchRepositories(ctx, p)
	if err != nil {
		logger.Warn("Search failed", "error", err)
		return nil, err
	}
	res.Pagination = model.Paginate(p.Page, p.PerPage, res.TotalCount)
	logger.Info("Search completed", "total_count", res.TotalCount, "items", len(res.Items))

	if len(res.Items) > 0 {
		if err := s.writer.Save(ctx, res.Items, p.Query); err != nil {
			logger.Error("Failed to save search results", "error", err)
		}
	}

	return res, nil
}

// Lookup fetches a single repository from GitHub by id.
func (s *Service) Lookup(ctx context.Context, id int64) (*model.Repository, error) {
	return s.client.GetRepositoryByID(ctx, id)
}
