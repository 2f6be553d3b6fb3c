// internal/database/querier.go
package database

import (
	"context"
)

type Querier interface {
	CountRepositories(ctx context.Context, arg ListRepositoriesParams) (int64, error)
	GetRepositoryByGithubID(ctx context.Context, githubID int64) (Repository, error)
	ListLanguages(ctx context.Context) ([]string, error)
	ListRepositories(ctx context.Context, arg ListRepositoriesParams) ([]Repository, error)
	ListRepositoryStats(ctx context.Context) ([]ListRepositoryStatsRow, error)
	ListRepositoryTopics(ctx context.Context) ([][]string, error)
	UpsertRepositories(ctx context.Context, arg []UpsertRepositoryParams) error
}

var _ Querier = (*Queries)(nil)
