// internal/cache/mock_querier_test.go
package cache

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github-repo-explorer/internal/database"
)

// MockQuerier is a mock of the database.Querier interface.
type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) CountRepositories(ctx context.Context, arg database.ListRepositoriesParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) GetRepositoryByGithubID(ctx context.Context, githubID int64) (database.Repository, error) {
	args := m.Called(ctx, githubID)
	return args.Get(0).(database.Repository), args.Error(1)
}
func (m *MockQuerier) ListLanguages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockQuerier) ListRepositories(ctx context.Context, arg database.ListRepositoriesParams) ([]database.Repository, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.Repository), args.Error(1)
}
func (m *MockQuerier) ListRepositoryStats(ctx context.Context) ([]database.ListRepositoryStatsRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]database.ListRepositoryStatsRow), args.Error(1)
}
func (m *MockQuerier) ListRepositoryTopics(ctx context.Context) ([][]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([][]string), args.Error(1)
}
func (m *MockQuerier) UpsertRepositories(ctx context.Context, arg []database.UpsertRepositoryParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mockAnyParams() interface{} {
	return mock.AnythingOfType("database.ListRepositoriesParams")
}

func anyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}
