// internal/api/handler_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custom_errors "github-repo-explorer/internal/errors"
	"github-repo-explorer/internal/model"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, p model.SearchParams) (*model.SearchResult, error) {
	args := m.Called(ctx, p)
	res, _ := args.Get(0).(*model.SearchResult)
	return res, args.Error(1)
}

func (m *MockSearchService) Lookup(ctx context.Context, id int64) (*model.Repository, error) {
	args := m.Called(ctx, id)
	repo, _ := args.Get(0).(*model.Repository)
	return repo, args.Error(1)
}

type MockRepositoryReader struct {
	mock.Mock
}

func (m *MockRepositoryReader) List(ctx context.Context, c model.Criteria) model.RepositoryPage {
	args := m.Called(ctx, c)
	return args.Get(0).(model.RepositoryPage)
}

func (m *MockRepositoryReader) Get(ctx context.Context, githubID int64) (*model.Repository, error) {
	args := m.Called(ctx, githubID)
	repo, _ := args.Get(0).(*model.Repository)
	return repo, args.Error(1)
}

type MockStatsReader struct {
	mock.Mock
}

func (m *MockStatsReader) Stats(ctx context.Context) (model.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Stats), args.Error(1)
}

func (m *MockStatsReader) TopTopics(ctx context.Context) ([]model.TopicCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.TopicCount), args.Error(1)
}

func (m *MockStatsReader) Languages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type testServer struct {
	search *MockSearchService
	repos  *MockRepositoryReader
	stats  *MockStatsReader
	router http.Handler
}

func newTestServer() *testServer {
	ts := &testServer{
		search: new(MockSearchService),
		repos:  new(MockRepositoryReader),
		stats:  new(MockStatsReader),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts.router = NewRouter(ts.search, ts.repos, ts.stats, logger, 0)
	return ts
}

func (ts *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer()
	rec := ts.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSearchRepositories(t *testing.T) {
	t.Run("passes parameters and returns the paginated result", func(t *testing.T) {
		ts := newTestServer()
		want := model.SearchParams{Query: "react", Page: 2, PerPage: 30, Sort: "forks", Order: "asc"}
		ts.search.On("Search", mock.Anything, want).Return(&model.SearchResult{
			TotalCount: 61,
			Items:      []model.Repository{{GithubID: 1, Name: "react", Topics: []string{}}},
			Pagination: model.Paginate(2, 30, 61),
		}, nil).Once()

		rec := ts.get(t, "/v1/search/repositories?q=react&page=2&per_page=30&sort=forks&order=asc")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(61), body["total_count"])
		assert.Equal(t, float64(2), body["currentPage"])
		assert.Equal(t, float64(3), body["totalPages"])
		assert.Equal(t, true, body["hasNextPage"])
		assert.Equal(t, true, body["hasPrevPage"])
		ts.search.AssertExpectations(t)
	})

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "rate limit",
			err:        &custom_errors.SearchError{Kind: custom_errors.KindRateLimit, StatusCode: 403},
			wantStatus: http.StatusTooManyRequests,
			wantError:  "API rate limit exceeded. Please try again later.",
		},
		{
			name:       "rejected query",
			err:        &custom_errors.SearchError{Kind: custom_errors.KindInvalidQuery, StatusCode: 422},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Invalid search query. Please try different keywords.",
		},
		{
			name:       "empty query",
			err:        &custom_errors.SearchError{Kind: custom_errors.KindInvalidQuery},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid search query. Please try different keywords.",
		},
		{
			name:       "upstream failure",
			err:        &custom_errors.SearchError{Kind: custom_errors.KindAPI, Status: "500 Internal Server Error", StatusCode: 500},
			wantStatus: http.StatusBadGateway,
			wantError:  "GitHub API error: 500 Internal Server Error",
		},
		{
			name:       "connectivity",
			err:        &custom_errors.SearchError{Kind: custom_errors.KindConnectivity},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "Failed to fetch repositories. Please check your connection and try again.",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer()
			ts.search.On("Search", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			rec := ts.get(t, "/v1/search/repositories?q=x")

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantError, decodeError(t, rec))
		})
	}

	t.Run("invalid paging parameters are rejected before searching", func(t *testing.T) {
		ts := newTestServer()
		for _, target := range []string{
			"/v1/search/repositories?q=x&page=0",
			"/v1/search/repositories?q=x&page=abc",
			"/v1/search/repositories?q=x&per_page=101",
		} {
			rec := ts.get(t, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
		ts.search.AssertNotCalled(t, "Search")
	})
}

func TestGetLiveRepository(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ts := newTestServer()
		ts.search.On("Lookup", mock.Anything, int64(10270250)).Return(&model.Repository{GithubID: 10270250, Name: "react"}, nil).Once()

		rec := ts.get(t, "/v1/github/repositories/10270250")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"react"`)
	})

	t.Run("upstream 404", func(t *testing.T) {
		ts := newTestServer()
		ts.search.On("Lookup", mock.Anything, int64(1)).Return(nil, &custom_errors.SearchError{Kind: custom_errors.KindFetch, Status: "404 Not Found", StatusCode: 404}).Once()

		rec := ts.get(t, "/v1/github/repositories/1")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Failed to fetch repository: 404 Not Found", decodeError(t, rec))
	})

	t.Run("bad id", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.get(t, "/v1/github/repositories/abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListRepositories(t *testing.T) {
	t.Run("builds criteria from the query string", func(t *testing.T) {
		ts := newTestServer()
		want := model.Criteria{
			Filters: model.Filters{
				SearchTerm: "fox",
				Language:   "Go",
				SortBy:     model.SortByName,
				SortOrder:  model.OrderAsc,
			},
			Page:     2,
			PageSize: 12,
		}
		ts.repos.On("List", mock.Anything, want).Return(model.RepositoryPage{
			Repositories: []model.Repository{},
			Total:        13,
			Page:         2,
			TotalPages:   2,
		}).Once()

		rec := ts.get(t, "/v1/repositories?search=fox&language=Go&sort=name&order=asc&page=2")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"repositories":[],"total":13,"page":2,"totalPages":2}`, rec.Body.String())
		ts.repos.AssertExpectations(t)
	})

	t.Run("defaults", func(t *testing.T) {
		ts := newTestServer()
		want := model.Criteria{Filters: model.DefaultFilters(), Page: 1, PageSize: 12}
		ts.repos.On("List", mock.Anything, want).Return(model.RepositoryPage{Repositories: []model.Repository{}, Page: 1}).Once()

		rec := ts.get(t, "/v1/repositories")

		assert.Equal(t, http.StatusOK, rec.Code)
		ts.repos.AssertExpectations(t)
	})

	t.Run("page bounds", func(t *testing.T) {
		ts := newTestServer()
		want := model.Criteria{Filters: model.DefaultFilters(), Page: model.MaxPage, PageSize: 12}
		ts.repos.On("List", mock.Anything, want).Return(model.RepositoryPage{Repositories: []model.Repository{}, Page: model.MaxPage}).Once()

		assert.Equal(t, http.StatusOK, ts.get(t, "/v1/repositories?page=10000000").Code)

		rec := ts.get(t, "/v1/repositories?page=10000001")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `invalid value "10000001" for parameter "page"`, decodeError(t, rec))

		rec = ts.get(t, "/v1/repositories?page=357913943")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		ts.repos.AssertExpectations(t)
	})

	t.Run("unknown sort column", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.get(t, "/v1/repositories?sort=owner_login")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `invalid value "owner_login" for parameter "sort"`, decodeError(t, rec))
		ts.repos.AssertNotCalled(t, "List")
	})

	t.Run("unknown order", func(t *testing.T) {
		ts := newTestServer()
		rec := ts.get(t, "/v1/repositories?order=up")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRepository(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ts := newTestServer()
		ts.repos.On("Get", mock.Anything, int64(5)).Return(&model.Repository{GithubID: 5}, nil).Once()

		rec := ts.get(t, "/v1/repositories/5")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not cached", func(t *testing.T) {
		ts := newTestServer()
		ts.repos.On("Get", mock.Anything, int64(6)).Return(nil, custom_errors.ErrNotFound).Once()

		rec := ts.get(t, "/v1/repositories/6")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "repository not found", decodeError(t, rec))
	})
}

func TestStatsEndpoints(t *testing.T) {
	t.Run("stats", func(t *testing.T) {
		ts := newTestServer()
		ts.stats.On("Stats", mock.Anything).Return(model.Stats{TotalRepositories: 4, TotalStars: 175, TotalForks: 16, UniqueLanguages: 2, UniqueOwners: 3}, nil).Once()

		rec := ts.get(t, "/v1/stats")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"totalRepositories":4,"totalStars":175,"totalForks":16,"uniqueLanguages":2,"uniqueOwners":3}`, rec.Body.String())
	})

	t.Run("topics", func(t *testing.T) {
		ts := newTestServer()
		ts.stats.On("TopTopics", mock.Anything).Return([]model.TopicCount{{Topic: "b", Count: 2}, {Topic: "a", Count: 1}}, nil).Once()

		rec := ts.get(t, "/v1/stats/topics")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"topic":"b","count":2},{"topic":"a","count":1}]`, rec.Body.String())
	})

	t.Run("languages", func(t *testing.T) {
		ts := newTestServer()
		ts.stats.On("Languages", mock.Anything).Return([]string{"Go", "Rust"}, nil).Once()

		rec := ts.get(t, "/v1/languages")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["Go","Rust"]`, rec.Body.String())
	})

	t.Run("database failure", func(t *testing.T) {
		ts := newTestServer()
		ts.stats.On("Stats", mock.Anything).Return(model.Stats{}, errors.New("fetch stats: conn closed")).Once()

		rec := ts.get(t, "/v1/stats")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeError(t, rec))
	})
}
