// internal/api/handler.go
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	custom_errors "github-repo-explorer/internal/errors"
	"github-repo-explorer/internal/model"
)

// maxPerPage is the largest page size GitHub's search API accepts.
const maxPerPage = 100

// SearchService runs live GitHub searches and lookups.
type SearchService interface {
	Search(ctx context.Context, p model.SearchParams) (*model.SearchResult, error)
	Lookup(ctx context.Context, id int64) (*model.Repository, error)
}

// RepositoryReader serves cached repositories.
type RepositoryReader interface {
	List(ctx context.Context, c model.Criteria) model.RepositoryPage
	Get(ctx context.Context, githubID int64) (*model.Repository, error)
}

// StatsReader serves aggregates over the cache.
type StatsReader interface {
	Stats(ctx context.Context) (model.Stats, error)
	TopTopics(ctx context.Context) ([]model.TopicCount, error)
	Languages(ctx context.Context) ([]string, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	search SearchService
	repos  RepositoryReader
	stats  StatsReader
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(search SearchService, repos RepositoryReader, stats StatsReader, logger *slog.Logger, timeout time.Duration) http.Handler {
	h := &Handler{
		search: search,
		repos:  repos,
		stats:  stats,
		logger: logger,
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/search/repositories", h.searchRepositories)
		r.Get("/github/repositories/{id}", h.getLiveRepository)
		r.Get("/repositories", h.listRepositories)
		r.Get("/repositories/{id}", h.getRepository)
		r.Get("/stats", h.getStats)
		r.Get("/stats/topics", h.getTopTopics)
		r.Get("/languages", h.getLanguages)
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// searchRepositories runs a live search and caches the results.
// GET /v1/search/repositories?q=&page=&per_page=&sort=&order=
func (h *Handler) searchRepositories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(r, "page", 1, 1, model.MaxPage)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	perPage, err := intParam(r, "per_page", model.DefaultPageSize, 1, maxPerPage)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	res, err := h.search.Search(r.Context(), model.SearchParams{
		Query:   q.Get("q"),
		Page:    page,
		PerPage: perPage,
		Sort:    model.SearchSort(q.Get("sort")),
		Order:   model.SortOrder(q.Get("order")),
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, res)
}

// getLiveRepository fetches one repository straight from GitHub.
// GET /v1/github/repositories/{id}
func (h *Handler) getLiveRepository(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	repo, err := h.search.Lookup(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, repo)
}

// listRepositories returns a filtered, sorted page of cached repositories.
// GET /v1/repositories?search=&language=&sort=&order=&page=&per_page=
func (h *Handler) listRepositories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := model.DefaultFilters()
	filters.SearchTerm = q.Get("search")
	if lang := q.Get("language"); lang != "" {
		filters.Language = lang
	}
	if sort := q.Get("sort"); sort != "" {
		filters.SortBy = model.SortKey(sort)
		if !filters.SortBy.Valid() {
			respondWithServiceError(w, h.logger, &custom_errors.ErrInvalidParameter{Name: "sort", Value: sort})
			return
		}
	}
	if order := q.Get("order"); order != "" {
		filters.SortOrder = model.SortOrder(order)
		if !filters.SortOrder.Valid() {
			respondWithServiceError(w, h.logger, &custom_errors.ErrInvalidParameter{Name: "order", Value: order})
			return
		}
	}

	page, err := intParam(r, "page", 1, 1, model.MaxPage)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	perPage, err := intParam(r, "per_page", model.DefaultPageSize, 1, maxPerPage)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	result := h.repos.List(r.Context(), model.Criteria{Filters: filters, Page: page, PageSize: perPage})
	respondWithJSON(w, http.StatusOK, result)
}

// getRepository returns one cached repository.
// GET /v1/repositories/{id}
func (h *Handler) getRepository(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	repo, err := h.repos.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, repo)
}

// GET /v1/stats
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// GET /v1/stats/topics
func (h *Handler) getTopTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.stats.TopTopics(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, topics)
}

// GET /v1/languages
func (h *Handler) getLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.stats.Languages(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, languages)
}

// intParam parses an optional integer query parameter. hi <= 0 means unbounded.
func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || (hi > 0 && n > hi) {
		return 0, &custom_errors.ErrInvalidParameter{Name: name, Value: raw}
	}
	return n, nil
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &custom_errors.ErrInvalidParameter{Name: "id", Value: raw}
	}
	return id, nil
}
