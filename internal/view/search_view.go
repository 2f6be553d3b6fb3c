// internal/view/search_view.go
package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github-repo-explorer/internal/model"
)

// Searcher runs live repository searches.
type Searcher interface {
	Search(ctx context.Context, p model.SearchParams) (*model.SearchResult, error)
}

// SearchState is a snapshot of the search screen.
type SearchState struct {
	Keyword      string
	Loading      bool
	HasSearched  bool
	Repositories []model.Repository
	TotalCount   int
	model.Pagination
	Err string
}

// SearchView drives the live search screen: keyword submission, paging and outcome
// notifications. Responses to superseded requests are discarded.
type SearchView struct {
	searcher Searcher
	notifier Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	state    SearchState
	gen      uint64
	onChange func(SearchState)
}

// NewSearchView creates a SearchView. notifier may be nil.
func NewSearchView(searcher Searcher, notifier Notifier, logger *slog.Logger) *SearchView {
	return &SearchView{
		searcher: searcher,
		notifier: orDiscard(notifier),
		logger:   logger,
		state:    SearchState{Repositories: []model.Repository{}},
	}
}

// OnChange registers fn to receive every state change.
func (v *SearchView) OnChange(fn func(SearchState)) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// State returns the current state.
func (v *SearchView) State() SearchState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Submit searches for keyword starting at page 1. Blank keywords are ignored and
// Submit reports false.
func (v *SearchView) Submit(ctx context.Context, keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}
	v.run(ctx, keyword, 1)
	return true
}

// GoToPage re-runs the active search on page. It does nothing before the first search.
func (v *SearchView) GoToPage(ctx context.Context, page int) bool {
	v.mu.Lock()
	keyword := v.state.Keyword
	v.mu.Unlock()
	if keyword == "" || page < 1 {
		return false
	}
	v.run(ctx, keyword, page)
	return true
}

func (v *SearchView) run(ctx context.Context, keyword string, page int) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state.Loading = true
	v.state.HasSearched = true
	v.state.Keyword = keyword
	v.state.Err = ""
	v.publishLocked()

	res, err := v.searcher.Search(ctx, model.SearchParams{
		Query:   keyword,
		Page:    page,
		PerPage: model.DefaultPageSize,
		Sort:    model.SearchSortStars,
		Order:   model.OrderDesc,
	})

	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		v.logger.Debug("Discarding stale search response", "keyword", keyword, "page", page)
		return
	}
	v.state.Loading = false

	if err != nil {
		v.state.Repositories = []model.Repository{}
		v.state.Err = err.Error()
		v.publishLocked()
		v.notifier.Notify(Notification{
			Title:       "Search failed",
			Description: err.Error(),
			Variant:     VariantDestructive,
		})
		return
	}

	v.state.Repositories = res.Items
	v.state.TotalCount = res.TotalCount
	v.state.Pagination = res.Pagination
	v.publishLocked()

	if len(res.Items) == 0 {
		v.notifier.Notify(Notification{
			Title:       "No results found",
			Description: fmt.Sprintf("No repositories found for %q. Try different keywords.", keyword),
			Variant:     VariantDefault,
		})
		return
	}
	v.notifier.Notify(Notification{
		Title:       "Search completed & saved",
		Description: fmt.Sprintf("Found %d repositories for %q and saved to database", res.TotalCount, keyword),
		Variant:     VariantDefault,
	})
}

// publishLocked releases v.mu and hands a snapshot of the state to the listener.
func (v *SearchView) publishLocked() {
	snapshot, fn := v.state, v.onChange
	v.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}
