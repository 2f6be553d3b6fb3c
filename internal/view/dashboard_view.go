// internal/view/dashboard_view.go
package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github-repo-explorer/internal/model"
)

// PageReader serves pages of cached repositories.
type PageReader interface {
	List(ctx context.Context, c model.Criteria) model.RepositoryPage
}

// OverviewReader serves the corpus statistics and top topics.
type OverviewReader interface {
	Overview(ctx context.Context) (model.Overview, error)
}

// DashboardState is a snapshot of the dashboard screen.
type DashboardState struct {
	// Filters holds the latest edits, which may not have been applied yet.
	Filters model.Filters
	// Criteria is what the current page was loaded with.
	Criteria model.Criteria
	Page     model.RepositoryPage
	Overview model.Overview
	Loading  bool
	Err      string
}

// DashboardOption configures a DashboardView.
type DashboardOption func(*DashboardView)

// WithDebounce sets the quiet period applied to filter and sort edits.
func WithDebounce(d time.Duration) DashboardOption {
	return func(v *DashboardView) {
		v.debouncer = NewDebouncer(d)
	}
}

// DashboardView drives the cached-repository dashboard. Filter and sort edits are
// debounced and restart at page 1; page changes reuse the applied criteria.
type DashboardView struct {
	reader    PageReader
	overview  OverviewReader
	notifier  Notifier
	logger    *slog.Logger
	debouncer *Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    DashboardState
	gen      uint64
	ovGen    uint64
	onChange func(DashboardState)
}

// NewDashboardView creates a DashboardView whose loads run under ctx until Close is called.
// notifier may be nil.
func NewDashboardView(ctx context.Context, reader PageReader, overview OverviewReader, notifier Notifier, logger *slog.Logger, opts ...DashboardOption) *DashboardView {
	ctx, cancel := context.WithCancel(ctx)
	v := &DashboardView{
		reader:   reader,
		overview: overview,
		notifier: orDiscard(notifier),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		state: DashboardState{
			Filters:  model.DefaultFilters(),
			Criteria: defaultCriteria(),
			Page:     model.RepositoryPage{Repositories: []model.Repository{}, Page: 1},
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.debouncer == nil {
		v.debouncer = NewDebouncer(DefaultDebounce)
	}
	return v
}

func defaultCriteria() model.Criteria {
	return model.Criteria{Filters: model.DefaultFilters(), Page: 1, PageSize: model.DefaultPageSize}
}

// OnChange registers fn to receive every state change.
func (v *DashboardView) OnChange(fn func(DashboardState)) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// State returns the current state.
func (v *DashboardView) State() DashboardState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Mount loads page 1 with the default criteria together with the overview.
func (v *DashboardView) Mount() {
	v.mu.Lock()
	v.state.Filters = model.DefaultFilters()
	v.mu.Unlock()
	v.load(defaultCriteria(), true)
}

// Refresh reloads the current page and the overview.
func (v *DashboardView) Refresh() {
	v.mu.Lock()
	c := v.state.Criteria
	v.mu.Unlock()
	v.load(c, true)
}

// SetFilters replaces the filters. The page is reloaded from page 1 once edits pause.
func (v *DashboardView) SetFilters(f model.Filters) {
	v.updateFilters(func(cur *model.Filters) { *cur = f })
}

// SetSearchTerm changes the substring matched against name, description and owner.
func (v *DashboardView) SetSearchTerm(term string) {
	v.updateFilters(func(f *model.Filters) { f.SearchTerm = term })
}

// SetLanguage changes the language filter; model.LanguageAll disables it.
func (v *DashboardView) SetLanguage(language string) {
	v.updateFilters(func(f *model.Filters) { f.Language = language })
}

// SetSort changes the sort column.
func (v *DashboardView) SetSort(key model.SortKey) {
	v.updateFilters(func(f *model.Filters) { f.SortBy = key })
}

// SetOrder changes the sort direction.
func (v *DashboardView) SetOrder(order model.SortOrder) {
	v.updateFilters(func(f *model.Filters) { f.SortOrder = order })
}

// ToggleOrder flips the sort direction.
func (v *DashboardView) ToggleOrder() {
	v.updateFilters(func(f *model.Filters) { f.SortOrder = f.SortOrder.Toggle() })
}

// ClearFilters restores the default filters and reloads page 1 without waiting.
func (v *DashboardView) ClearFilters() {
	v.debouncer.Cancel()
	v.mu.Lock()
	v.state.Filters = model.DefaultFilters()
	v.mu.Unlock()
	v.load(defaultCriteria(), false)
}

// GoToPage loads page with the criteria of the current page.
func (v *DashboardView) GoToPage(page int) {
	if page < 1 {
		return
	}
	v.mu.Lock()
	c := v.state.Criteria
	v.mu.Unlock()
	c.Page = page
	v.load(c, false)
}

// Close cancels pending edits and in-flight loads. No callback fires afterwards.
func (v *DashboardView) Close() {
	v.debouncer.Stop()
	v.cancel()
}

func (v *DashboardView) updateFilters(edit func(*model.Filters)) {
	v.mu.Lock()
	edit(&v.state.Filters)
	v.publishLocked()

	v.debouncer.Trigger(func() {
		v.mu.Lock()
		f := v.state.Filters
		v.mu.Unlock()
		v.load(model.Criteria{Filters: f, Page: 1, PageSize: model.DefaultPageSize}, false)
	})
}

// load fetches the page for c and, when withOverview is set, the overview. The page and
// the overview are each applied only if no newer load of the same kind started meanwhile.
func (v *DashboardView) load(c model.Criteria, withOverview bool) {
	c = c.Normalize()
	ctx := v.ctx
	if ctx.Err() != nil {
		return
	}

	v.mu.Lock()
	v.gen++
	gen := v.gen
	var ovGen uint64
	if withOverview {
		v.ovGen++
		ovGen = v.ovGen
		v.state.Err = ""
	}
	v.state.Loading = true
	v.publishLocked()

	page := v.reader.List(ctx, c)
	var (
		ov  model.Overview
		err error
	)
	if withOverview {
		ov, err = v.overview.Overview(ctx)
	}

	v.mu.Lock()
	pageCurrent := gen == v.gen
	overviewCurrent := withOverview && ovGen == v.ovGen
	if ctx.Err() != nil || (!pageCurrent && !overviewCurrent) {
		v.mu.Unlock()
		v.logger.Debug("Discarding stale dashboard response", "page", c.Page)
		return
	}
	if pageCurrent {
		v.state.Loading = false
		v.state.Criteria = c
		v.state.Page = page
	}
	if overviewCurrent {
		if err != nil {
			v.state.Err = err.Error()
		} else {
			v.state.Overview = ov
		}
	}
	v.publishLocked()

	if !overviewCurrent {
		return
	}
	switch {
	case err != nil:
		v.logger.Error("Failed to load dashboard overview", "error", err)
		v.notifier.Notify(Notification{
			Title:       "Error loading data",
			Description: err.Error(),
			Variant:     VariantDestructive,
		})
	case ov.Stats.TotalRepositories == 0:
		v.notifier.Notify(Notification{
			Title:       "No stored data",
			Description: "No repositories found in database. Try searching first.",
			Variant:     VariantDefault,
		})
	}
}

// publishLocked releases v.mu and hands a snapshot of the state to the listener.
func (v *DashboardView) publishLocked() {
	snapshot, fn := v.state, v.onChange
	v.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}
