// cmd/explorer/repl.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github-repo-explorer/internal/model"
	"github-repo-explorer/internal/view"
)

const helpText = `Commands:
  search <keywords>    search GitHub (results are saved to the database)
  dashboard            show stored repositories
  page <n> | next | prev
  filter <text>        filter stored repositories by name, description or owner
  lang <name|all>      filter stored repositories by language
  sort stars|forks|updated|name
  order asc|desc|toggle
  clear                reset dashboard filters
  refresh              reload the dashboard
  stats | topics | languages
  help | quit`

// LanguageLister lists the languages present in the cache.
type LanguageLister interface {
	Languages(ctx context.Context) ([]string, error)
}

type screen int32

const (
	screenSearch screen = iota
	screenDashboard
)

// repl reads commands line by line and renders the views they drive.
type repl struct {
	ctx       context.Context
	search    *view.SearchView
	dashboard *view.DashboardView
	languages LanguageLister

	outMu   sync.Mutex
	out     io.Writer
	active  atomic.Int32
	mounted bool
}

func newREPL(ctx context.Context, out io.Writer, languages LanguageLister) *repl {
	return &repl{
		ctx:       ctx,
		languages: languages,
		out:       out,
	}
}

// attach connects the views, which are built with r as their Notifier.
func (r *repl) attach(search *view.SearchView, dashboard *view.DashboardView) {
	r.search = search
	r.dashboard = dashboard
	search.OnChange(r.renderSearch)
	dashboard.OnChange(r.renderDashboard)
}

func (r *repl) currentScreen() screen {
	return screen(r.active.Load())
}

func (r *repl) setScreen(s screen) {
	r.active.Store(int32(s))
}

// Notify prints a notification line.
func (r *repl) Notify(n view.Notification) {
	prefix := "*"
	if n.Variant == view.VariantDestructive {
		prefix = "!"
	}
	r.printf("%s %s: %s\n", prefix, n.Title, n.Description)
}

func (r *repl) printf(format string, args ...interface{}) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// Run processes commands from in until EOF or quit.
func (r *repl) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	r.printf("GitHub Repo Explorer. Type 'help' for commands.\n> ")
	for scanner.Scan() {
		if !r.exec(strings.TrimSpace(scanner.Text())) {
			return nil
		}
		r.printf("> ")
	}
	return scanner.Err()
}

// exec runs one command line and reports whether the loop should continue.
func (r *repl) exec(line string) bool {
	if line == "" {
		return true
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return false
	case "help":
		r.printf("%s\n", helpText)
	case "search":
		r.setScreen(screenSearch)
		if !r.search.Submit(r.ctx, arg) {
			r.printf("usage: search <keywords>\n")
		}
	case "dashboard":
		r.showDashboard()
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			r.printf("usage: page <n>\n")
			return true
		}
		r.goToPage(n)
	case "next":
		if r.onLastPage() {
			r.printf("already on the last page\n")
			return true
		}
		r.goToPage(r.currentPage() + 1)
	case "prev":
		if p := r.currentPage(); p > 1 {
			r.goToPage(p - 1)
		}
	case "filter":
		r.ensureDashboard()
		r.dashboard.SetSearchTerm(arg)
	case "lang":
		r.ensureDashboard()
		if arg == "" {
			arg = model.LanguageAll
		}
		r.dashboard.SetLanguage(arg)
	case "sort":
		key, ok := sortKeys[strings.ToLower(arg)]
		if !ok {
			r.printf("usage: sort stars|forks|updated|name\n")
			return true
		}
		r.ensureDashboard()
		r.dashboard.SetSort(key)
	case "order":
		r.ensureDashboard()
		switch strings.ToLower(arg) {
		case "asc":
			r.dashboard.SetOrder(model.OrderAsc)
		case "desc":
			r.dashboard.SetOrder(model.OrderDesc)
		case "", "toggle":
			r.dashboard.ToggleOrder()
		default:
			r.printf("usage: order asc|desc|toggle\n")
		}
	case "clear":
		r.ensureDashboard()
		r.dashboard.ClearFilters()
	case "refresh":
		r.ensureDashboard()
		r.dashboard.Refresh()
	case "stats":
		r.ensureDashboard()
		r.printStats(r.dashboard.State().Overview.Stats)
	case "topics":
		r.ensureDashboard()
		r.printTopics(r.dashboard.State().Overview.Topics)
	case "languages":
		r.printLanguages()
	default:
		r.printf("unknown command %q, type 'help'\n", cmd)
	}
	return true
}

var sortKeys = map[string]model.SortKey{
	"stars":   model.SortByStars,
	"forks":   model.SortByForks,
	"updated": model.SortByUpdated,
	"name":    model.SortByName,
}

func (r *repl) showDashboard() {
	r.setScreen(screenDashboard)
	if r.mounted {
		r.dashboard.Refresh()
		return
	}
	r.mounted = true
	r.dashboard.Mount()
}

func (r *repl) ensureDashboard() {
	if r.currentScreen() != screenDashboard || !r.mounted {
		r.showDashboard()
	}
}

func (r *repl) currentPage() int {
	if r.currentScreen() == screenDashboard {
		return r.dashboard.State().Criteria.Page
	}
	return r.search.State().CurrentPage
}

// onLastPage reports whether the current screen has no further page. With no
// active search it is false so goToPage can report that instead.
func (r *repl) onLastPage() bool {
	if r.currentScreen() == screenDashboard {
		st := r.dashboard.State()
		return !st.Loading && st.Page.Page >= st.Page.TotalPages
	}
	st := r.search.State()
	return st.Keyword != "" && st.HasSearched && !st.HasNextPage
}

func (r *repl) goToPage(n int) {
	if r.currentScreen() == screenDashboard {
		r.dashboard.GoToPage(n)
		return
	}
	if !r.search.GoToPage(r.ctx, n) {
		r.printf("no active search\n")
	}
}

func (r *repl) renderSearch(s view.SearchState) {
	if r.currentScreen() != screenSearch {
		return
	}
	if s.Loading {
		r.printf("searching %q...\n", s.Keyword)
		return
	}
	if s.Err != "" {
		r.printf("error: %s\n", s.Err)
		return
	}
	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintf(r.out, "Live results for %q (%s total), page %d of %d\n",
		s.Keyword, view.FormatNumber(int64(s.TotalCount)), s.CurrentPage, s.TotalPages)
	writeRepositories(r.out, s.Repositories)
}

func (r *repl) renderDashboard(s view.DashboardState) {
	if r.currentScreen() != screenDashboard || s.Loading {
		return
	}
	r.outMu.Lock()
	defer r.outMu.Unlock()
	c := s.Criteria
	fmt.Fprintf(r.out, "Stored repositories: %d match (search=%q language=%s sort=%s %s), page %d of %d\n",
		s.Page.Total, c.SearchTerm, c.Language, c.SortBy, c.SortOrder, s.Page.Page, s.Page.TotalPages)
	writeRepositories(r.out, s.Page.Repositories)
}

func writeRepositories(w io.Writer, repos []model.Repository) {
	for _, repo := range repos {
		lang := "-"
		if repo.Language != nil {
			lang = *repo.Language
		}
		fmt.Fprintf(w, "  %-40s %8s stars %7s forks  %-12s %s\n",
			repo.FullName, view.FormatNumber(int64(repo.StargazersCount)), view.FormatNumber(int64(repo.ForksCount)), lang, repo.HTMLURL)
		if repo.Description != nil && *repo.Description != "" {
			fmt.Fprintf(w, "      %s\n", *repo.Description)
		}
	}
}

func (r *repl) printStats(s model.Stats) {
	r.printf("Repositories %s | Stars %s | Forks %s | Languages %s | Owners %s\n",
		view.FormatNumber(int64(s.TotalRepositories)),
		view.FormatNumber(s.TotalStars),
		view.FormatNumber(s.TotalForks),
		view.FormatNumber(int64(s.UniqueLanguages)),
		view.FormatNumber(int64(s.UniqueOwners)))
}

func (r *repl) printTopics(topics []model.TopicCount) {
	if len(topics) == 0 {
		r.printf("no topics stored\n")
		return
	}
	r.outMu.Lock()
	defer r.outMu.Unlock()
	for i, t := range topics {
		fmt.Fprintf(r.out, "%2d. %-30s %d\n", i+1, t.Topic, t.Count)
	}
}

func (r *repl) printLanguages() {
	languages, err := r.languages.Languages(r.ctx)
	if err != nil {
		r.printf("error: %v\n", err)
		return
	}
	r.printf("%s\n", strings.Join(append([]string{model.LanguageAll}, languages...), ", "))
}
