// internal/github/client.go
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github-repo-explorer/internal/errors"
	"github-repo-explorer/internal/model"
)

const (
	DefaultBaseURL   = "https://api.github.com/"
	DefaultUserAgent = "GitHub-Repo-Explorer"
)

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

type options struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithTimeout sets the overall HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// NewClient creates and configures a new Client instance.
// When token is non-empty requests are authenticated through an oauth2 token source;
// otherwise the client talks to the API anonymously.
func NewClient(token string, logger *slog.Logger, opts ...Option) (*Client, error) {
	o := options{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = o.timeout

	base := o.baseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub base URL %q: %w", o.baseURL, err)
	}

	gh := github.NewClient(httpClient)
	gh.BaseURL = baseURL
	gh.UserAgent = o.userAgent

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// SearchRepositories runs a repository search and translates the results to our internal model.
// The returned result carries no pagination fields; those are derived by the caller.
func (c *Client) SearchRepositories(ctx context.Context, p model.SearchParams) (*model.SearchResult, error) {
	opts := &github.SearchOptions{
		Sort:  string(p.Sort),
		Order: string(p.Order),
		ListOptions: github.ListOptions{
			Page:    p.Page,
			PerPage: p.PerPage,
		},
	}

	c.logger.Debug("Searching repositories", "query", p.Query, "page", p.Page, "per_page", p.PerPage, "sort", p.Sort, "order", p.Order)

	res, _, err := c.gh.Search.Repositories(ctx, p.Query, opts)
	if err != nil {
		return nil, classifySearchError(err)
	}

	items := make([]model.Repository, 0, len(res.Repositories))
	for _, r := range res.Repositories {
		items = append(items, toInternalRepository(r))
	}

	return &model.SearchResult{
		TotalCount:        res.GetTotal(),
		IncompleteResults: res.GetIncompleteResults(),
		Items:             items,
	}, nil
}

// GetRepositoryByID fetches a single repository by its GitHub id.
func (c *Client) GetRepositoryByID(ctx context.Context, id int64) (*model.Repository, error) {
	repo, _, err := c.gh.Repositories.GetByID(ctx, id)
	if err != nil {
		return nil, classifyFetchError(err)
	}
	r := toInternalRepository(repo)
	return &r, nil
}

// classifySearchError maps a go-github error onto the search error taxonomy.
func classifySearchError(err error) error {
	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		respErr  *github.ErrorResponse
	)
	switch {
	case errors.As(err, &rateErr):
		return newSearchError(rateLimitKind(rateErr.Response), rateErr.Response, err)
	case errors.As(err, &abuseErr):
		return newSearchError(rateLimitKind(abuseErr.Response), abuseErr.Response, err)
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusForbidden:
			return newSearchError(custom_errors.KindRateLimit, respErr.Response, err)
		case http.StatusUnprocessableEntity:
			return newSearchError(custom_errors.KindInvalidQuery, respErr.Response, err)
		default:
			return newSearchError(custom_errors.KindAPI, respErr.Response, err)
		}
	default:
		return &custom_errors.SearchError{Kind: custom_errors.KindConnectivity, Err: err}
	}
}

// rateLimitKind keeps only 403 rate limits in the rate-limit kind; go-github also reports
// some 429 responses as rate-limit errors, and those are generic API errors here.
func rateLimitKind(resp *http.Response) custom_errors.Kind {
	if resp == nil || resp.StatusCode == http.StatusForbidden {
		return custom_errors.KindRateLimit
	}
	return custom_errors.KindAPI
}

// classifyFetchError maps a go-github error from a single-repository lookup.
func classifyFetchError(err error) error {
	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		respErr  *github.ErrorResponse
	)
	switch {
	case errors.As(err, &rateErr):
		return newSearchError(custom_errors.KindFetch, rateErr.Response, err)
	case errors.As(err, &abuseErr):
		return newSearchError(custom_errors.KindFetch, abuseErr.Response, err)
	case errors.As(err, &respErr):
		return newSearchError(custom_errors.KindFetch, respErr.Response, err)
	default:
		return &custom_errors.SearchError{Kind: custom_errors.KindFetch, Err: err}
	}
}

func newSearchError(kind custom_errors.Kind, resp *http.Response, err error) *custom_errors.SearchError {
	se := &custom_errors.SearchError{Kind: kind, Err: err}
	if resp != nil {
		se.StatusCode = resp.StatusCode
		se.Status = resp.Status
		if se.Status == "" {
			se.Status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
	}
	return se
}

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) model.Repository {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	owner := r.GetOwner()
	return model.Repository{
		GithubID:        r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Description:     r.Description,
		HTMLURL:         r.GetHTMLURL(),
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		WatchersCount:   r.GetWatchersCount(),
		Language:        r.Language,
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		Owner: model.Owner{
			Login:     owner.GetLogin(),
			AvatarURL: owner.GetAvatarURL(),
			HTMLURL:   owner.GetHTMLURL(),
		},
		Topics: topics,
	}
}
