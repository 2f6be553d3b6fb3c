// internal/database/repositories.sql.go
package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const repositoryColumns = `id, github_id, name, full_name, description, html_url, clone_url, ssh_url, homepage,
    language, stargazers_count, watchers_count, forks_count, open_issues_count, size,
    default_branch, topics, owner_login, owner_type, owner_avatar_url, owner_html_url,
    repo_created_at, repo_updated_at, pushed_at, search_keyword,
    archived, disabled, private, fork, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRepository(row scanner) (Repository, error) {
	var i Repository
	err := row.Scan(
		&i.ID,
		&i.GithubID,
		&i.Name,
		&i.FullName,
		&i.Description,
		&i.HtmlUrl,
		&i.CloneUrl,
		&i.SshUrl,
		&i.Homepage,
		&i.Language,
		&i.StargazersCount,
		&i.WatchersCount,
		&i.ForksCount,
		&i.OpenIssuesCount,
		&i.Size,
		&i.DefaultBranch,
		&i.Topics,
		&i.OwnerLogin,
		&i.OwnerType,
		&i.OwnerAvatarUrl,
		&i.OwnerHtmlUrl,
		&i.RepoCreatedAt,
		&i.RepoUpdatedAt,
		&i.PushedAt,
		&i.SearchKeyword,
		&i.Archived,
		&i.Disabled,
		&i.Private,
		&i.Fork,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertRepository = `-- name: UpsertRepository :batchexec
INSERT INTO repositories (
    github_id, name, full_name, description, html_url, clone_url, ssh_url, homepage,
    language, stargazers_count, watchers_count, forks_count, open_issues_count, size,
    default_branch, topics, owner_login, owner_type, owner_avatar_url, owner_html_url,
    repo_created_at, repo_updated_at, pushed_at, search_keyword,
    archived, disabled, private, fork
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11, $12, $13, $14,
    $15, $16, $17, $18, $19, $20,
    $21, $22, $23, $24,
    $25, $26, $27, $28
)
ON CONFLICT (github_id) DO UPDATE SET
    name = EXCLUDED.name,
    full_name = EXCLUDED.full_name,
    description = EXCLUDED.description,
    html_url = EXCLUDED.html_url,
    clone_url = EXCLUDED.clone_url,
    ssh_url = EXCLUDED.ssh_url,
    homepage = EXCLUDED.homepage,
    language = EXCLUDED.language,
    stargazers_count = EXCLUDED.stargazers_count,
    watchers_count = EXCLUDED.watchers_count,
    forks_count = EXCLUDED.forks_count,
    open_issues_count = EXCLUDED.open_issues_count,
    size = EXCLUDED.size,
    default_branch = EXCLUDED.default_branch,
    topics = EXCLUDED.topics,
    owner_login = EXCLUDED.owner_login,
    owner_type = EXCLUDED.owner_type,
    owner_avatar_url = EXCLUDED.owner_avatar_url,
    owner_html_url = EXCLUDED.owner_html_url,
    repo_created_at = EXCLUDED.repo_created_at,
    repo_updated_at = EXCLUDED.repo_updated_at,
    pushed_at = EXCLUDED.pushed_at,
    search_keyword = EXCLUDED.search_keyword,
    archived = EXCLUDED.archived,
    disabled = EXCLUDED.disabled,
    private = EXCLUDED.private,
    fork = EXCLUDED.fork,
    updated_at = NOW()
`

type UpsertRepositoryParams struct {
	GithubID        int64              `json:"github_id"`
	Name            string             `json:"name"`
	FullName        string             `json:"full_name"`
	Description     pgtype.Text        `json:"description"`
	HtmlUrl         string             `json:"html_url"`
	CloneUrl        pgtype.Text        `json:"clone_url"`
	SshUrl          pgtype.Text        `json:"ssh_url"`
	Homepage        pgtype.Text        `json:"homepage"`
	Language        pgtype.Text        `json:"language"`
	StargazersCount pgtype.Int4        `json:"stargazers_count"`
	WatchersCount   pgtype.Int4        `json:"watchers_count"`
	ForksCount      pgtype.Int4        `json:"forks_count"`
	OpenIssuesCount pgtype.Int4        `json:"open_issues_count"`
	Size            pgtype.Int4        `json:"size"`
	DefaultBranch   pgtype.Text        `json:"default_branch"`
	Topics          []string           `json:"topics"`
	OwnerLogin      string             `json:"owner_login"`
	OwnerType       pgtype.Text        `json:"owner_type"`
	OwnerAvatarUrl  pgtype.Text        `json:"owner_avatar_url"`
	OwnerHtmlUrl    pgtype.Text        `json:"owner_html_url"`
	RepoCreatedAt   pgtype.Timestamptz `json:"repo_created_at"`
	RepoUpdatedAt   pgtype.Timestamptz `json:"repo_updated_at"`
	PushedAt        pgtype.Timestamptz `json:"pushed_at"`
	SearchKeyword   pgtype.Text        `json:"search_keyword"`
	Archived        pgtype.Bool        `json:"archived"`
	Disabled        pgtype.Bool        `json:"disabled"`
	Private         pgtype.Bool        `json:"private"`
	Fork            pgtype.Bool        `json:"fork"`
}

// UpsertRepositories sends every upsert in a single batch. Without an enclosing
// transaction the batch runs as one implicit transaction.
func (q *Queries) UpsertRepositories(ctx context.Context, arg []UpsertRepositoryParams) error {
	if len(arg) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range arg {
		batch.Queue(upsertRepository,
			a.GithubID,
			a.Name,
			a.FullName,
			a.Description,
			a.HtmlUrl,
			a.CloneUrl,
			a.SshUrl,
			a.Homepage,
			a.Language,
			a.StargazersCount,
			a.WatchersCount,
			a.ForksCount,
			a.OpenIssuesCount,
			a.Size,
			a.DefaultBranch,
			a.Topics,
			a.OwnerLogin,
			a.OwnerType,
			a.OwnerAvatarUrl,
			a.OwnerHtmlUrl,
			a.RepoCreatedAt,
			a.RepoUpdatedAt,
			a.PushedAt,
			a.SearchKeyword,
			a.Archived,
			a.Disabled,
			a.Private,
			a.Fork,
		)
	}
	br := q.db.SendBatch(ctx, batch)
	for range arg {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	return br.Close()
}

const getRepositoryByGithubID = `-- name: GetRepositoryByGithubID :one
SELECT ` + repositoryColumns + `
FROM repositories
WHERE github_id = $1
`

func (q *Queries) GetRepositoryByGithubID(ctx context.Context, githubID int64) (Repository, error) {
	row := q.db.QueryRow(ctx, getRepositoryByGithubID, githubID)
	return scanRepository(row)
}

// ListRepositories returns one page of repositories matching arg, sorted.
func (q *Queries) ListRepositories(ctx context.Context, arg ListRepositoriesParams) ([]Repository, error) {
	query, args, err := buildListRepositoriesQuery(arg)
	if err != nil {
		return nil, err
	}
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Repository
	for rows.Next() {
		i, err := scanRepository(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountRepositories counts the repositories matching arg, ignoring paging and sorting.
func (q *Queries) CountRepositories(ctx context.Context, arg ListRepositoriesParams) (int64, error) {
	query, args := buildCountRepositoriesQuery(arg)
	var count int64
	err := q.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

const listRepositoryStats = `-- name: ListRepositoryStats :many
SELECT stargazers_count, forks_count, language, owner_login
FROM repositories
`

type ListRepositoryStatsRow struct {
	StargazersCount pgtype.Int4 `json:"stargazers_count"`
	ForksCount      pgtype.Int4 `json:"forks_count"`
	Language        pgtype.Text `json:"language"`
	OwnerLogin      string      `json:"owner_login"`
}

func (q *Queries) ListRepositoryStats(ctx context.Context) ([]ListRepositoryStatsRow, error) {
	rows, err := q.db.Query(ctx, listRepositoryStats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRepositoryStatsRow
	for rows.Next() {
		var i ListRepositoryStatsRow
		if err := rows.Scan(
			&i.StargazersCount,
			&i.ForksCount,
			&i.Language,
			&i.OwnerLogin,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRepositoryTopics = `-- name: ListRepositoryTopics :many
SELECT topics
FROM repositories
WHERE topics IS NOT NULL
ORDER BY id
`

func (q *Queries) ListRepositoryTopics(ctx context.Context) ([][]string, error) {
	rows, err := q.db.Query(ctx, listRepositoryTopics)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items [][]string
	for rows.Next() {
		var topics []string
		if err := rows.Scan(&topics); err != nil {
			return nil, err
		}
		items = append(items, topics)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLanguages = `-- name: ListLanguages :many
SELECT DISTINCT language
FROM repositories
WHERE language IS NOT NULL AND language <> ''
ORDER BY language
`

func (q *Queries) ListLanguages(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, listLanguages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var language string
		if err := rows.Scan(&language); err != nil {
			return nil, err
		}
		items = append(items, language)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
