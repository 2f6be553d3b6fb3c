// internal/database/models.go
package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Repository struct {
	ID              int64              `json:"id"`
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
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}
