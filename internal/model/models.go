// internal/model/models.go
package model

import "time"

// Owner describes the account that owns a repository.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// Repository is the repository shape shared by live search results and the cache.
type Repository struct {
	GithubID        int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	WatchersCount   int       `json:"watchers_count"`
	Language        *string   `json:"language"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Owner           Owner     `json:"owner"`
	Topics          []string  `json:"topics"`
}

// SearchResult is a page of live search results augmented with pagination fields.
type SearchResult struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []Repository `json:"items"`
	Pagination
}

// RepositoryPage is a page of cached repositories.
type RepositoryPage struct {
	Repositories []Repository `json:"repositories"`
	Total        int          `json:"total"`
	Page         int          `json:"page"`
	TotalPages   int          `json:"totalPages"`
}

// Stats summarizes the cached corpus.
type Stats struct {
	TotalRepositories int   `json:"totalRepositories"`
	TotalStars        int64 `json:"totalStars"`
	TotalForks        int64 `json:"totalForks"`
	UniqueLanguages   int   `json:"uniqueLanguages"`
	UniqueOwners      int   `json:"uniqueOwners"`
}

// TopicCount is the number of cached repositories tagged with a topic.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Overview bundles the corpus statistics and the most frequent topics.
type Overview struct {
	Stats  Stats        `json:"stats"`
	Topics []TopicCount `json:"topics"`
}
