// internal/database/list_test.go
package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListRepositoriesQuery(t *testing.T) {
	t.Run("no filters sorts and pages", func(t *testing.T) {
		query, args, err := buildListRepositoriesQuery(ListRepositoriesParams{
			SortBy: "stargazers_count", Descending: true, Limit: 12, Offset: 24,
		})

		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.True(t, strings.HasSuffix(query, "ORDER BY stargazers_count DESC NULLS LAST, github_id ASC LIMIT $1 OFFSET $2"), query)
		assert.Equal(t, []interface{}{int64(12), int64(24)}, args)
	})

	t.Run("search term is OR-ed across three columns", func(t *testing.T) {
		query, args, err := buildListRepositoriesQuery(ListRepositoriesParams{
			Search: "fox", SortBy: "name", Limit: 12,
		})

		require.NoError(t, err)
		assert.Contains(t, query, "WHERE (name ILIKE $1 OR description ILIKE $1 OR owner_login ILIKE $1)")
		assert.Contains(t, query, "ORDER BY name ASC")
		assert.Equal(t, []interface{}{"%fox%", int64(12), int64(0)}, args)
	})

	t.Run("search and language are AND-ed", func(t *testing.T) {
		query, args, err := buildListRepositoriesQuery(ListRepositoriesParams{
			Search: "fox", Language: "Go", SortBy: "updated_at", Descending: true, Limit: 12,
		})

		require.NoError(t, err)
		assert.Contains(t, query, "OR owner_login ILIKE $1) AND language = $2")
		assert.Contains(t, query, "ORDER BY repo_updated_at DESC")
		assert.Contains(t, query, "LIMIT $3 OFFSET $4")
		assert.Equal(t, []interface{}{"%fox%", "Go", int64(12), int64(0)}, args)
	})

	t.Run("wildcards in the term are escaped", func(t *testing.T) {
		_, args, err := buildListRepositoriesQuery(ListRepositoriesParams{Search: `50%_off\`, SortBy: "name"})

		require.NoError(t, err)
		assert.Equal(t, `%50\%\_off\\%`, args[0])
	})

	t.Run("unknown sort column is rejected", func(t *testing.T) {
		_, _, err := buildListRepositoriesQuery(ListRepositoriesParams{SortBy: "id; DROP TABLE repositories"})
		assert.Error(t, err)
	})
}

func TestBuildCountRepositoriesQuery(t *testing.T) {
	query, args := buildCountRepositoriesQuery(ListRepositoriesParams{Language: "Rust", Limit: 12, Offset: 12})

	assert.Equal(t, "SELECT COUNT(*) FROM repositories WHERE language = $1", query)
	assert.Equal(t, []interface{}{"Rust"}, args)
}
