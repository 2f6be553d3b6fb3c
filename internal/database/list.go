// internal/database/list.go
package database

import (
	"fmt"
	"strings"
)

// sortColumns maps the accepted sort keys to repositories columns.
var sortColumns = map[string]string{
	"stargazers_count": "stargazers_count",
	"forks_count":      "forks_count",
	"updated_at":       "repo_updated_at",
	"name":             "name",
}

// ListRepositoriesParams filters, sorts and pages the repositories table.
// Search matches name, description or owner login case-insensitively; an empty
// Search or Language disables that filter.
type ListRepositoriesParams struct {
	Search     string
	Language   string
	SortBy     string
	Descending bool
	Limit      int64
	Offset     int64
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildRepositoryFilter returns the WHERE clause (with a leading space) and its arguments.
func buildRepositoryFilter(arg ListRepositoriesParams) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if arg.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(arg.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR owner_login ILIKE $%d)", n, n, n))
	}

	if arg.Language != "" {
		args = append(args, arg.Language)
		conds = append(conds, fmt.Sprintf("language = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func buildListRepositoriesQuery(arg ListRepositoriesParams) (string, []interface{}, error) {
	column, ok := sortColumns[arg.SortBy]
	if !ok {
		return "", nil, fmt.Errorf("unsupported sort column %q", arg.SortBy)
	}
	direction := "ASC"
	if arg.Descending {
		direction = "DESC"
	}

	where, args := buildRepositoryFilter(arg)
	args = append(args, arg.Limit, arg.Offset)

	query := fmt.Sprintf("SELECT %s FROM repositories%s ORDER BY %s %s NULLS LAST, github_id ASC LIMIT $%d OFFSET $%d",
		repositoryColumns, where, column, direction, len(args)-1, len(args))
	return query, args, nil
}

func buildCountRepositoriesQuery(arg ListRepositoriesParams) (string, []interface{}) {
	where, args := buildRepositoryFilter(arg)
	return "SELECT COUNT(*) FROM repositories" + where, args
}
