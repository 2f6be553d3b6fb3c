// internal/model/criteria.go
package model

import "strings"

// LanguageAll is the language filter value that disables language filtering.
const LanguageAll = "all"

// SortKey is a cached-repository column the dashboard can sort by.
type SortKey string

const (
	SortByStars   SortKey = "stargazers_count"
	SortByForks   SortKey = "forks_count"
	SortByUpdated SortKey = "updated_at"
	SortByName    SortKey = "name"
)

// Valid reports whether k is one of the known sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortByStars, SortByForks, SortByUpdated, SortByName:
		return true
	}
	return false
}

// SortOrder is an ascending or descending sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Valid reports whether o is asc or desc.
func (o SortOrder) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// Toggle returns the opposite direction.
func (o SortOrder) Toggle() SortOrder {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// Filters are the user-editable dashboard filter and sort settings.
type Filters struct {
	SearchTerm string    `json:"searchTerm"`
	Language   string    `json:"language"`
	SortBy     SortKey   `json:"sortBy"`
	SortOrder  SortOrder `json:"sortOrder"`
}

// DefaultFilters returns the filters a fresh dashboard starts with.
func DefaultFilters() Filters {
	return Filters{
		Language:  LanguageAll,
		SortBy:    SortByStars,
		SortOrder: OrderDesc,
	}
}

// Criteria is a complete cache query: filters plus the requested page.
type Criteria struct {
	Filters
	Page     int
	PageSize int
}

// Normalize fills in defaults for missing or out-of-range values.
func (c Criteria) Normalize() Criteria {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.Page > MaxPage {
		c.Page = MaxPage
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if !c.SortBy.Valid() {
		c.SortBy = SortByStars
	}
	if !c.SortOrder.Valid() {
		c.SortOrder = OrderDesc
	}
	c.SearchTerm = strings.TrimSpace(c.SearchTerm)
	if c.Language == "" {
		c.Language = LanguageAll
	}
	return c
}

// LanguageFilter returns the language to filter on, or "" when no filter applies.
func (c Criteria) LanguageFilter() string {
	if c.Language == LanguageAll {
		return ""
	}
	return c.Language
}

// SearchSort is a sort field accepted by the remote search API.
type SearchSort string

const (
	SearchSortStars      SearchSort = "stars"
	SearchSortForks      SearchSort = "forks"
	SearchSortHelpWanted SearchSort = "help-wanted-issues"
	SearchSortUpdated    SearchSort = "updated"
)

// Valid reports whether s is a sort field the search API understands.
func (s SearchSort) Valid() bool {
	switch s {
	case SearchSortStars, SearchSortForks, SearchSortHelpWanted, SearchSortUpdated:
		return true
	}
	return false
}

// SearchParams describes one remote search request.
type SearchParams struct {
	Query   string
	Page    int
	PerPage int
	Sort    SearchSort
	Order   SortOrder
}

// WithDefaults returns p with the default page, page size, sort and order applied.
func (p SearchParams) WithDefaults() SearchParams {
	p.Query = strings.TrimSpace(p.Query)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPageSize
	}
	if p.Sort == "" {
		p.Sort = SearchSortStars
	}
	if p.Order == "" {
		p.Order = OrderDesc
	}
	return p
}
