// internal/model/pagination.go
package model

// DefaultPageSize is the page size used by both the search and the dashboard views.
const DefaultPageSize = 12

// MaxPage is the largest page number accepted from clients.
const MaxPage = 10_000_000

// Pagination carries the derived paging fields of a result page.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// TotalPages returns ceil(total/size). A non-positive size yields zero pages.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate derives the paging fields for a 1-indexed page.
func Paginate(page, size, total int) Pagination {
	pages := TotalPages(total, size)
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		HasNextPage: page < pages,
		HasPrevPage: page > 1,
	}
}

// RowWindow returns the zero-indexed, inclusive row range of a 1-indexed page.
func RowWindow(page, size int) (start, end int) {
	start = (page - 1) * size
	end = start + size - 1
	return start, end
}
