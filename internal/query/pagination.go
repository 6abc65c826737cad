package query

import "strconv"

// PerPageOptions enumerates the accepted page sizes. Anything else falls
// back to DefaultPerPage rather than erroring.
var PerPageOptions = []int{25, 50, 100, 200}

const DefaultPerPage = 25

// Pagination describes one page of a filtered result set. TotalPages is at
// least 1 even for an empty set, and Page is always clamped into
// [1, TotalPages]; PrevPage and NextPage saturate at the boundaries.
type Pagination struct {
	Page       int
	PerPage    int
	TotalRows  int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// ParsePageArgs interprets raw page/per_page request values. Bad input is
// never an error: a non-numeric or sub-1 page becomes 1, a page size outside
// PerPageOptions becomes DefaultPerPage.
func ParsePageArgs(pageRaw, perPageRaw string) (page, perPage int) {
	page = 1
	if n, err := strconv.Atoi(pageRaw); err == nil && n >= 1 {
		page = n
	}

	perPage = DefaultPerPage
	if n, err := strconv.Atoi(perPageRaw); err == nil {
		for _, opt := range PerPageOptions {
			if n == opt {
				perPage = n
				break
			}
		}
	}

	return page, perPage
}

// NewPagination computes the page window for totalRows matching rows. It is
// a pure function of its inputs: calling it twice with the same arguments
// yields the same result.
func NewPagination(totalRows, page, perPage int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}

	totalPages := (totalRows + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	p := Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalRows:  totalRows,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   1,
		NextPage:   totalPages,
	}
	if p.HasPrev {
		p.PrevPage = page - 1
	}
	if p.HasNext {
		p.NextPage = page + 1
	}
	return p
}

// Offset returns the row offset of the page window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}
