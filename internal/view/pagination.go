package view

// Pagination describes one page of a listing. A requested page past the
// end produces an empty page, never an error.
type Pagination struct {
	Page     int // current page, 1-based
	PageSize int
	Total    int // total matching items
}

// NewPagination normalizes the requested page (anything below 1 becomes 1).
func NewPagination(page, pageSize, total int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total}
}

// Pages returns the number of pages, at least 1.
func (p Pagination) Pages() int {
	if p.Total == 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool {
	return p.Page < p.Pages()
}

// Prev returns the previous page number, clamped to 1.
func (p Pagination) Prev() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// Next returns the next page number, clamped to the last page.
func (p Pagination) Next() int {
	if p.Page >= p.Pages() {
		return p.Pages()
	}
	return p.Page + 1
}
