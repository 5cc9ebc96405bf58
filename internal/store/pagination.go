package store

// Pagination carries list metadata returned alongside paged results.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
}

const defaultPageSize = 10

// normalizePage clamps page/limit to sane values (1-indexed, default 10)
func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	return page, limit
}

func newPagination(page, limit int, total int64) *Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
	}
}
