package models

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination selects rows [(Page-1)*PerPage, Page*PerPage) of an ordered set.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// NewPagination fills in defaults for non-positive values and caps PerPage.
// Page is capped so that Offset cannot overflow; a page past the end simply
// selects no rows.
func NewPagination(page, perPage int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if maxPage := math.MaxInt / perPage; page > maxPage {
		page = maxPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Pagination) Limit() int {
	return p.PerPage
}

// Meta accompanies paginated list responses.
type Meta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
}
