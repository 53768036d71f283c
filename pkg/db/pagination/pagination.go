package pagination

import "gorm.io/gorm"

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type Pagination struct {
	Page    int `form:"page,default=1"`
	PerPage int `form:"per_page,default=10"`
}

type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Apply adds LIMIT/OFFSET to the statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Limit(p.PerPage).Offset(p.Offset())
}

func BuildPageInfo(p Pagination, total int64) PageInfo {
	pages := int(total) / p.PerPage
	if int(total)%p.PerPage != 0 {
		pages++
	}
	return PageInfo{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: total,
		TotalPages: pages,
	}
}
