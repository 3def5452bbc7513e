package pagination

import "gorm.io/gorm"

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Pagination carries offset-style paging parsed from query params.
type Pagination struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit,default=100"`
}

func (p Pagination) normalized() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Apply adds OFFSET/LIMIT to the statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	n := p.normalized()
	return stmt.Offset(n.Skip).Limit(n.Limit)
}
