package services

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type ListQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// NewListQuery parses raw query values. Anything that is not a positive integer
// falls back to the default instead of failing the request.
func NewListQuery(search, category, page, limit string) ListQuery {
	return ListQuery{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
		Page:     parsePositive(page, DefaultPage),
		Limit:    parsePositive(limit, DefaultLimit),
	}
}

func parsePositive(raw string, fallback int) int {
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func (v ListQuery) normalized() ListQuery {
	if v.Page <= 0 {
		v.Page = DefaultPage
	}
	if v.Limit <= 0 {
		v.Limit = DefaultLimit
	}
	return v
}

func (v ListQuery) Offset() int {
	return (v.Page - 1) * v.Limit
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func NewPagination(query ListQuery, total int64, returned int) Pagination {
	return Pagination{
		CurrentPage: query.Page,
		TotalPages:  int(math.Ceil(float64(total) / float64(query.Limit))),
		TotalCount:  total,
		HasNext:     int64(query.Offset()+returned) < total,
		HasPrev:     query.Page > 1,
	}
}
