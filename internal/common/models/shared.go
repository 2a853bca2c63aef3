package models

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ListQuery carries the table-state parameters every listing endpoint
// accepts: free-text search, sort column + direction, per-field filters
// and pagination.
type ListQuery struct {
	Search    string         `json:"search" query:"search"`
	Sort      string         `json:"sort" query:"sort"`
	Direction string         `json:"direction" query:"direction"`
	Filters   map[string]any `json:"filters"`
	Page      int64          `json:"page" query:"page"`
	PerPage   int64          `json:"per_page" query:"per_page"`
}

// Normalize clamps pagination to sane bounds (per_page between 1 and 100)
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}
	if q.PerPage > 100 {
		q.PerPage = 100
	}
	if q.Direction != "asc" && q.Direction != "desc" {
		q.Direction = "asc"
	}
}

// ListQueryFromCtx binds the listing parameters from the query string.
// filter_<field>=<value> parameters become Filters entries.
func ListQueryFromCtx(c *fiber.Ctx) *ListQuery {
	q := &ListQuery{}
	_ = c.QueryParser(q)

	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		name := string(key)
		if !strings.HasPrefix(name, "filter_") {
			return
		}
		if q.Filters == nil {
			q.Filters = make(map[string]any)
		}
		q.Filters[strings.TrimPrefix(name, "filter_")] = string(value)
	})

	q.Normalize()
	return q
}

func (q *ListQuery) Skip() int64 {
	return (q.Page - 1) * q.PerPage
}

// SortOrder maps the direction string to Mongo's 1/-1 convention
func (q *ListQuery) SortOrder() int {
	if q.Direction == "desc" {
		return -1
	}
	return 1
}

type PageMeta struct {
	Total       int64 `json:"total"`
	PerPage     int64 `json:"per_page"`
	CurrentPage int64 `json:"current_page"`
	LastPage    int64 `json:"last_page"`
	From        int64 `json:"from"`
	To          int64 `json:"to"`
}

func NewPageMeta(total, perPage, page, count int64) PageMeta {
	lastPage := total / perPage
	if total%perPage != 0 || lastPage == 0 {
		lastPage++
	}
	var from, to int64
	if count > 0 {
		from = (page-1)*perPage + 1
		to = from + count - 1
	}
	return PageMeta{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    lastPage,
		From:        from,
		To:          to,
	}
}

// PagedResult is the envelope every listing endpoint returns
type PagedResult struct {
	Data any      `json:"data"`
	Meta PageMeta `json:"meta"`
}
