package pagination

import (
	"net/http"
	"strconv"
)

// MaxPerPage bounds the per_page query parameter.
const MaxPerPage = 100

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns the first page with the given page size.
func DefaultParams(perPage int) Params {
	if perPage <= 0 {
		perPage = 10
	}
	return Params{Page: 1, PerPage: perPage}
}

// FromRequest extracts pagination parameters from an HTTP request, falling back
// to page 1 and defaultPerPage when the query values are absent or invalid.
func FromRequest(r *http.Request, defaultPerPage int) Params {
	p := DefaultParams(defaultPerPage)

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= MaxPerPage {
			p.PerPage = v
		}
	}

	return p
}

// Result wraps one page of a larger ordered sequence.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// TotalPages returns ceil(total/perPage), never less than 1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	return pages
}

// Clamp forces page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Window returns the requested page of items. The page number is clamped to
// the valid range, so an out-of-range request yields the nearest page.
func Window[T any](items []T, params Params) Result[T] {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultParams(0).PerPage
	}

	total := len(items)
	totalPages := TotalPages(total, perPage)
	page := Clamp(params.Page, totalPages)

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return Result[T]{
		Data:       data,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
