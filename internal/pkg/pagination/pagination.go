package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds the common list-query parameters shared by every
// paginated resource endpoint.
type Params struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// Parse extracts pagination parameters from query values. sortColumns maps
// accepted sortBy values to the actual SQL column; unknown values fall back
// to defaultSort.
func Parse(query url.Values, sortColumns map[string]string, defaultSort string) Params {
	p := Params{
		Page:      1,
		Limit:     DefaultLimit,
		Search:    strings.TrimSpace(query.Get("search")),
		SortBy:    defaultSort,
		SortOrder: "desc",
	}

	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		p.Limit = limit
	}

	if col, ok := sortColumns[query.Get("sortBy")]; ok {
		p.SortBy = col
	}
	if order := strings.ToLower(query.Get("sortOrder")); order == "asc" || order == "desc" {
		p.SortOrder = order
	}

	return p
}

// Offset returns the SQL OFFSET for the current page
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause returns a sanitized ORDER BY fragment. SortBy is always one of
// the whitelisted columns supplied to Parse, never raw user input.
func (p Params) OrderClause() string {
	order := "DESC"
	if p.SortOrder == "asc" {
		order = "ASC"
	}
	return p.SortBy + " " + order
}

// Meta builds response metadata for a total row count
func (p Params) Meta(total int) response.Meta {
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return response.Meta{
		Total:   total,
		Page:    p.Page,
		Limit:   p.Limit,
		Pages:   pages,
		HasNext: p.Page < pages,
		HasPrev: p.Page > 1,
	}
}
