// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "math"

// Page is one page of a newest-first joke listing.
type Page struct {
	Items   []Joke
	Total   int64
	Page    int
	PerPage int
}

// Pages returns the number of pages, at least 1.
func (p *Page) Pages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// HasPrev reports whether a previous page exists.
func (p *Page) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p *Page) HasNext() bool {
	return p.Page < p.Pages()
}

// Offset returns the row offset for a 1-indexed page. It saturates at
// math.MaxInt instead of wrapping for huge pages.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	if perPage > 0 && page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}
