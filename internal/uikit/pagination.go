// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Page is one slice of an ordered collection together with the metadata
// list templates need to render navigation. It is exposed to templates
// under the "page_obj" key.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	TotalItems int64
	PerPage    int
	Links      []PageLink
}

// PageLink is a single entry of the page navigation window.
type PageLink struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// HasOtherPages reports whether navigation should be shown at all.
func (p Page[T]) HasOtherPages() bool { return p.TotalPages > 1 }

// NextNumber returns the next page number, or the current one on the last page.
func (p Page[T]) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

// PreviousNumber returns the previous page number, or 1 on the first page.
func (p Page[T]) PreviousNumber() int {
	if p.HasPrevious() {
		return p.Number - 1
	}
	return 1
}

// StartIndex is the 1-based position of the first item on the page,
// or 0 for an empty collection.
func (p Page[T]) StartIndex() int64 {
	if p.TotalItems == 0 {
		return 0
	}
	return int64((p.Number-1)*p.PerPage) + 1
}

// EndIndex is the 1-based position of the last item on the page.
func (p Page[T]) EndIndex() int64 {
	end := int64(p.Number * p.PerPage)
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return end
}

// Window resolves a requested page against a collection size.
// The returned page number is clamped into [1, totalPages] and offset is
// the number of items to skip. An empty collection has one empty page.
func Window(totalItems int64, perPage, requested int) (number, totalPages, offset int) {
	if perPage <= 0 {
		perPage = 1
	}
	totalPages = CalculateTotalPages(int(totalItems), perPage)
	number = ClampPage(requested, totalPages)
	offset = (number - 1) * perPage
	return number, totalPages, offset
}

// NewPage wraps items that were already cut for the requested page, for
// instance by a LIMIT/OFFSET query computed with Window.
func NewPage[T any](items []T, totalItems int64, perPage, requested int) Page[T] {
	if perPage <= 0 {
		perPage = 1
	}
	number, totalPages, _ := Window(totalItems, perPage, requested)
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:      items,
		Number:     number,
		TotalPages: totalPages,
		TotalItems: totalItems,
		PerPage:    perPage,
		Links: BuildPaginationPages(number, totalPages, pageQuery,
			func(n int, pageURL string, isCurrent, isEllipsis bool) PageLink {
				return PageLink{Number: n, URL: pageURL, IsCurrent: isCurrent, IsEllipsis: isEllipsis}
			}),
	}
}

// Paginate slices an in-memory collection. Requested pages outside the
// valid range clamp to the nearest valid page.
func Paginate[T any](items []T, perPage, requested int) Page[T] {
	if perPage <= 0 {
		perPage = 1
	}
	total := int64(len(items))
	_, _, offset := Window(total, perPage, requested)

	end := offset + perPage
	if end > len(items) {
		end = len(items)
	}

	return NewPage(items[offset:end], total, perPage, requested)
}

func pageQuery(page int) string {
	return "?page=" + strconv.Itoa(page)
}

// BuildPaginationPages generates page links with ellipsis for any pagination type.
// It shows 5 page numbers centered on the current page, with "..." for gaps,
// and always includes the first and last pages.
func BuildPaginationPages[T any](
	currentPage, totalPages int,
	buildURL func(int) string,
	makePage func(number int, pageURL string, isCurrent, isEllipsis bool) T,
) []T {
	var pages []T

	start := currentPage - 2
	end := currentPage + 2
	if start < 1 {
		start = 1
		end = 5
	}
	if end > totalPages {
		end = totalPages
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	if start > 1 {
		pages = append(pages, makePage(1, buildURL(1), false, false))
		if start > 2 {
			pages = append(pages, makePage(0, "", false, true))
		}
	}

	for i := start; i <= end; i++ {
		pages = append(pages, makePage(i, buildURL(i), i == currentPage, false))
	}

	if end < totalPages {
		if end < totalPages-1 {
			pages = append(pages, makePage(0, "", false, true))
		}
		pages = append(pages, makePage(totalPages, buildURL(totalPages), false, false))
	}

	return pages
}

// CalculateTotalPages calculates the number of pages for the given total items and items per page.
func CalculateTotalPages(totalItems, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return totalPages
}

// ClampPage ensures the page number is within the valid range [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// ParsePageNumber converts a raw "page" value into a page number.
// "last" selects the final page and anything else that is not an integer
// resolves to 1. Range checks are left to Window so that large numbers
// still clamp to the last page.
func ParsePageNumber(raw string) int {
	switch raw = strings.TrimSpace(raw); raw {
	case "":
		return 1
	case "last":
		return math.MaxInt
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// ParsePageParam parses the "page" query parameter from the request.
func ParsePageParam(r *http.Request) int {
	return ParsePageNumber(r.URL.Query().Get("page"))
}
