// Package paginator splits an ordered result set into numbered pages.
//
// Page numbers that cannot be parsed fall back to the first page, numbers
// outside the valid range clamp to the last page, including ones too large
// for an int. There is always at least
// one page, even for an empty result set.
package paginator

import (
	"errors"
	"strconv"
	"strings"
)

const DefaultPerPage = 10

type Paginator struct {
	Count    int
	PerPage  int
	NumPages int
}

func New(count, perPage int) Paginator {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if count < 0 {
		count = 0
	}

	numPages := (count + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}

	return Paginator{Count: count, PerPage: perPage, NumPages: numPages}
}

// GetPage resolves a raw "page" query value to a valid page.
func (p Paginator) GetPage(raw string) Page {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, strconv.ErrRange):
		number = p.NumPages
	case err != nil:
		number = 1
	case number < 1 || number > p.NumPages:
		number = p.NumPages
	}

	return Page{Number: number, NumPages: p.NumPages, Count: p.Count, PerPage: p.PerPage}
}

type Page struct {
	Number   int
	NumPages int
	Count    int
	PerPage  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

// StartIndex is the 1-based position of the first item on the page, 0 when empty.
func (p Page) StartIndex() int {
	if p.Count == 0 {
		return 0
	}
	return p.Offset() + 1
}

func (p Page) EndIndex() int {
	end := p.Number * p.PerPage
	if end > p.Count {
		end = p.Count
	}
	return end
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page) NextPageNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p Page) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// PageRange lists every page number, 1..NumPages.
func (p Page) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
