// Package pagination slices ordered feeds into fixed-size pages.
//
// Requested page numbers are forgiving: anything that is not a positive
// integer means page 1, and a page past the end clamps to the last page.
// An empty collection still has exactly one (empty) page.
package pagination

import "strconv"

// PageSize is shared by every feed.
const PageSize = 10

// Page describes one window over a collection of Count items.
type Page struct {
	Number   int
	NumPages int
	Count    int64
	Size     int
}

// ParsePage turns a raw query value into a 1-based page number.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// New builds the page for requested out of total items using PageSize.
func New(total int64, requested int) Page {
	return NewWithSize(total, requested, PageSize)
}

// NewWithSize is New with an explicit page size.
func NewWithSize(total int64, requested, size int) Page {
	if size < 1 {
		size = PageSize
	}
	if total < 0 {
		total = 0
	}

	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{Number: number, NumPages: numPages, Count: total, Size: size}
}

func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) HasPrevious() bool { return p.Number > 1 }

// NextPageNumber is 0 when there is no next page.
func (p Page) NextPageNumber() int {
	if !p.HasNext() {
		return 0
	}
	return p.Number + 1
}

// PreviousPageNumber is 0 when there is no previous page.
func (p Page) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return 0
	}
	return p.Number - 1
}

// Offset is the index of the first item on the page.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// Limit is the maximum number of items on the page.
func (p Page) Limit() int { return p.Size }

// Len is the number of items actually on the page.
func (p Page) Len() int {
	remaining := p.Count - int64(p.Offset())
	if remaining <= 0 {
		return 0
	}
	if remaining > int64(p.Size) {
		return p.Size
	}
	return int(remaining)
}

// Slice returns the items of an in-memory collection that fall on the page
// requested, together with the page metadata.
func Slice[T any](items []T, requested int) ([]T, Page) {
	p := New(int64(len(items)), requested)
	start := p.Offset()
	end := start + p.Len()
	return items[start:end], p
}
