// Package paging holds the page arithmetic shared by list endpoints.
package paging

import (
	"math"
	"strconv"
)

// DefaultSize is the page size of every paginated listing.
const DefaultSize = 6

type Page struct {
	Number int
	Size   int
}

// Parse reads a 1-based page number; anything missing or below 1 becomes 1.
func Parse(raw string, size int) Page {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		n = 1
	}
	if size <= 0 {
		size = DefaultSize
	}
	if n > math.MaxInt/size {
		n = math.MaxInt / size
	}
	return Page{Number: n, Size: size}
}

// Offset saturates at math.MaxInt so far-out pages stay past the end.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

func (p Page) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}

// Slice returns the window of items for this page, empty when out of range.
func Slice[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Size < end-start {
		end = start + p.Size
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
