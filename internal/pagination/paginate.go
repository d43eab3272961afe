// Package pagination slices ordered result sets into fixed-size pages.
package pagination

import "strconv"

// DefaultPageSize is used when callers pass a non-positive size.
const DefaultPageSize = 10

// Paginate returns page (1-based) of items, size elements per page.
// A page past the end yields an empty slice. items is never modified.
func Paginate[T any](page int, items []T, size int) []T {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// PageFromQuery parses a page query value; missing or malformed input means
// the first page.
func PageFromQuery(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
