package shared

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the number of rows shown per table page.
const PageSize = 10

// Pagination contains metadata for one page of a listing.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata. The page is clamped into
// [1, TotalPages] so a stale page number still shows rows.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = PageSize
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if page > totalPages {
		page = totalPages
	}
	if page <= 0 {
		page = 1
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Bounds returns the slice indexes of the current page.
func (p Pagination) Bounds() (start, end int) {
	start = (p.Page - 1) * p.PerPage
	if start > p.Total {
		start = p.Total
	}
	end = start + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// Info is the count line under a table.
func (p Pagination) Info() string {
	start, end := p.Bounds()
	if p.Total == 0 {
		return "Showing 0 to 0 of 0 entries"
	}
	return fmt.Sprintf("Showing %d to %d of %d entries", start+1, end, p.Total)
}

// HasPrev reports whether an earlier page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Paginate returns the rows of the current page.
func Paginate[T any](rows []T, p Pagination) []T {
	start, end := p.Bounds()
	return rows[start:end]
}

// ParsePage reads a 1-based page number, defaulting to 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// SortDir is a column ordering direction.
type SortDir string

// Sort directions.
const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Sort is the active table ordering.
type Sort struct {
	Key string
	Dir SortDir
}

// Column describes one table header. Columns without a Key are not sortable.
type Column struct {
	Key   string
	Label string
}

// Header is a rendered column header.
type Header struct {
	Label     string
	URL       string
	Indicator string
}

// ParseSort reads sort and dir query values. Keys that do not name a
// sortable column fall back to def.
func ParseSort(q url.Values, columns []Column, def Sort) Sort {
	key := q.Get("sort")
	if key == "" || !slices.ContainsFunc(columns, func(c Column) bool { return c.Key != "" && c.Key == key }) {
		return def
	}
	dir := SortAsc
	if SortDir(q.Get("dir")) == SortDesc {
		dir = SortDesc
	}
	return Sort{Key: key, Dir: dir}
}

// Set writes the ordering into query values.
func (s Sort) Set(values url.Values) {
	values.Set("sort", s.Key)
	values.Set("dir", string(s.Dir))
}

// Headers builds clickable headers. Clicking the active column flips its
// direction; any other column starts ascending.
func Headers(columns []Column, current Sort, link func(Sort) string) []Header {
	out := make([]Header, 0, len(columns))
	for _, c := range columns {
		h := Header{Label: c.Label}
		if c.Key != "" {
			next := Sort{Key: c.Key, Dir: SortAsc}
			if c.Key == current.Key {
				if current.Dir == SortAsc {
					h.Indicator = "▲"
					next.Dir = SortDesc
				} else {
					h.Indicator = "▼"
				}
			}
			h.URL = link(next)
		}
		out = append(out, h)
	}
	return out
}

// Comparators maps a sort key to an ascending comparison.
type Comparators[T any] map[string]func(a, b T) int

// SortRows orders a copy of rows by s. Equal rows keep their input order.
func SortRows[T any](rows []T, s Sort, cmps Comparators[T]) []T {
	sorted := slices.Clone(rows)
	cmp, ok := cmps[s.Key]
	if !ok {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b T) int {
		if s.Dir == SortDesc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return sorted
}

// TextCollator compares display text case-insensitively in English order.
// A Collator is not safe for concurrent use, so callers create one per sort.
func TextCollator() func(a, b string) int {
	c := collate.New(language.English, collate.IgnoreCase)
	return c.CompareString
}
