// Package listing holds the state behind the paged, filterable tables: the
// records table, the departures of one file and the firefighter roster.
// Every filter, sort or page change triggers exactly one fetch; mutations are
// always followed by a full reload rather than a local patch.
package listing

import "github.com/dharsanguruparan/strazak/internal/client"

// DefaultPageSize is the number of rows requested per page.
const DefaultPageSize = 50

// Pager tracks an offset-based page position. After each fetch the caller
// reports what came back through Observe; HasNext then decides whether another
// page can exist.
type Pager struct {
	size     int
	offset   int
	returned int
	total    int
	hasTotal bool
}

// NewPager returns a Pager at the first page. Sizes below 1 fall back to
// DefaultPageSize.
func NewPager(size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{size: size}
}

func (p *Pager) Size() int   { return p.size }
func (p *Pager) Offset() int { return p.offset }

// Page is the zero-based page index.
func (p *Pager) Page() int { return p.offset / p.size }

// Observe records the result of the last fetch. total is nil when the
// endpoint does not report a total count.
func (p *Pager) Observe(returned int, total *int) {
	p.returned = returned
	p.hasTotal = total != nil
	if total != nil {
		p.total = *total
	}
}

// HasNext reports whether the next page may hold rows. With a known total the
// answer is exact; otherwise a short page marks the end.
func (p *Pager) HasNext() bool {
	if p.hasTotal {
		return p.offset+p.returned < p.total
	}
	return p.returned >= p.size
}

func (p *Pager) HasPrev() bool { return p.offset > 0 }

// Next advances one page. It returns false, leaving the position unchanged,
// when HasNext is false.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.offset += p.size
	return true
}

// Prev steps back one page, stopping at the first.
func (p *Pager) Prev() bool {
	if p.offset == 0 {
		return false
	}
	p.offset = max(0, p.offset-p.size)
	return true
}

// Reset returns to the first page. Filter changes call it.
func (p *Pager) Reset() {
	p.offset = 0
}

// Seek moves to a zero-based page index without checking HasNext; negative
// pages clamp to the first.
func (p *Pager) Seek(page int) {
	p.offset = max(0, page) * p.size
}

// Total returns the server-reported row count, if the endpoint sends one.
func (p *Pager) Total() (int, bool) {
	return p.total, p.hasTotal
}

// Window returns the 1-based row range shown on the current page, or 0, 0 when
// the page is empty.
func (p *Pager) Window() (from, to int) {
	if p.returned == 0 {
		return 0, 0
	}
	return p.offset + 1, p.offset + p.returned
}

// Sort is the active column and direction of a sortable table. The zero value
// means unsorted.
type Sort struct {
	Column string
	Order  client.SortOrder
}

// Toggle applies a click on a column header: the same column flips the
// direction, a different column starts ascending.
func (s *Sort) Toggle(column string) {
	if column == s.Column && s.Order != "" {
		s.Order = s.Order.Flip()
		return
	}
	s.Column = column
	s.Order = client.Ascending
}

// Clear removes sorting.
func (s *Sort) Clear() {
	*s = Sort{}
}
