package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

const DefaultPageSize = 25

var (
	ErrInvalidRange = func(from, to int) error { return fmt.Errorf("invalid selection range: %d ... %d", from, to) }

	ErrNotSortable = errors.New("column is not sortable")
)

// SortOrder selects the column rows are ordered by. A zero value keeps the
// original order.
type SortOrder struct {
	Key  string
	Desc bool
}

// String is the inverse of ParseSortOrder.
func (o SortOrder) String() string {
	if o.Desc {
		return o.Key + ":desc"
	}
	return o.Key
}

// ParseSortOrder parses "key" or "key:desc" / "key:asc".
func ParseSortOrder(s string) (SortOrder, error) {
	key, dir, found := strings.Cut(strings.TrimSpace(s), ":")
	order := SortOrder{Key: key}
	if !found {
		return order, nil
	}

	switch strings.ToLower(dir) {
	case "asc", "":
	case "desc":
		order.Desc = true
	default:
		return SortOrder{}, fmt.Errorf("unknown sort direction %q", dir)
	}
	return order, nil
}

// SortRows returns a stably sorted copy of rows ordered by the values under
// key. Missing values go last in either direction.
func SortRows(rows []Row, key string, desc bool) []Row {
	sorted := slices.Clone(rows)

	slices.SortStableFunc(sorted, func(a, b Row) int {
		av, bv := a[key], b[key]
		an, bn := isNil(av), isNil(bv)
		switch {
		case an && bn:
			return 0
		case an:
			return 1
		case bn:
			return -1
		}

		c := compareValues(av, bv)
		if desc {
			return -c
		}
		return c
	})

	return sorted
}

// RowRange returns rows[from:to] along with the adjusted bounds. Negative
// indices count from the end, -1 being the end itself. Bounds past the end
// are clamped.
func RowRange(rows []Row, from, to int) (out []Row, rangeFrom, rangeTo int, err error) {
	if (from < 0 && to < 0) || (from >= 0 && to >= 0) {
		if from > to {
			return nil, 0, 0, ErrInvalidRange(from, to)
		}
	}
	// undefined
	if from < 0 && to >= 0 {
		return nil, 0, 0, ErrInvalidRange(from, to)
	}

	length := len(rows)
	if from < 0 {
		from = max(from+length+1, 0)
	}
	if to < 0 {
		to = max(to+length+1, 0)
	}

	from = min(from, length)
	to = min(to, length)

	return rows[from:to], from, to, nil
}

// Page is one slice of the sorted visible rows.
type Page struct {
	Rows []Row
	// Number is 1-based
	Number     int
	Count      int
	Total      int
	ChunkStart int
}

// Pager sorts and slices the visible rows of a view. It goes back to the
// first page whenever the view signals a page reset.
type Pager struct {
	view        *View
	unsubscribe func()

	mu    sync.Mutex
	size  int
	page  int
	order SortOrder
}

func NewPager(view *View, size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}

	p := &Pager{
		view: view,
		size: size,
		page: 1,
	}
	p.unsubscribe = view.Subscribe(func(ev Event) {
		if ev.Kind == EventPageReset {
			p.Reset()
		}
	})

	return p
}

// Reset goes back to the first page.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = 1
}

// SetPage selects a 1-based page. Out of range numbers are clamped when
// the page is read.
func (p *Pager) SetPage(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = max(n, 1)
}

func (p *Pager) SetPageSize(size int) {
	if size <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.size = size
	p.page = 1
}

// SetSort orders rows by a sortable column. An empty key restores the
// original order.
func (p *Pager) SetSort(order SortOrder) error {
	if order.Key != "" {
		col, ok := p.view.Column(order.Key)
		if !ok || !col.IsSortable() {
			return fmt.Errorf("%w: %q", ErrNotSortable, order.Key)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.order = order
	p.page = 1
	return nil
}

func (p *Pager) Sort() SortOrder {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.order
}

// Current returns the selected page.
func (p *Pager) Current() *Page {
	p.mu.Lock()
	size, page, order := p.size, p.page, p.order
	p.mu.Unlock()

	rows := p.view.Visible()
	if order.Key != "" {
		rows = SortRows(rows, order.Key, order.Desc)
	}

	count := max((len(rows)+size-1)/size, 1)
	page = min(page, count)

	from := (page - 1) * size
	// from <= to always holds here
	pageRows, from, _, _ := RowRange(rows, from, from+size)

	return &Page{
		Rows:       pageRows,
		Number:     page,
		Count:      count,
		Total:      len(rows),
		ChunkStart: from,
	}
}

// Export renders the selected page with exporter.
func (p *Pager) Export(exporter Exporter) ([]byte, error) {
	page := p.Current()

	out, err := exporter.Export(p.view.Columns(), page.Rows, &ExportOptions{ChunkStart: page.ChunkStart})
	if err != nil {
		return nil, fmt.Errorf("exporter.Export: %w", err)
	}
	return out, nil
}

// Close detaches the pager from its view.
func (p *Pager) Close() {
	p.unsubscribe()
}
