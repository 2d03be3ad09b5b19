package mock

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/portalkit/gridview/core"
)

func newNext(rows []core.Row) (func() (core.Row, error), func() bool) {
	index := 0

	hasNext := func() bool {
		return index < len(rows)
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, errors.New("no next row")
		}

		row := rows[index]
		index++
		return row, nil
	}

	return next, hasNext
}

var _ core.ResultStream = (*ResultStream)(nil)

type ResultStream struct {
	next    func() (core.Row, error)
	hasNext func() bool
	config  *resultStreamConfig
	closed  bool
}

// makeDefaultHeader returns the sorted keys of the first row.
func makeDefaultHeader(rows []core.Row) core.Header {
	if len(rows) < 1 {
		return core.Header{}
	}

	header := make(core.Header, 0, len(rows[0]))
	for key := range rows[0] {
		header = append(header, key)
	}
	slices.Sort(header)
	return header
}

// NewResultStream returns a mocked result stream with provided rows.
// Unless configured otherwise, the header holds the sorted keys of the
// first row.
func NewResultStream(rows []core.Row, opts ...ResultStreamOption) *ResultStream {
	config := &resultStreamConfig{
		nextSleep: 0,
		header:    makeDefaultHeader(rows),
	}
	for _, opt := range opts {
		opt(config)
	}

	next, hasNext := newNext(rows)

	return &ResultStream{
		next:    next,
		hasNext: hasNext,
		config:  config,
	}
}

func (rs *ResultStream) Header() core.Header {
	return rs.config.header
}

func (rs *ResultStream) Next() (core.Row, error) {
	time.Sleep(rs.config.nextSleep)
	row, err := rs.next()
	if err != nil {
		return nil, err
	}
	if rs.config.failAt > 0 && row[indexKey] == rs.config.failAt {
		return nil, fmt.Errorf("failed reading row %d", rs.config.failAt)
	}
	return row, nil
}

func (rs *ResultStream) HasNext() bool {
	return !rs.closed && rs.hasNext()
}

func (rs *ResultStream) Close() {
	rs.closed = true
}

// IsClosed reports whether Close was called.
func (rs *ResultStream) IsClosed() bool {
	return rs.closed
}

const indexKey = "id"

// NewRows returns a slice of rows in form of:
//
//	{"id": <index>(int), "name": "row_<index>"(string)}
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		rows = append(rows, core.Row{indexKey: i, "name": fmt.Sprintf("row_%d", i)})
	}
	return rows
}
