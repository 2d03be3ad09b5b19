package builders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/portalkit/gridview/core"
)

// Client is the default sql client used by the sql adapters.
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
	}
}

func (c *Client) Close() {
	c.db.Close()
}

func (c *Client) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return func(val any) any {
		valb, ok := val.([]byte)
		if ok {
			return string(valb)
		}
		return val
	}
}

// uniqueHeader suffixes repeated column names ("id", "id_2", ...) so every
// value gets its own row key.
func uniqueHeader(columns []string) core.Header {
	header := make(core.Header, len(columns))
	seen := make(map[string]int, len(columns))

	for i, name := range columns {
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		header[i] = name
	}

	return header
}

// Query executes a query and returns a stream of rows keyed by column name.
func (c *Client) Query(ctx context.Context, query string) (*ResultStream, error) {
	dbRows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	columns, err := dbRows.Columns()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}
	header := uniqueHeader(columns)

	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	processors := make([]func(any) any, len(dbCols))
	for i := range dbCols {
		processors[i] = c.getTypeProcessor(dbCols[i].DatabaseTypeName())
	}

	var (
		advanced bool
		has      bool
		// iteration errors surface through the following Next call
		iterErr error
	)

	hasNextFunc := func() bool {
		if advanced {
			return has
		}
		advanced = true

		has = dbRows.Next()
		if !has {
			if err := dbRows.Err(); err != nil {
				iterErr = err
				has = true
			}
		}
		return has
	}

	nextFunc := func() (core.Row, error) {
		if !hasNextFunc() {
			return nil, errors.New("no next row")
		}
		advanced = false
		if iterErr != nil {
			return nil, iterErr
		}

		values := make([]any, len(header))
		pointers := make([]any, len(header))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := dbRows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(header))
		for i, key := range header {
			row[key] = processors[i](values[i])
		}

		return row, nil
	}

	rows := NewResultStreamBuilder().
		WithNextFunc(nextFunc, hasNextFunc).
		WithHeader(header).
		WithCloseFunc(func() {
			_ = dbRows.Close()
		}).
		Build()

	return rows, nil
}
