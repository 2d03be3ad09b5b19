package builders

import (
	"context"
	"errors"

	"github.com/portalkit/gridview/core"
)

// NextSingle creates next and hasNext functions from a single row.
func NextSingle(row core.Row) (func() (core.Row, error), func() bool) {
	has := true

	next := func() (core.Row, error) {
		if !has {
			return nil, errors.New("no next row")
		}
		has = false
		return row, nil
	}

	hasNext := func() bool {
		return has
	}

	return next, hasNext
}

// NextSlice creates next and hasNext functions from provided values.
// preprocess converts a single value to a row.
func NextSlice[T any](values []T, preprocess func(T) (core.Row, error)) (func() (core.Row, error), func() bool) {
	index := 0

	hasNext := func() bool {
		return index < len(values)
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, errors.New("no next row")
		}

		row, err := preprocess(values[index])
		if err != nil {
			return nil, err
		}
		index++
		return row, nil
	}

	return next, hasNext
}

// NextNil creates next and hasNext functions that don't return anything (no rows)
func NextNil() (func() (core.Row, error), func() bool) {
	hasNext := func() bool {
		return false
	}

	next := func() (core.Row, error) {
		return nil, errors.New("no next row")
	}

	return next, hasNext
}

// NextYield creates next and hasNext functions from a producer running in
// its own goroutine. Rows are handed over through yield, which stops
// blocking once ctx is done.
func NextYield(ctx context.Context, fn func(yield func(core.Row)) error) (func() (core.Row, error), func() bool) {
	type item struct {
		row core.Row
		err error
	}

	ch := make(chan item, 10)
	go func() {
		defer close(ch)
		send := func(it item) {
			select {
			case ch <- it:
			case <-ctx.Done():
			}
		}

		err := fn(func(row core.Row) {
			send(item{row: row})
		})
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			send(item{err: err})
		}
	}()

	var (
		buffered *item
		done     bool
	)

	// hasNext blocks until the producer either hands over a row or finishes
	hasNext := func() bool {
		if buffered != nil {
			return true
		}
		if done {
			return false
		}

		it, ok := <-ch
		if !ok {
			done = true
			return false
		}
		buffered = &it
		return true
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, errors.New("no next row")
		}

		it := buffered
		buffered = nil
		return it.row, it.err
	}

	return next, hasNext
}
