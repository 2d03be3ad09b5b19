package builders

import (
	"errors"
	"sync"

	"github.com/portalkit/gridview/core"
)

var _ core.ResultStream = (*ResultStream)(nil)

// ResultStream fills the core.ResultStream interface for all adapters.
type ResultStream struct {
	next     func() (core.Row, error)
	hasNext  func() bool
	close    func()
	callback func()
	header   core.Header
	once     sync.Once
}

// SetCallback registers a function called once when the stream closes.
func (r *ResultStream) SetCallback(callback func()) {
	r.callback = callback
}

func (r *ResultStream) Header() core.Header {
	return r.header
}

func (r *ResultStream) HasNext() bool {
	return r.hasNext()
}

func (r *ResultStream) Next() (core.Row, error) {
	row, err := r.next()
	if err != nil || row == nil {
		r.Close()
		return nil, err
	}
	return row, nil
}

func (r *ResultStream) Close() {
	r.once.Do(func() {
		r.close()
		if r.callback != nil {
			r.callback()
		}
	})
	r.hasNext = func() bool {
		return false
	}
}

// ResultStreamBuilder builds the result stream
type ResultStreamBuilder struct {
	next    func() (core.Row, error)
	hasNext func() bool
	header  core.Header
	close   func()
}

func NewResultStreamBuilder() *ResultStreamBuilder {
	return &ResultStreamBuilder{
		next:    func() (core.Row, error) { return nil, errors.New("no next row") },
		hasNext: func() bool { return false },
		header:  core.Header{},
		close:   func() {},
	}
}

func (b *ResultStreamBuilder) WithNextFunc(fn func() (core.Row, error), has func() bool) *ResultStreamBuilder {
	b.next = fn
	b.hasNext = has
	return b
}

func (b *ResultStreamBuilder) WithHeader(header core.Header) *ResultStreamBuilder {
	b.header = header
	return b
}

func (b *ResultStreamBuilder) WithCloseFunc(fn func()) *ResultStreamBuilder {
	b.close = fn
	return b
}

func (b *ResultStreamBuilder) Build() *ResultStream {
	return &ResultStream{
		next:    b.next,
		hasNext: b.hasNext,
		header:  b.header,
		close:   b.close,
	}
}
