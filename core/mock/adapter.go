package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/portalkit/gridview/core"
)

var _ core.Driver = (*driver)(nil)

type driver struct {
	adapter *Adapter
	closed  bool
}

func (d *driver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	config := d.adapter.config

	eff, ok := config.querySideEffects[query]
	if ok {
		err := eff(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	return NewResultStream(d.adapter.getData(), config.resultStreamOptions...), nil
}

func (d *driver) Close() {
	d.adapter.mu.Lock()
	defer d.adapter.mu.Unlock()
	if !d.closed {
		d.closed = true
		d.adapter.open--
	}
}

var _ core.Adapter = (*Adapter)(nil)

// Adapter connects to an in-memory dataset. Every query returns the same
// rows unless a side effect registered for it fails.
type Adapter struct {
	mu     sync.Mutex
	data   []core.Row
	open   int
	config *adapterConfig
}

func NewAdapter(data []core.Row, opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		querySideEffects:    make(map[string]func(context.Context) error),
		resultStreamOptions: []ResultStreamOption{},
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		data:   data,
		config: config,
	}
}

func (a *Adapter) Connect(url string) (core.Driver, error) {
	if a.config.connectError != nil {
		return nil, a.config.connectError
	}

	a.mu.Lock()
	a.open++
	a.mu.Unlock()

	return &driver{adapter: a}, nil
}

// OpenDrivers counts the drivers connected and not yet closed.
func (a *Adapter) OpenDrivers() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

// SetData swaps the rows returned by future queries, including those of
// already connected drivers.
func (a *Adapter) SetData(data []core.Row) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = data
}

func (a *Adapter) getData() []core.Row {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data
}
