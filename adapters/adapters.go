// Package adapters connects view sources to concrete databases and files.
// Every adapter registers itself under one or more type aliases in its init
// function.
package adapters

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/portalkit/gridview/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no adapter registered for provided type alias")
)

var (
	registeredMu       sync.RWMutex
	registeredAdapters = make(map[string]core.Adapter)
)

// register registers a new adapter for a source type
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	registeredMu.Lock()
	defer registeredMu.Unlock()

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	registeredMu.RLock()
	defer registeredMu.RUnlock()

	value, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeAlias, typ)
	}

	return value, nil
}

func (*Mux) AddAdapter(typ string, adapter core.Adapter) error {
	return register(adapter, typ)
}

// Types lists every registered alias in sorted order.
func (*Mux) Types() []string {
	registeredMu.RLock()
	defer registeredMu.RUnlock()

	types := make([]string, 0, len(registeredAdapters))
	for typ := range registeredAdapters {
		types = append(types, typ)
	}
	slices.Sort(types)
	return types
}

// NewSource is a wrapper around core.NewSource that picks the adapter by
// the source type.
func NewSource(params *core.SourceParams) (*core.Source, error) {
	adapter, err := new(Mux).GetAdapter(params.Expand().Type)
	if err != nil {
		return nil, fmt.Errorf("Mux.GetAdapter: %w", err)
	}

	s, err := core.NewSource(params, adapter)
	if err != nil {
		return nil, fmt.Errorf("core.NewSource: %w", err)
	}

	return s, nil
}
