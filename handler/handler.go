// Package handler keeps track of the open views and wires each of them to
// its source, pager and output.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/portalkit/gridview/adapters"
	"github.com/portalkit/gridview/config"
	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/format"
	"github.com/portalkit/gridview/logging"
)

const refreshConcurrency = 4

var ErrUnknownView = errors.New("unknown view")

type viewEntry struct {
	name        string
	cfg         *config.View
	view        *core.View
	pager       *core.Pager
	source      *core.Source
	unsubscribe func()
}

type Handler struct {
	log         *logging.Logger
	events      *eventBus
	registry    *core.FormatterRegistry
	loadTimeout time.Duration

	stateFile string

	mu           sync.RWMutex
	lookupView   map[core.ViewID]*viewEntry
	lookupByName map[string]core.ViewID
	savedStates  map[string]*viewState
}

type Option func(*Handler)

// WithStateFile keeps the filters and sort order of every view in a JSON
// file: they are restored when a view of the same name is created and
// stored on Close.
func WithStateFile(path string) Option {
	return func(h *Handler) {
		h.stateFile = path
	}
}

// New returns a handler resolving column formats with registry. A zero
// loadTimeout leaves source loads bounded by the caller's context only.
func New(logger *logging.Logger, registry *core.FormatterRegistry, loadTimeout time.Duration, opts ...Option) *Handler {
	if registry == nil {
		registry = core.NewFormatterRegistry(nil)
	}

	h := &Handler{
		log:         logger,
		events:      &eventBus{log: logger},
		registry:    registry,
		loadTimeout: loadTimeout,

		lookupView:   make(map[core.ViewID]*viewEntry),
		lookupByName: make(map[string]core.ViewID),
		savedStates:  make(map[string]*viewState),
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.stateFile != "" {
		err := h.restoreStateLog()
		if err != nil {
			h.log.Warnf("h.restoreStateLog: %s", err)
		}
	}

	return h
}

func (h *Handler) Close() {
	err := h.storeStateLog()
	if err != nil {
		h.log.Warnf("h.storeStateLog: %s", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, e := range h.lookupView {
		e.close()
		delete(h.lookupView, id)
	}
	clear(h.lookupByName)
}

func (e *viewEntry) close() {
	e.unsubscribe()
	e.pager.Close()
	e.source.Close()
}

func (h *Handler) load(ctx context.Context, src *core.Source) (*core.Dataset, error) {
	if h.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.loadTimeout)
		defer cancel()
	}

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("src.Load: %w", err)
	}
	return ds, nil
}

// CreateView connects to the source of cfg, loads it and opens a view over
// the rows. A view with the same name replaces the previous one.
func (h *Handler) CreateView(ctx context.Context, cfg *config.View) (core.ViewID, error) {
	src, err := adapters.NewSource(cfg.SourceParams())
	if err != nil {
		return "", fmt.Errorf("adapters.NewSource: %w", err)
	}

	ds, err := h.load(ctx, src)
	if err != nil {
		src.Close()
		return "", err
	}

	columns, err := cfg.CoreColumns(h.registry, ds.Header)
	if err != nil {
		src.Close()
		return "", fmt.Errorf("cfg.CoreColumns: %w", err)
	}

	var opts []core.ViewOption
	if cfg.DatasetTypes {
		opts = append(opts, core.WithDatasetTypes())
	}

	view := core.NewView(columns, ds.Rows, opts...)
	pager := core.NewPager(view, cfg.PageSize)

	if cfg.Sort != "" {
		order, err := core.ParseSortOrder(cfg.Sort)
		if err == nil {
			err = pager.SetSort(order)
		}
		if err != nil {
			pager.Close()
			src.Close()
			return "", fmt.Errorf("sort %q: %w", cfg.Sort, err)
		}
	}

	id := view.ID()
	entry := &viewEntry{
		name:   cfg.Name,
		cfg:    cfg,
		view:   view,
		pager:  pager,
		source: src,
		unsubscribe: view.Subscribe(func(ev core.Event) {
			h.events.ViewEvent(cfg.Name, id, ev)
		}),
	}
	h.applySavedState(entry)

	var old *viewEntry
	h.mu.Lock()
	if oldID, ok := h.lookupByName[cfg.Name]; ok {
		old = h.lookupView[oldID]
		delete(h.lookupView, oldID)
	}
	h.lookupView[id] = entry
	h.lookupByName[cfg.Name] = id
	h.mu.Unlock()

	if old != nil {
		old.close()
	}

	h.events.ViewLoaded(cfg.Name, id, len(ds.Rows))

	return id, nil
}

func (h *Handler) entry(id core.ViewID) (*viewEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, ok := h.lookupView[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, id)
	}
	return e, nil
}

func (h *Handler) GetView(id core.ViewID) (*core.View, error) {
	e, err := h.entry(id)
	if err != nil {
		return nil, err
	}
	return e.view, nil
}

// ViewByName returns the id of the view created from the config view
// called name.
func (h *Handler) ViewByName(name string) (core.ViewID, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	id, ok := h.lookupByName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return id, nil
}

// GetViews returns the ids of all open views ordered by view name.
func (h *Handler) GetViews() []core.ViewID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.lookupByName))
	for name := range h.lookupByName {
		names = append(names, name)
	}
	slices.Sort(names)

	ids := make([]core.ViewID, len(names))
	for i, name := range names {
		ids[i] = h.lookupByName[name]
	}
	return ids
}

func (h *Handler) ViewSetSearch(id core.ViewID, term string) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}
	e.view.SetSearch(term)
	return nil
}

func (h *Handler) ViewSetFilter(id core.ViewID, key string, value any) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}
	e.view.HandleFilterChange(&core.FilterChange{Key: key, Value: value})
	return nil
}

func (h *Handler) ViewDialogRequest(id core.ViewID) (*core.DialogRequest, error) {
	e, err := h.entry(id)
	if err != nil {
		return nil, err
	}
	return e.view.DialogRequest(), nil
}

func (h *Handler) ViewApplyDialog(id core.ViewID, result *core.DialogResult) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}
	e.view.ApplyDialog(result)
	return nil
}

func (h *Handler) ViewClearAdvanced(id core.ViewID) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}
	e.view.ClearAdvanced()
	return nil
}

func (h *Handler) ViewClearAll(id core.ViewID) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}
	e.view.ClearAll()
	return nil
}

func (h *Handler) ViewFilters(id core.ViewID) ([]core.FilterDescriptor, error) {
	e, err := h.entry(id)
	if err != nil {
		return nil, err
	}
	return e.view.Filters(), nil
}

func (h *Handler) ViewSetSort(id core.ViewID, order core.SortOrder) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}
	return e.pager.SetSort(order)
}

func (h *Handler) ViewSetPage(id core.ViewID, page int) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}
	e.pager.SetPage(page)
	return nil
}

func (h *Handler) ViewSetPageSize(id core.ViewID, size int) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}
	e.pager.SetPageSize(size)
	return nil
}

func (h *Handler) ViewPage(id core.ViewID) (*core.Page, error) {
	e, err := h.entry(id)
	if err != nil {
		return nil, err
	}
	return e.pager.Current(), nil
}

// ViewExport renders the current page of a view in the named output format.
func (h *Handler) ViewExport(id core.ViewID, formatName string) ([]byte, error) {
	e, err := h.entry(id)
	if err != nil {
		return nil, err
	}

	exporter, err := format.ByName(formatName)
	if err != nil {
		return nil, err
	}

	out, err := e.pager.Export(exporter)
	if err != nil {
		return nil, fmt.Errorf("pager.Export: %w", err)
	}
	return out, nil
}

// ViewStore writes the current page of a view to output ("stdout" or
// "file", the latter taking the path as its argument).
func (h *Handler) ViewStore(id core.ViewID, formatName, output string, arg ...string) error {
	text, err := h.ViewExport(id, formatName)
	if err != nil {
		return err
	}

	writer, cleanup, err := getStoreWriter(output, arg...)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = writer.Write(text)
	if err != nil {
		return fmt.Errorf("writer.Write: %w", err)
	}

	return nil
}

func getStoreWriter(output string, arg ...string) (writer io.Writer, cleanup func(), err error) {
	switch output {
	case "file":
		if len(arg) < 1 || arg[0] == "" {
			return nil, func() {}, fmt.Errorf("no output path provided")
		}

		f, err := os.Create(arg[0])
		if err != nil {
			return nil, func() {}, err
		}

		return f, func() { f.Close() }, nil
	case "stdout", "":
		return os.Stdout, func() {}, nil
	}

	return nil, func() {}, fmt.Errorf("store output: %q is not supported", output)
}

// ViewRefresh reloads the source of a view and swaps in the new rows. The
// filter state of the view is kept.
func (h *Handler) ViewRefresh(ctx context.Context, id core.ViewID) error {
	e, err := h.entry(id)
	if err != nil {
		return err
	}

	ds, err := h.load(ctx, e.source)
	if err != nil {
		return fmt.Errorf("view %q: %w", e.name, err)
	}

	e.view.SetData(ds.Rows)
	h.events.ViewLoaded(e.name, id, len(ds.Rows))

	return nil
}

// RefreshAll reloads every open view concurrently and returns the first
// error encountered.
func (h *Handler) RefreshAll(ctx context.Context) error {
	ids := h.GetViews()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			return h.ViewRefresh(ctx, id)
		})
	}

	return g.Wait()
}
