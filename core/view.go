package core

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

type (
	ViewID string

	EventKind int

	// Event is emitted by a view after a state change has been fully applied.
	Event struct {
		Kind EventKind
		// Key is set for EventFilterChanged
		Key string
		// Value holds the new search term for EventSearchChanged and the new
		// filter value (nil when cleared) for EventFilterChanged
		Value any
	}

	Listener func(Event)

	// FilterChange is a single column filter edit coming from a filter
	// control.
	FilterChange struct {
		Key   string
		Value any
	}
)

const (
	EventSearchChanged EventKind = iota
	EventFilterChanged
	EventFiltersCleared
	EventFiltersRegenerated
	EventPageReset
	EventRowsChanged
)

func (k EventKind) String() string {
	switch k {
	case EventSearchChanged:
		return "search_changed"
	case EventFilterChanged:
		return "filter_changed"
	case EventFiltersCleared:
		return "filters_cleared"
	case EventFiltersRegenerated:
		return "filters_regenerated"
	case EventPageReset:
		return "page_reset"
	case EventRowsChanged:
		return "rows_changed"
	default:
		return "unknown"
	}
}

type viewConfig struct {
	datasetTypes bool
}

type ViewOption func(*viewConfig)

// WithDatasetTypes makes column filters match with the type inferred for
// the whole column instead of re-inferring it from each single value.
func WithDatasetTypes() ViewOption {
	return func(c *viewConfig) {
		c.datasetTypes = true
	}
}

type listenerEntry struct {
	id uuid.UUID
	fn Listener
}

// View owns the original dataset of a list view and the active filter
// state, and keeps the visible rows in sync with both. Visible rows are
// always recomputed from the original dataset, never from a previous
// result, and the original rows are never modified.
//
// Rows are shared with the caller, who must not mutate them.
type View struct {
	id     ViewID
	config viewConfig

	mu          sync.RWMutex
	columns     []Column
	original    []Row
	filters     []FilterDescriptor
	filterTypes map[string]FilterType
	state       FilterState
	visible     []Row

	listenersMu sync.Mutex
	listeners   []listenerEntry
}

func NewView(columns []Column, rows []Row, opts ...ViewOption) *View {
	config := viewConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	v := &View{
		id:       ViewID(uuid.New().String()),
		config:   config,
		columns:  slices.Clone(columns),
		original: slices.Clone(rows),
		state:    NewFilterState(),
	}
	v.regenerate()
	v.recompute()

	return v
}

func (v *View) ID() ViewID {
	return v.id
}

// Subscribe registers a listener. Listeners run synchronously, in
// registration order, after the view lock is released.
func (v *View) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	id := uuid.New()
	v.listenersMu.Lock()
	v.listeners = append(v.listeners, listenerEntry{id: id, fn: fn})
	v.listenersMu.Unlock()

	return func() {
		v.listenersMu.Lock()
		defer v.listenersMu.Unlock()
		v.listeners = slices.DeleteFunc(v.listeners, func(e listenerEntry) bool {
			return e.id == id
		})
	}
}

func (v *View) emit(events []Event) {
	v.listenersMu.Lock()
	listeners := slices.Clone(v.listeners)
	v.listenersMu.Unlock()

	for _, ev := range events {
		for _, l := range listeners {
			l.fn(ev)
		}
	}
}

// update runs fn under the write lock and emits the events it returns.
func (v *View) update(fn func() []Event) {
	v.mu.Lock()
	events := fn()
	v.mu.Unlock()

	v.emit(events)
}

func (v *View) regenerate() {
	v.filters = GenerateFilters(v.columns, v.original)
	v.filterTypes = make(map[string]FilterType, len(v.filters))
	for _, f := range v.filters {
		v.filterTypes[f.Key] = f.Type
	}
}

func (v *View) recompute() {
	v.visible = filterRows(v.original, v.columns, v.state, v.match)
}

func (v *View) match(key string, itemValue, filterValue any) bool {
	if v.config.datasetTypes {
		if typ, ok := v.filterTypes[key]; ok {
			return MatchesAs(typ, itemValue, filterValue)
		}
	}
	return Matches(itemValue, filterValue, key)
}

// filterRows keeps the rows that pass the search and every column filter.
func filterRows(rows []Row, columns []Column, state FilterState, match func(key string, itemValue, filterValue any) bool) []Row {
	q := normalizeQuery(state.search)
	keys := state.Keys()

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if q != "" && !matchesNormalized(row, q, columns) {
			continue
		}

		passes := true
		for _, key := range keys {
			if !match(key, row[key], state.columns[key]) {
				passes = false
				break
			}
		}
		if passes {
			out = append(out, row)
		}
	}

	return out
}

// SetData replaces the original dataset. Filter descriptors are regenerated,
// the active filter state is kept.
func (v *View) SetData(rows []Row) {
	v.update(func() []Event {
		v.original = slices.Clone(rows)
		v.regenerate()
		v.recompute()
		return []Event{{Kind: EventFiltersRegenerated}, {Kind: EventRowsChanged}}
	})
}

// SetColumns reconfigures the view with a new column set.
func (v *View) SetColumns(columns []Column) {
	v.update(func() []Event {
		v.columns = slices.Clone(columns)
		v.regenerate()
		v.recompute()
		return []Event{{Kind: EventFiltersRegenerated}, {Kind: EventRowsChanged}}
	})
}

func (v *View) SetSearch(term string) {
	v.update(func() []Event {
		v.state = v.state.WithSearch(term)
		v.recompute()
		return []Event{
			{Kind: EventSearchChanged, Value: term},
			{Kind: EventPageReset},
			{Kind: EventRowsChanged},
		}
	})
}

// SetColumnFilter sets the filter of one column. A nil or empty value
// removes the constraint. An empty key is ignored.
func (v *View) SetColumnFilter(key string, value any) {
	if key == "" {
		return
	}

	v.update(func() []Event {
		v.state = v.state.WithColumn(key, value)
		v.recompute()
		return []Event{
			filterChangedEvent(key, value),
			{Kind: EventPageReset},
			{Kind: EventRowsChanged},
		}
	})
}

// HandleFilterChange applies a filter control event. Nil events and events
// without a key are ignored.
func (v *View) HandleFilterChange(change *FilterChange) {
	if change == nil {
		return
	}
	v.SetColumnFilter(change.Key, change.Value)
}

// ApplyBatch replaces every column filter at once. One filter change event
// is emitted per non-empty key of filters, whether its value changed or not.
func (v *View) ApplyBatch(filters map[string]any) {
	v.update(func() []Event {
		previous := v.state
		v.state = v.state.WithColumns(filters)
		v.recompute()

		var events []Event
		for _, key := range sortedKeys(filters) {
			if key == "" {
				continue
			}
			events = append(events, filterChangedEvent(key, filters[key]))
		}
		if len(filters) > 0 || !previous.Equal(v.state) {
			events = append(events, Event{Kind: EventPageReset}, Event{Kind: EventRowsChanged})
		}
		return events
	})
}

// ClearAdvanced removes every column filter and keeps the search term.
func (v *View) ClearAdvanced() {
	v.update(func() []Event {
		v.state = v.state.WithoutColumns()
		v.recompute()

		events := v.clearedColumnEvents()
		return append(events,
			Event{Kind: EventFiltersCleared},
			Event{Kind: EventPageReset},
			Event{Kind: EventRowsChanged},
		)
	})
}

// ClearAll removes the search term and every column filter.
func (v *View) ClearAll() {
	v.update(func() []Event {
		v.state = NewFilterState()
		v.recompute()

		events := v.clearedColumnEvents()
		return append(events,
			Event{Kind: EventSearchChanged, Value: ""},
			Event{Kind: EventFiltersCleared},
			Event{Kind: EventPageReset},
			Event{Kind: EventRowsChanged},
		)
	})
}

// clearedColumnEvents returns a cleared event for every filterable column,
// active or not.
func (v *View) clearedColumnEvents() []Event {
	var events []Event
	for i := range v.columns {
		if !v.columns[i].IsFilterable() {
			continue
		}
		events = append(events, Event{Kind: EventFilterChanged, Key: v.columns[i].Key})
	}
	return events
}

func filterChangedEvent(key string, value any) Event {
	if isEmptyFilterValue(value) {
		value = nil
	}
	return Event{Kind: EventFilterChanged, Key: key, Value: value}
}

// DialogRequest returns what a batch filter dialog needs to open.
func (v *View) DialogRequest() *DialogRequest {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return &DialogRequest{
		Filters: slices.Clone(v.filters),
		State:   v.state,
	}
}

// ApplyDialog handles the outcome of a batch filter dialog. Cancelled and
// nil results change nothing.
func (v *View) ApplyDialog(result *DialogResult) {
	if result == nil {
		return
	}

	switch result.Action {
	case DialogApply:
		v.ApplyBatch(result.Filters)
	case DialogClear:
		v.ClearAdvanced()
	}
}

// Columns returns the configured columns.
func (v *View) Columns() []Column {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.columns)
}

// Column looks up a column by key.
func (v *View) Column(key string) (Column, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, c := range v.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Original returns the original dataset as last supplied.
func (v *View) Original() []Row {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.original)
}

// Visible returns the rows passing all active filters, in original order.
func (v *View) Visible() []Row {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.visible)
}

// Filters returns the filter descriptors of the current dataset.
func (v *View) Filters() []FilterDescriptor {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.filters)
}

func (v *View) State() FilterState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *View) ActiveFilterCount() int {
	return v.State().ActiveCount()
}

func (v *View) HasActiveFilters() bool {
	return v.ActiveFilterCount() > 0
}

func (v *View) HasAdvancedFilters() bool {
	return v.State().AdvancedCount() > 0
}

// DisplayValue formats the cell of row under key with that column's
// formatter. Unknown keys render the raw value.
func (v *View) DisplayValue(row Row, key string) string {
	col, ok := v.Column(key)
	if !ok {
		return stringify(row[key])
	}
	return DisplayValue(row, &col)
}
