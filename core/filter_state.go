package core

import (
	"maps"
	"reflect"
	"slices"
	"strings"
)

// FilterState is the user driven search term plus the active column filters.
// It is a value: every update returns a new state and leaves the receiver
// untouched. A column key is present only while its filter is active.
type FilterState struct {
	search  string
	columns map[string]any
}

func NewFilterState() FilterState {
	return FilterState{columns: map[string]any{}}
}

// isEmptyFilterValue reports whether value means "no constraint".
func isEmptyFilterValue(value any) bool {
	if isNil(value) {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func (s FilterState) Search() string {
	return s.search
}

// HasSearch reports whether the search term constrains anything.
func (s FilterState) HasSearch() bool {
	return strings.TrimSpace(s.search) != ""
}

// Column returns the active filter value for key.
func (s FilterState) Column(key string) (any, bool) {
	v, ok := s.columns[key]
	return v, ok
}

// Columns returns a copy of the active column filters.
func (s FilterState) Columns() map[string]any {
	return maps.Clone(s.columnsOrEmpty())
}

// Keys returns the keys of the active column filters in sorted order.
func (s FilterState) Keys() []string {
	return sortedKeys(s.columns)
}

// sortedKeys returns the keys of m in sorted order, or nil when m is empty.
func sortedKeys(m map[string]any) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s FilterState) columnsOrEmpty() map[string]any {
	if s.columns == nil {
		return map[string]any{}
	}
	return s.columns
}

func (s FilterState) WithSearch(term string) FilterState {
	return FilterState{search: term, columns: s.columns}
}

// WithColumn sets the filter for key. An empty value removes it.
func (s FilterState) WithColumn(key string, value any) FilterState {
	columns := maps.Clone(s.columnsOrEmpty())
	if isEmptyFilterValue(value) {
		delete(columns, key)
	} else {
		columns[key] = value
	}
	return FilterState{search: s.search, columns: columns}
}

// WithColumns replaces all column filters. Empty values are dropped.
func (s FilterState) WithColumns(filters map[string]any) FilterState {
	columns := make(map[string]any, len(filters))
	for k, v := range filters {
		if k == "" || isEmptyFilterValue(v) {
			continue
		}
		columns[k] = v
	}
	return FilterState{search: s.search, columns: columns}
}

func (s FilterState) WithoutColumns() FilterState {
	return FilterState{search: s.search, columns: map[string]any{}}
}

// ActiveCount counts the search term (when not blank) and every column
// filter holding a non-empty value.
func (s FilterState) ActiveCount() int {
	count := 0
	if s.HasSearch() {
		count++
	}
	for _, v := range s.columns {
		if !isEmptyFilterValue(v) {
			count++
		}
	}
	return count
}

// AdvancedCount counts the active column filters only.
func (s FilterState) AdvancedCount() int {
	count := s.ActiveCount()
	if s.HasSearch() {
		count--
	}
	return count
}

// Equal reports whether both states constrain rows identically.
func (s FilterState) Equal(other FilterState) bool {
	if s.search != other.search || len(s.columns) != len(other.columns) {
		return false
	}
	for k, v := range s.columns {
		ov, ok := other.columns[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}
