package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/portalkit/gridview/core"
)

// viewState is what survives a restart of a view: the user's filters and
// sort order, keyed by view name in the state file.
type viewState struct {
	Search  string         `json:"search,omitempty"`
	Filters map[string]any `json:"filters,omitempty"`
	Sort    string         `json:"sort,omitempty"`
}

func (h *Handler) storeStateLog() error {
	if h.stateFile == "" {
		return nil
	}

	h.mu.Lock()
	for _, e := range h.lookupView {
		state := e.view.State()
		h.savedStates[e.name] = &viewState{
			Search:  state.Search(),
			Filters: state.Columns(),
			Sort:    e.pager.Sort().String(),
		}
	}
	b, err := json.MarshalIndent(h.savedStates, "", "  ")
	h.mu.Unlock()
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	file, err := os.Create(h.stateFile)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	_, err = file.Write(b)
	if err != nil {
		return fmt.Errorf("file.Write: %w", err)
	}

	return nil
}

func (h *Handler) restoreStateLog() error {
	file, err := os.Open(h.stateFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	var store map[string]*viewState

	err = json.NewDecoder(file).Decode(&store)
	if err != nil {
		return fmt.Errorf("decoder.Decode: %w", err)
	}

	for name, st := range store {
		if st != nil {
			h.savedStates[name] = st
		}
	}

	return nil
}

// applySavedState puts the stored filters and sort order of a view back.
func (h *Handler) applySavedState(e *viewEntry) {
	h.mu.RLock()
	st, ok := h.savedStates[e.name]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if st.Search != "" {
		e.view.SetSearch(st.Search)
	}
	if len(st.Filters) > 0 {
		e.view.ApplyBatch(st.Filters)
	}
	if st.Sort == "" {
		return
	}

	order, err := core.ParseSortOrder(st.Sort)
	if err == nil {
		err = e.pager.SetSort(order)
	}
	if err != nil {
		h.log.Warnf("view %q: saved sort %q: %s", e.name, st.Sort, err)
	}
}
