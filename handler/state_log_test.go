package handler_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/mock"
	"github.com/portalkit/gridview/handler"
	"github.com/portalkit/gridview/logging"
)

func TestHandlerStateFile(t *testing.T) {
	r := require.New(t)

	stateFile := filepath.Join(t.TempDir(), "state.json")
	cfg := staffView(registerMock(t, mock.NewAdapter(staffRows())))

	first := handler.New(logging.Discard(), nil, 0, handler.WithStateFile(stateFile))
	id, err := first.CreateView(context.Background(), cfg)
	r.NoError(err)

	r.NoError(first.ViewSetSearch(id, "jo"))
	r.NoError(first.ViewSetFilter(id, "dept", "Engineering"))
	r.NoError(first.ViewSetSort(id, core.SortOrder{Key: "salary", Desc: true}))
	first.Close()

	_, err = os.Stat(stateFile)
	r.NoError(err)

	second := handler.New(logging.Discard(), nil, 0, handler.WithStateFile(stateFile))
	defer second.Close()

	id, err = second.CreateView(context.Background(), cfg)
	r.NoError(err)

	view, err := second.GetView(id)
	r.NoError(err)
	r.Equal("jo", view.State().Search())
	value, ok := view.State().Column("dept")
	r.True(ok)
	r.Equal("Engineering", value)

	page, err := second.ViewPage(id)
	r.NoError(err)
	r.Len(page.Rows, 2)
	r.Equal("Alice Jones", page.Rows[0]["name"])
	r.Equal("John Smith", page.Rows[1]["name"])
}

func TestHandlerStateFileKeepsClosedViews(t *testing.T) {
	r := require.New(t)

	stateFile := filepath.Join(t.TempDir(), "state.json")
	r.NoError(os.WriteFile(stateFile, []byte(`{"archived": {"search": "old"}}`), 0o644))

	h := handler.New(logging.Discard(), nil, 0, handler.WithStateFile(stateFile))
	_, err := h.CreateView(context.Background(), staffView(registerMock(t, mock.NewAdapter(staffRows()))))
	r.NoError(err)
	h.Close()
	h.Close()

	b, err := os.ReadFile(stateFile)
	r.NoError(err)
	r.Contains(string(b), `"archived"`)
	r.Contains(string(b), `"staff"`)
}

func TestHandlerStateFileCorrupt(t *testing.T) {
	r := require.New(t)

	stateFile := filepath.Join(t.TempDir(), "state.json")
	r.NoError(os.WriteFile(stateFile, []byte(`{not json`), 0o644))

	logs := new(bytes.Buffer)
	h := handler.New(logging.New(logs, logging.LevelDebug), nil, 0, handler.WithStateFile(stateFile))
	defer h.Close()

	r.Contains(logs.String(), "[warn]: h.restoreStateLog")

	id, err := h.CreateView(context.Background(), staffView(registerMock(t, mock.NewAdapter(staffRows()))))
	r.NoError(err)
	view, err := h.GetView(id)
	r.NoError(err)
	r.Equal(0, view.ActiveFilterCount())
}
