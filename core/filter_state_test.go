package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portalkit/gridview/core"
)

func TestFilterState(t *testing.T) {
	r := require.New(t)

	empty := core.NewFilterState()
	r.Equal(0, empty.ActiveCount())
	r.False(empty.HasSearch())
	r.Empty(empty.Keys())

	withDept := empty.WithColumn("dept", "Engineering")
	r.Equal(1, withDept.ActiveCount())
	r.Empty(empty.Columns(), "updates never touch the receiver")

	v, ok := withDept.Column("dept")
	r.True(ok)
	r.Equal("Engineering", v)

	cleared := withDept.WithColumn("dept", nil)
	_, ok = cleared.Column("dept")
	r.False(ok, "cleared keys are removed, not stored as nil")

	cleared = withDept.WithColumn("dept", "")
	_, ok = cleared.Column("dept")
	r.False(ok)

	searching := withDept.WithSearch("  jo ")
	r.True(searching.HasSearch())
	r.Equal(2, searching.ActiveCount())
	r.Equal(1, searching.AdvancedCount())

	blank := withDept.WithSearch("   ")
	r.Equal(1, blank.ActiveCount(), "blank search is not counted")

	batch := searching.WithColumns(map[string]any{"b": 1, "a": false, "c": "", "d": nil, "": "x"})
	r.Equal([]string{"a", "b"}, batch.Keys())
	r.Equal("  jo ", batch.Search())
	r.Equal(3, batch.ActiveCount())

	none := batch.WithoutColumns()
	r.Empty(none.Keys())
	r.Equal("  jo ", none.Search())

	r.True(core.NewFilterState().Equal(core.NewFilterState().WithColumn("x", nil)))
	r.False(withDept.Equal(withDept.WithColumn("dept", "Sales")))
	r.True(withDept.Equal(empty.WithColumn("dept", "Engineering")))
}
