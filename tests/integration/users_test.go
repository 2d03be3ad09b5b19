package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portalkit/gridview/core"
	th "github.com/portalkit/gridview/tests/testhelpers"
)

// assertUsersView runs the checks every seeded users table has to pass,
// whatever database it lives in.
func assertUsersView(t *testing.T, ctx context.Context, src *core.Source) {
	t.Helper()

	view := th.LoadView(t, ctx, src, th.UserColumns())
	assert.Len(t, view.Original(), 5)

	want := map[string]core.FilterType{
		"name":   core.FilterTypeSelect,
		"dept":   core.FilterTypeSelect,
		"age":    core.FilterTypeNumber,
		"active": core.FilterTypeBoolean,
		"salary": core.FilterTypeNumber,
		"joined": core.FilterTypeDate,
	}
	assert.Equal(t, want, th.FilterTypes(view.Filters()))

	view.SetSearch("$38,000.50")
	assert.Equal(t, []any{"Johnny Bravo"}, th.Names(view.Visible()))

	view.SetSearch("")
	view.ApplyBatch(map[string]any{"dept": "Sales", "age": "30"})
	assert.Equal(t, []any{"Johnny Bravo"}, th.Names(view.Visible()))

	view.ApplyBatch(map[string]any{"active": "false", "joined": "2022-11-05"})
	assert.Equal(t, []any{"Alice Jones"}, th.Names(view.Visible()))

	view.ClearAll()
	assert.Len(t, view.Visible(), 5)
}
