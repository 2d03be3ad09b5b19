package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portalkit/gridview/core"
)

func TestMatchesSearch(t *testing.T) {
	columns := []core.Column{
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "secret", Filterable: core.Bool(false)},
		{Key: "salary", Formatter: core.FormatAsCurrency},
	}

	john := core.Row{"name": "John Smith", "email": "john@example.com", "secret": "hidden", "salary": 50000}
	jane := core.Row{"name": "Jane Doe", "email": "jane@example.com", "secret": "john", "salary": 72000.5}

	assert.True(t, core.MatchesSearch(john, "john", columns))
	assert.True(t, core.MatchesSearch(john, "  JOHN ", columns))
	assert.False(t, core.MatchesSearch(jane, "john", columns), "non-filterable columns are not searched")

	assert.True(t, core.MatchesSearch(john, "$50,000", columns), "formatted values are searched")
	assert.False(t, core.MatchesSearch(john, "50000", columns), "raw values of formatted columns are not searched")
	assert.True(t, core.MatchesSearch(jane, "72,000.50", columns))

	assert.True(t, core.MatchesSearch(john, "", columns))
	assert.True(t, core.MatchesSearch(core.Row{}, "   ", columns))
	assert.False(t, core.MatchesSearch(core.Row{}, "x", columns))
}

func TestDisplayValue(t *testing.T) {
	row := core.Row{"n": 1500, "s": "text", "missing": nil}

	assert.Equal(t, "1500", core.DisplayValue(row, &core.Column{Key: "n"}))
	assert.Equal(t, "1,500", core.DisplayValue(row, &core.Column{Key: "n", Formatter: core.FormatAsNumber}))
	assert.Equal(t, "text", core.DisplayValue(row, &core.Column{Key: "s"}))
	assert.Equal(t, "", core.DisplayValue(row, &core.Column{Key: "missing"}))
	assert.Equal(t, "", core.DisplayValue(row, &core.Column{Key: "absent"}))
}
