package core_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalkit/gridview/core"
)

func TestFormatAsCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		opts     core.FormatOptions
		expected string
	}{
		{name: "integer", value: 50000, expected: "$50,000.00"},
		{name: "float", value: 1234.5, expected: "$1,234.50"},
		{name: "rounding", value: 0.005, expected: "$0.01"},
		{name: "negative", value: -1234.5, expected: "-$1,234.50"},
		{name: "numeric string", value: "42", expected: "$42.00"},
		{name: "decimal", value: decimal.RequireFromString("1000000.125"), expected: "$1,000,000.13"},
		{name: "custom symbol", value: 10, opts: core.FormatOptions{"symbol": "€"}, expected: "€10.00"},
		{name: "no decimals", value: 10.6, opts: core.FormatOptions{"decimals": 0}, expected: "$11"},
		{name: "not a number", value: "n/a", expected: "n/a"},
		{name: "nil", value: nil, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, core.FormatAsCurrency(tc.value, tc.opts))
		})
	}
}

func TestFormatAsPercentage(t *testing.T) {
	assert.Equal(t, "25%", core.FormatAsPercentage(0.25, nil))
	assert.Equal(t, "12.5%", core.FormatAsPercentage(0.125, core.FormatOptions{"decimals": 1}))
	assert.Equal(t, "-5%", core.FormatAsPercentage(-0.05, nil))
	assert.Equal(t, "1,200%", core.FormatAsPercentage(12, nil))
	assert.Equal(t, "abc", core.FormatAsPercentage("abc", nil))
}

func TestFormatAsNumber(t *testing.T) {
	assert.Equal(t, "1,000", core.FormatAsNumber(1000, nil))
	assert.Equal(t, "1,234.568", core.FormatAsNumber(1234.5678, nil))
	assert.Equal(t, "0.5", core.FormatAsNumber(0.5, nil))
	assert.Equal(t, "1,234.50", core.FormatAsNumber(1234.5, core.FormatOptions{"decimals": 2}))
	assert.Equal(t, "-12,345", core.FormatAsNumber(int64(-12345), nil))
	assert.Equal(t, "", core.FormatAsNumber(nil, nil))
}

func TestFormatAsText(t *testing.T) {
	assert.Equal(t, "hello", core.FormatAsText("hello", nil))
	assert.Equal(t, "42", core.FormatAsText(42, nil))
	assert.Equal(t, "true", core.FormatAsText(true, nil))
	assert.Equal(t, "", core.FormatAsText(nil, nil))
}

func TestFormatterRegistry(t *testing.T) {
	r := require.New(t)

	upper := func(value any, _ core.FormatOptions) string { return "X" }
	registry := core.NewFormatterRegistry(map[core.FormatType]core.Formatter{
		core.FormatCurrency: upper,
	})

	f, err := registry.Get(core.FormatCurrency)
	r.NoError(err)
	r.Equal("X", f(10, nil))

	f, err = registry.Get(core.FormatPercentage)
	r.NoError(err)
	r.Equal("50%", f(0.5, nil))

	_, err = registry.Get("roman")
	r.ErrorIs(err, core.ErrUnknownFormat)

	// nil overrides are ignored
	registry.Override(core.FormatText, nil)
	f, err = registry.Get(core.FormatText)
	r.NoError(err)
	r.Equal("a", f("a", nil))

	registry.Override("roman", upper)
	r.Equal([]core.FormatType{"currency", "number", "percentage", "roman", "text"}, registry.Types())
}
