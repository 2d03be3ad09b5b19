package core_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/portalkit/gridview/core"
)

func TestMatches(t *testing.T) {
	day := time.Date(2024, time.May, 4, 18, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		item     any
		filter   any
		expected bool
	}{
		{name: "nil item", item: nil, filter: "x", expected: false},
		{name: "nil item nil filter", item: nil, filter: nil, expected: false},
		{name: "number equal", item: 42, filter: 42.0, expected: true},
		{name: "number from string", item: 50000, filter: "50000", expected: true},
		{name: "number differs", item: 42, filter: 43, expected: false},
		{name: "number vs text", item: 42, filter: "abc", expected: false},
		{name: "select strict", item: "Engineering", filter: "Engineering", expected: true},
		{name: "select no substring", item: "Engineering", filter: "Eng", expected: false},
		{name: "select is case sensitive", item: "Engineering", filter: "engineering", expected: false},
		{name: "bool equal", item: true, filter: true, expected: true},
		{name: "bool from string", item: false, filter: "false", expected: true},
		{name: "bool truthiness", item: true, filter: 1, expected: true},
		{name: "bool falsy", item: true, filter: 0, expected: false},
		{name: "bool nil filter", item: false, filter: nil, expected: true},
		{name: "date same day", item: day, filter: "2024-05-04", expected: true},
		{name: "date other day", item: day, filter: "2024-05-05", expected: false},
		{name: "date unparsable filter", item: day, filter: "tomorrow", expected: false},
		{name: "date string item", item: "2024-05-04T08:00:00Z", filter: day, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, core.Matches(tc.item, tc.filter, "key"))
		})
	}
}

func TestMatchesAs(t *testing.T) {
	assert.True(t, core.MatchesAs(core.FilterTypeText, "Engineering", "gin"))
	assert.True(t, core.MatchesAs(core.FilterTypeText, "Engineering", "ENG"))
	assert.True(t, core.MatchesAs(core.FilterTypeText, 12345, 234))
	assert.False(t, core.MatchesAs(core.FilterTypeText, "Sales", "eng"))
	assert.False(t, core.MatchesAs(core.FilterTypeText, nil, ""))

	// unknown types fall back to text
	assert.True(t, core.MatchesAs(core.FilterType(99), "Engineering", "neer"))

	// select never coerces
	assert.False(t, core.MatchesAs(core.FilterTypeSelect, 1, "1"))
	assert.False(t, core.MatchesAs(core.FilterTypeSelect, []string{"a"}, []string{"a"}))

	// select compares decimals and times by value
	assert.True(t, core.MatchesAs(core.FilterTypeSelect, decimal.RequireFromString("19.90"), decimal.RequireFromString("19.9")))
	assert.False(t, core.MatchesAs(core.FilterTypeSelect, decimal.RequireFromString("19.90"), decimal.RequireFromString("19.91")))
	noon := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	assert.True(t, core.MatchesAs(core.FilterTypeSelect, noon, noon.In(time.FixedZone("CET", 3600))))
	assert.False(t, core.MatchesAs(core.FilterTypeSelect, noon, noon.Add(time.Second)))
}
