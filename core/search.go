package core

import "strings"

// DisplayValue returns what a cell shows: the column formatter output when
// one is set, the stringified raw value otherwise. Missing values render
// as "".
func DisplayValue(row Row, col *Column) string {
	value := row[col.Key]
	if col.Formatter != nil {
		return col.Formatter(value, col.FormatOptions)
	}
	return stringify(value)
}

// MatchesSearch reports whether any filterable column of row displays the
// query, case-insensitively. A blank query matches every row.
func MatchesSearch(row Row, query string, columns []Column) bool {
	q := normalizeQuery(query)
	if q == "" {
		return true
	}
	return matchesNormalized(row, q, columns)
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func matchesNormalized(row Row, q string, columns []Column) bool {
	for i := range columns {
		col := &columns[i]
		if !col.IsFilterable() {
			continue
		}
		if strings.Contains(strings.ToLower(DisplayValue(row, col)), q) {
			return true
		}
	}
	return false
}
