package core

import "slices"

// GenerateFilters derives one filter descriptor per filterable column from
// the values currently present in rows. The result has no memory of earlier
// generations: the same columns over different data may infer different
// types.
func GenerateFilters(columns []Column, rows []Row) []FilterDescriptor {
	filters := make([]FilterDescriptor, 0, len(columns))

	for i := range columns {
		col := &columns[i]
		if !col.IsFilterable() {
			continue
		}

		values := distinctValues(rows, col.Key)

		label := col.Label
		if label == "" {
			label = col.Key
		}

		descriptor := FilterDescriptor{
			Key:   col.Key,
			Label: label,
			Type:  InferType(values),
		}
		if len(values) <= OptionThreshold {
			descriptor.Options = values
		}

		filters = append(filters, descriptor)
	}

	return filters
}

// distinctValues collects the sorted distinct non-nil values of key.
func distinctValues(rows []Row, key string) []any {
	seen := make(map[any]struct{})
	values := []any{}

	for _, row := range rows {
		v, ok := row[key]
		if !ok || isNil(v) {
			continue
		}
		k := valueKey(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, v)
	}

	slices.SortStableFunc(values, compareValues)
	return values
}
