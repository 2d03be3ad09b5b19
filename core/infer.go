package core

import "time"

const (
	// SelectThreshold is the largest distinct value count that still
	// infers a select filter.
	SelectThreshold = 20
	// OptionThreshold is the largest distinct value count for which a
	// filter descriptor carries its option list.
	OptionThreshold = 20
)

// InferType decides the filter type of a column from its distinct non-null
// values. The checks run in order and the first one that holds wins, so
// small numeric or date sets are not swallowed by select.
func InferType(values []any) FilterType {
	if len(values) == 0 {
		return FilterTypeText
	}

	switch {
	case isBooleanSet(values):
		return FilterTypeBoolean
	case isNumberSet(values):
		return FilterTypeNumber
	case isDateSet(values):
		return FilterTypeDate
	case len(values) <= SelectThreshold:
		return FilterTypeSelect
	default:
		return FilterTypeText
	}
}

func isBooleanSet(values []any) bool {
	allBools := true
	for _, v := range values {
		if _, ok := v.(bool); !ok {
			allBools = false
			break
		}
	}
	if allBools {
		return true
	}

	if len(values) > 2 {
		return false
	}
	for _, v := range values {
		s := stringify(v)
		if s != "true" && s != "false" {
			return false
		}
	}
	return true
}

func isNumberSet(values []any) bool {
	if isNumericType(values[0]) {
		return true
	}
	for _, v := range values {
		if _, ok := toNumber(v); !ok {
			return false
		}
	}
	return true
}

func isDateSet(values []any) bool {
	if _, ok := values[0].(time.Time); ok {
		return true
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return false
		}
		if _, ok := parseDate(s); !ok {
			return false
		}
	}
	return true
}
