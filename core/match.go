package core

import "strings"

// Matches reports whether a single item value satisfies a column filter
// value. The filter type is re-inferred from itemValue alone, so a column
// offered as a select list may still be matched as a number or date here.
// An absent item value never matches.
func Matches(itemValue, filterValue any, _ string) bool {
	if isNil(itemValue) {
		return false
	}
	return MatchesAs(InferType([]any{itemValue}), itemValue, filterValue)
}

// MatchesAs is Matches with an explicit filter type.
func MatchesAs(typ FilterType, itemValue, filterValue any) bool {
	if isNil(itemValue) {
		return false
	}

	switch typ {
	case FilterTypeNumber:
		a, ok := toNumber(itemValue)
		if !ok {
			return false
		}
		b, ok := toNumber(filterValue)
		return ok && a == b

	case FilterTypeSelect:
		return strictEqual(itemValue, filterValue)

	case FilterTypeBoolean:
		return toBool(itemValue) == toBool(filterValue)

	case FilterTypeDate:
		a, ok := toDate(itemValue)
		if !ok {
			return false
		}
		b, ok := toDate(filterValue)
		return ok && sameDate(a, b)

	default:
		return containsFold(stringify(itemValue), stringify(filterValue))
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
