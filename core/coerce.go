package core

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order when a string is parsed as a date.
// ISO forms come first, US month-first forms win over day-first ones.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"02 Jan 2006 15:04",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// isNumericType reports whether v holds a Go numeric type.
func isNumericType(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		json.Number, decimal.Decimal:
		return true
	}
	return false
}

// toNumber coerces v to a finite float64.
// Bools, times and empty strings do not coerce.
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case decimal.Decimal:
		f, _ = n.Float64()
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		return parseNumber(n)
	case []byte:
		return parseNumber(string(n))
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toBool normalizes v to a bool. Strings "true" and "false" are taken by
// value, everything else by truthiness.
func toBool(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true
		case "false":
			return false
		}
		return b != ""
	}

	if f, ok := toNumber(v); ok {
		return f != 0
	}
	if isNumericType(v) {
		// NaN
		return false
	}
	return !isNil(v)
}

// toDate converts times and date strings to time.Time.
func toDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return parseDate(t)
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// stringify renders a raw value the way it is shown when no formatter is set.
func stringify(v any) string {
	if isNil(v) {
		return ""
	}

	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case time.Time:
		return s.Format(time.RFC3339)
	case fmt.Stringer:
		return s.String()
	case error:
		return s.Error()
	}
	return fmt.Sprint(v)
}

// strictEqual compares without coercion: same dynamic type and equal value.
// Values of incomparable types never match.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch av := a.(type) {
	case decimal.Decimal:
		return av.Equal(b.(decimal.Decimal))
	case time.Time:
		return av.Equal(b.(time.Time))
	}
	if !reflect.ValueOf(a).Comparable() {
		return false
	}
	return a == b
}

type (
	// incomparableKey stands in for values that cannot be map keys.
	incomparableKey string
	// decimalKey and timeKey hold the canonical form of values whose
	// struct holds pointers.
	decimalKey string
	timeKey    int64
)

// valueKey returns a key under which v can be de-duplicated.
func valueKey(v any) any {
	switch t := v.(type) {
	case decimal.Decimal:
		return decimalKey(t.String())
	case time.Time:
		return timeKey(t.UnixNano())
	}
	if reflect.ValueOf(v).Comparable() {
		return v
	}
	return incomparableKey(fmt.Sprintf("%T|%v", v, v))
}

// type ranks for ordering mixed values
const (
	rankBool = iota
	rankNumber
	rankTime
	rankNumericString
	rankString
	rankOther
)

func valueRank(v any) int {
	switch s := v.(type) {
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	case string:
		if _, ok := parseNumber(s); ok {
			return rankNumericString
		}
		return rankString
	}
	if isNumericType(v) {
		return rankNumber
	}
	return rankOther
}

// compareValues orders two non-nil values: by type rank first, then
// naturally within the rank.
func compareValues(a, b any) int {
	ra, rb := valueRank(a), valueRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case rankNumber, rankNumericString:
		af, _ := toNumber(a)
		bf, _ := toNumber(b)
		return cmp.Compare(af, bf)
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	case rankString:
		return strings.Compare(a.(string), b.(string))
	}
	return strings.Compare(stringify(a), stringify(b))
}
