package core

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatType names a built-in formatter.
type FormatType string

const (
	FormatText       FormatType = "text"
	FormatCurrency   FormatType = "currency"
	FormatPercentage FormatType = "percentage"
	FormatNumber     FormatType = "number"
)

var ErrUnknownFormat = errors.New("no formatter registered for format type")

// digit grouping only, the decimal separator is always "."
var groupingPrinter = message.NewPrinter(language.English)

// FormatterRegistry maps format types to formatters. Entries can be
// overridden one by one; Override is not safe for concurrent use with Get.
type FormatterRegistry struct {
	formatters map[FormatType]Formatter
}

// NewFormatterRegistry returns a registry with the built-in formatters,
// replaced by any of the provided overrides.
func NewFormatterRegistry(overrides map[FormatType]Formatter) *FormatterRegistry {
	r := &FormatterRegistry{
		formatters: map[FormatType]Formatter{
			FormatText:       FormatAsText,
			FormatCurrency:   FormatAsCurrency,
			FormatPercentage: FormatAsPercentage,
			FormatNumber:     FormatAsNumber,
		},
	}

	for typ, f := range overrides {
		r.Override(typ, f)
	}

	return r
}

func (r *FormatterRegistry) Override(typ FormatType, f Formatter) {
	if f == nil {
		return
	}
	r.formatters[typ] = f
}

func (r *FormatterRegistry) Get(typ FormatType) (Formatter, error) {
	f, ok := r.formatters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, typ)
	}
	return f, nil
}

// Types returns the registered format types in sorted order.
func (r *FormatterRegistry) Types() []FormatType {
	types := make([]FormatType, 0, len(r.formatters))
	for typ := range r.formatters {
		types = append(types, typ)
	}
	slices.Sort(types)
	return types
}

// FormatAsText is the identity formatter.
func FormatAsText(value any, _ FormatOptions) string {
	return stringify(value)
}

// FormatAsCurrency renders numbers as "$50,000.00".
//
// options: "symbol" (default "$"), "decimals" (default 2)
func FormatAsCurrency(value any, opts FormatOptions) string {
	d, ok := toDecimal(value)
	if !ok {
		return stringify(value)
	}

	places := opts.Int("decimals", 2)
	symbol := opts.Text("symbol", "$")

	rounded := d.Round(places)
	body := groupFixed(rounded.Abs(), places, false)
	if rounded.IsNegative() {
		return "-" + symbol + body
	}
	return symbol + body
}

// FormatAsPercentage renders fractions as percentages: 0.25 becomes "25%".
//
// options: "decimals" (default 0)
func FormatAsPercentage(value any, opts FormatOptions) string {
	d, ok := toDecimal(value)
	if !ok {
		return stringify(value)
	}

	places := opts.Int("decimals", 0)
	rounded := d.Mul(decimal.NewFromInt(100)).Round(places)
	body := groupFixed(rounded.Abs(), places, false)
	if rounded.IsNegative() {
		return "-" + body + "%"
	}
	return body + "%"
}

// FormatAsNumber groups thousands. Without a "decimals" option the value
// keeps at most 3 fraction digits and trailing zeros are dropped.
func FormatAsNumber(value any, opts FormatOptions) string {
	d, ok := toDecimal(value)
	if !ok {
		return stringify(value)
	}

	places := opts.Int("decimals", -1)
	trim := false
	if places < 0 {
		places = 3
		trim = true
	}

	rounded := d.Round(places)
	body := groupFixed(rounded.Abs(), places, trim)
	if rounded.IsNegative() {
		return "-" + body
	}
	return body
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err == nil {
			return d, true
		}
	}

	f, ok := toNumber(value)
	if !ok {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

// groupFixed prints a non-negative decimal with the given number of
// fraction digits and grouped integer digits.
func groupFixed(d decimal.Decimal, places int32, trimZeros bool) string {
	fixed := d.StringFixed(places)
	intPart, frac, _ := strings.Cut(fixed, ".")

	grouped := intPart
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		grouped = groupingPrinter.Sprintf("%d", n)
	}

	if trimZeros {
		frac = strings.TrimRight(frac, "0")
	}
	if frac == "" {
		return grouped
	}
	return grouped + "." + frac
}

// Int reads an integer option, accepting the number types produced by the
// config decoders.
func (o FormatOptions) Int(key string, fallback int32) int32 {
	switch v := o[key].(type) {
	case int:
		return int32(v)
	case int32:
		return v
	case int64:
		return int32(v)
	case float64:
		return int32(v)
	}
	return fallback
}

func (o FormatOptions) Text(key string, fallback string) string {
	if s, ok := o[key].(string); ok {
		return s
	}
	return fallback
}
