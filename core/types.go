package core

type (
	// Row is a single record of a dataset. The engine never assumes a schema
	// beyond the columns it is given.
	Row map[string]any

	// Header lists the field names of a dataset in source order.
	Header []string

	// Dataset is a fully drained source result.
	Dataset struct {
		Header Header
		Rows   []Row
	}
)

type (
	// FormatOptions are passed through to a column formatter untouched.
	FormatOptions map[string]any

	// Formatter converts a raw cell value to its display string.
	Formatter func(value any, opts FormatOptions) string
)

// Column describes one displayable, filterable and sortable field of a row.
type Column struct {
	Key   string
	Label string
	// nil means true
	Sortable *bool
	// nil means true
	Filterable *bool

	Formatter     Formatter
	FormatOptions FormatOptions
}

func (c *Column) IsSortable() bool {
	return c.Sortable == nil || *c.Sortable
}

func (c *Column) IsFilterable() bool {
	return c.Filterable == nil || *c.Filterable
}

// Bool returns a pointer to b. Handy for Column.Sortable and Column.Filterable.
func Bool(b bool) *bool {
	return &b
}

type FilterType int

const (
	FilterTypeText FilterType = iota
	FilterTypeNumber
	FilterTypeSelect
	FilterTypeDate
	FilterTypeBoolean
)

func FilterTypeFromString(s string) FilterType {
	switch s {
	case FilterTypeNumber.String():
		return FilterTypeNumber
	case FilterTypeSelect.String():
		return FilterTypeSelect
	case FilterTypeDate.String():
		return FilterTypeDate
	case FilterTypeBoolean.String():
		return FilterTypeBoolean
	default:
		return FilterTypeText
	}
}

func (t FilterType) String() string {
	switch t {
	case FilterTypeText:
		return "text"
	case FilterTypeNumber:
		return "number"
	case FilterTypeSelect:
		return "select"
	case FilterTypeDate:
		return "date"
	case FilterTypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

func (t FilterType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// FilterDescriptor is the derived filter schema of a single column.
type FilterDescriptor struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Type  FilterType `json:"type"`
	// Options holds the sorted distinct values of the column, only when
	// there are few enough of them to offer as a list.
	Options []any `json:"options,omitempty"`
}
