package adapters

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/builders"
)

var _ core.Driver = (*sqlDriver)(nil)

// sqlDriver serves every database/sql backed adapter.
type sqlDriver struct {
	c *builders.Client
}

func (d *sqlDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	return d.c.Query(ctx, query)
}

func (d *sqlDriver) Close() {
	d.c.Close()
}

// jsonProcessor decodes json columns so nested values stay structured.
func jsonProcessor(a any) any {
	var b []byte
	switch v := a.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return a
	}

	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return string(b)
	}
	return decoded
}

// decimalProcessor keeps exact numeric columns exact.
func decimalProcessor(a any) any {
	var s string
	switch v := a.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return a
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return d
}

// withDecimalTypes registers decimalProcessor for every listed type name.
func withDecimalTypes(types ...string) []builders.ClientOption {
	opts := make([]builders.ClientOption, 0, len(types))
	for _, typ := range types {
		opts = append(opts, builders.WithCustomTypeProcessor(typ, decimalProcessor))
	}
	return opts
}
