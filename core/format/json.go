package format

import (
	"encoding/json"
	"fmt"

	"github.com/portalkit/gridview/core"
)

var _ core.Exporter = (*JSON)(nil)

// JSON writes an array of objects holding the raw values of the configured
// columns. Formatters are not applied.
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) Export(columns []core.Column, rows []core.Row, _ *core.ExportOptions) ([]byte, error) {
	data := make([]map[string]any, 0, len(rows))

	for _, row := range rows {
		record := make(map[string]any, len(columns))
		for i := range columns {
			record[columns[i].Key] = row[columns[i].Key]
		}
		data = append(data, record)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
