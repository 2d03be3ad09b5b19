package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/portalkit/gridview/core"
)

var _ core.Exporter = (*CSV)(nil)

// CSV writes column labels followed by the display value of every cell.
type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) Export(columns []core.Column, rows []core.Row, _ *core.ExportOptions) ([]byte, error) {
	header := make([]string, len(columns))
	for i := range columns {
		header[i] = label(&columns[i])
	}

	data := [][]string{header}
	for _, row := range rows {
		record := make([]string, len(columns))
		for i := range columns {
			record[i] = core.DisplayValue(row, &columns[i])
		}
		data = append(data, record)
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
