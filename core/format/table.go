package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/portalkit/gridview/core"
)

var _ core.Exporter = (*Table)(nil)

// Table renders display values as a borderless text table with a leading
// row number column.
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (tf *Table) Export(columns []core.Column, rows []core.Row, opts *core.ExportOptions) ([]byte, error) {
	if opts == nil {
		opts = &core.ExportOptions{}
	}

	tableHeaders := table.Row{""}
	for i := range columns {
		tableHeaders = append(tableHeaders, label(&columns[i]))
	}
	index := opts.ChunkStart

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		indexed := table.Row{index + 1}
		for i := range columns {
			indexed = append(indexed, core.DisplayValue(row, &columns[i]))
		}
		tableRows = append(tableRows, indexed)
		index++
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeaders)
	t.AppendRows(tableRows)
	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()

	return []byte(t.Render()), nil
}
