package core

type (
	// ExportOptions provide various options for exporters
	ExportOptions struct {
		// ChunkStart is the index of the first exported row within the
		// visible set.
		ChunkStart int
	}

	// Exporter renders columns and rows to bytes
	Exporter interface {
		Export(columns []Column, rows []Row, opts *ExportOptions) ([]byte, error)
	}
)
