// Package format renders view rows for output.
package format

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/portalkit/gridview/core"
)

var ErrUnknownFormat = errors.New("unknown output format")

var exporters = map[string]func() core.Exporter{
	"table": func() core.Exporter { return NewTable() },
	"csv":   func() core.Exporter { return NewCSV() },
	"json":  func() core.Exporter { return NewJSON() },
}

// ByName returns the exporter registered under name.
func ByName(name string) (core.Exporter, error) {
	fn, ok := exporters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return fn(), nil
}

// Names lists the known output formats.
func Names() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func label(col *core.Column) string {
	if col.Label != "" {
		return col.Label
	}
	return col.Key
}
