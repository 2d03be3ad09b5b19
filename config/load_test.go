package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/portalkit/gridview/config"
	"github.com/portalkit/gridview/core"
)

const tomlConfig = `
[general]
log_level = "debug"
load_timeout = "5s"

[[views]]
name = "users"
page_size = 10
sort = "name"

[views.source]
type = "postgres"
url = 'postgres://{{ env "PGUSER" }}@localhost/portal'
query = "SELECT * FROM users"

[[views.columns]]
key = "name"
label = "Name"

[[views.columns]]
key = "salary"
label = "Salary"
format = "currency"
format_options = { symbol = "€", decimals = 0 }

[[views.columns]]
key = "notes"
filterable = false
sortable = false

[[views]]
name = "prices"
dataset_types = true

[views.source]
type = "csv"
url = "prices.csv"
`

const yamlConfig = `
general:
  log_file: /tmp/gridview.log
views:
  - name: customers
    page_size: 50
    source:
      type: json
      url: customers.json
    columns:
      - key: name
        label: Customer
      - key: discount
        format: percentage
        format_options:
          decimals: 1
`

func TestLoadTOML(t *testing.T) {
	r := require.New(t)

	cfg, err := config.LoadFromReader(strings.NewReader(tomlConfig), config.FormatTOML)
	r.NoError(err)

	r.Equal("debug", cfg.General.LogLevel)
	r.Equal(5*time.Second, cfg.General.LoadTimeout.Duration)
	r.Len(cfg.Views, 2)

	users, err := cfg.View("users")
	r.NoError(err)
	r.Equal(10, users.PageSize)
	r.Equal("SELECT * FROM users", users.SourceParams().Query)
	r.Equal("users", users.SourceParams().Name)

	columns, err := users.CoreColumns(core.NewFormatterRegistry(nil), nil)
	r.NoError(err)
	r.Len(columns, 3)
	r.Equal("€50,000", core.DisplayValue(core.Row{"salary": 50000}, &columns[1]))
	r.True(columns[0].IsFilterable())
	r.False(columns[2].IsFilterable())
	r.False(columns[2].IsSortable())

	prices, err := cfg.View("prices")
	r.NoError(err)
	r.True(prices.DatasetTypes)

	first, err := cfg.View("")
	r.NoError(err)
	r.Equal("users", first.Name)

	_, err = cfg.View("orders")
	r.ErrorIs(err, config.ErrViewMissing)
}

func TestLoadYAMLFile(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "views.yml")
	r.NoError(os.WriteFile(path, []byte(yamlConfig), 0o644))

	cfg, err := config.LoadFromFile(path)
	r.NoError(err)
	r.Equal("/tmp/gridview.log", cfg.General.LogFile)
	r.Equal("info", cfg.General.LogLevel, "defaults are kept")
	r.Equal(30*time.Second, cfg.General.LoadTimeout.Duration)

	view, err := cfg.View("customers")
	r.NoError(err)

	columns, err := view.CoreColumns(core.NewFormatterRegistry(nil), nil)
	r.NoError(err)
	r.Equal("Customer", columns[0].Label)
	r.Equal("12.5%", core.DisplayValue(core.Row{"discount": 0.125}, &columns[1]))
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		format config.Format
	}{
		{name: "no views", input: `[general]`, format: config.FormatTOML},
		{name: "empty yaml", input: ``, format: config.FormatYAML},
		{name: "missing name", input: "views:\n  - source: {type: csv}\n", format: config.FormatYAML},
		{name: "duplicate views", input: "views:\n  - {name: a, source: {type: csv}}\n  - {name: a, source: {type: csv}}\n", format: config.FormatYAML},
		{name: "missing source type", input: "views:\n  - name: a\n", format: config.FormatYAML},
		{name: "duplicate columns", input: "views:\n  - name: a\n    source: {type: csv}\n    columns: [{key: x}, {key: x}]\n", format: config.FormatYAML},
		{name: "bad duration", input: "[general]\nload_timeout = \"soon\"\n", format: config.FormatTOML},
		{name: "broken toml", input: "views = [", format: config.FormatTOML},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadFromReader(strings.NewReader(tc.input), tc.format)
			require.Error(t, err)
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	r := require.New(t)

	cfg, err := config.LoadFromReader(strings.NewReader("views:\n  - name: a\n    source: {type: csv}\n    columns: [{key: x, format: roman}]\n"), config.FormatYAML)
	r.NoError(err)

	_, err = cfg.Views[0].CoreColumns(core.NewFormatterRegistry(nil), nil)
	r.ErrorIs(err, core.ErrUnknownFormat)
}

func TestDefaultColumnsFromHeader(t *testing.T) {
	r := require.New(t)

	view := &config.View{Name: "raw", Source: config.Source{Type: "csv"}}
	columns, err := view.CoreColumns(core.NewFormatterRegistry(nil), core.Header{"id", "name"})
	r.NoError(err)
	r.Equal([]core.Column{{Key: "id", Label: "id"}, {Key: "name", Label: "name"}}, columns)
}

func TestEnvOverrides(t *testing.T) {
	r := require.New(t)

	t.Setenv("GRIDVIEW_LOG_LEVEL", "error")
	cfg, err := config.LoadFromReader(strings.NewReader(yamlConfig), config.FormatYAML)
	r.NoError(err)
	r.Equal("error", cfg.General.LogLevel)
}

func TestFormatFromPath(t *testing.T) {
	r := require.New(t)

	r.Equal(config.FormatYAML, config.FormatFromPath("views.YAML"))
	r.Equal(config.FormatYAML, config.FormatFromPath("views.yml"))
	r.Equal(config.FormatTOML, config.FormatFromPath("views.toml"))
	r.Equal(config.FormatTOML, config.FormatFromPath("views"))
}
