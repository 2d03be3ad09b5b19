// Package config loads view definitions from TOML or YAML files.
package config

import (
	"errors"
	"fmt"

	"github.com/portalkit/gridview/core"
)

var (
	ErrNoViews     = errors.New("config defines no views")
	ErrViewMissing = errors.New("view not found in config")
)

type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Views   []View        `toml:"views" yaml:"views"`
}

type GeneralConfig struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
	// StateFile keeps view filters between runs when set.
	StateFile string `toml:"state_file" yaml:"state_file"`
	// LoadTimeout bounds a single source load.
	LoadTimeout Duration `toml:"load_timeout" yaml:"load_timeout"`
}

// View is a single list view: where its rows come from and how its
// columns behave.
type View struct {
	Name         string   `toml:"name" yaml:"name"`
	PageSize     int      `toml:"page_size" yaml:"page_size"`
	Sort         string   `toml:"sort" yaml:"sort"`
	DatasetTypes bool     `toml:"dataset_types" yaml:"dataset_types"`
	Source       Source   `toml:"source" yaml:"source"`
	Columns      []Column `toml:"columns" yaml:"columns"`
}

type Source struct {
	ID    string `toml:"id" yaml:"id"`
	Type  string `toml:"type" yaml:"type"`
	URL   string `toml:"url" yaml:"url"`
	Query string `toml:"query" yaml:"query"`
}

type Column struct {
	Key        string `toml:"key" yaml:"key"`
	Label      string `toml:"label" yaml:"label"`
	Sortable   *bool  `toml:"sortable" yaml:"sortable"`
	Filterable *bool  `toml:"filterable" yaml:"filterable"`
	// Format names a registered formatter, empty means raw values.
	Format        string         `toml:"format" yaml:"format"`
	FormatOptions map[string]any `toml:"format_options" yaml:"format_options"`
}

// View returns the view called name, or the first view when name is empty.
func (c *Config) View(name string) (*View, error) {
	if len(c.Views) < 1 {
		return nil, ErrNoViews
	}
	if name == "" {
		return &c.Views[0], nil
	}

	for i := range c.Views {
		if c.Views[i].Name == name {
			return &c.Views[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrViewMissing, name)
}

// Validate reports the first structural problem of the config.
func (c *Config) Validate() error {
	if len(c.Views) < 1 {
		return ErrNoViews
	}

	names := make(map[string]struct{}, len(c.Views))
	for i := range c.Views {
		v := &c.Views[i]
		if v.Name == "" {
			return fmt.Errorf("view %d: missing name", i)
		}
		if _, dup := names[v.Name]; dup {
			return fmt.Errorf("view %q: defined more than once", v.Name)
		}
		names[v.Name] = struct{}{}

		if err := v.Validate(); err != nil {
			return fmt.Errorf("view %q: %w", v.Name, err)
		}
	}
	return nil
}

func (v *View) Validate() error {
	if v.Source.Type == "" {
		return errors.New("source: missing type")
	}
	if v.PageSize < 0 {
		return fmt.Errorf("negative page size %d", v.PageSize)
	}

	keys := make(map[string]struct{}, len(v.Columns))
	for i, c := range v.Columns {
		if c.Key == "" {
			return fmt.Errorf("column %d: missing key", i)
		}
		if _, dup := keys[c.Key]; dup {
			return fmt.Errorf("column %q: defined more than once", c.Key)
		}
		keys[c.Key] = struct{}{}
	}
	return nil
}

// SourceParams converts the source section. Template expressions are left
// for the source to expand.
func (v *View) SourceParams() *core.SourceParams {
	return &core.SourceParams{
		ID:    core.SourceID(v.Source.ID),
		Name:  v.Name,
		Type:  v.Source.Type,
		URL:   v.Source.URL,
		Query: v.Source.Query,
	}
}

// CoreColumns resolves the configured columns against registry. When no
// columns are configured, one plain column per header field is returned.
func (v *View) CoreColumns(registry *core.FormatterRegistry, header core.Header) ([]core.Column, error) {
	if len(v.Columns) < 1 {
		columns := make([]core.Column, len(header))
		for i, key := range header {
			columns[i] = core.Column{Key: key, Label: key}
		}
		return columns, nil
	}

	columns := make([]core.Column, 0, len(v.Columns))
	for _, c := range v.Columns {
		col := core.Column{
			Key:           c.Key,
			Label:         c.Label,
			Sortable:      c.Sortable,
			Filterable:    c.Filterable,
			FormatOptions: core.FormatOptions(c.FormatOptions),
		}

		if c.Format != "" {
			f, err := registry.Get(core.FormatType(c.Format))
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", c.Key, err)
			}
			col.Formatter = f
		}

		columns = append(columns, col)
	}
	return columns, nil
}
