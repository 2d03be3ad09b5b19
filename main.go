// gridview loads a configured list view, applies a search term and column
// filters to it and prints one page of the result.
//
// Usage:
//
//	gridview [flags]
//
// Flags:
//
//	-config string     Path to configuration file (default: ~/.config/gridview/config.toml)
//	-view string       Name of the view to open (default: first view)
//	-search string     Free text search term
//	-filter key=value  Column filter, repeatable
//	-sort string       Sort column, "key" or "key:desc"
//	-page int          Page to print (default: 1)
//	-page-size int     Rows per page (default: view setting)
//	-format string     Output format (table|csv|json)
//	-out string        Write output to this file instead of stdout
//	-filters           Print the filter descriptors of the view as JSON
//	-log string        Log file path
//	-verbose           Enable debug logging
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/portalkit/gridview/config"
	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/format"
	"github.com/portalkit/gridview/handler"
	"github.com/portalkit/gridview/logging"
)

// filterFlags collects repeated -filter key=value arguments.
type filterFlags map[string]any

func (f filterFlags) String() string {
	pairs := make([]string, 0, len(f))
	for k, v := range f {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(pairs, ",")
}

func (f filterFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	f[key] = value
	return nil
}

func main() {
	filters := filterFlags{}

	var (
		configPath   = flag.String("config", "", "Path to configuration file")
		viewName     = flag.String("view", "", "Name of the view to open")
		search       = flag.String("search", "", "Free text search term")
		sortBy       = flag.String("sort", "", `Sort column, "key" or "key:desc"`)
		page         = flag.Int("page", 1, "Page to print")
		pageSize     = flag.Int("page-size", 0, "Rows per page (0 = view setting)")
		outFormat    = flag.String("format", "table", "Output format ("+strings.Join(format.Names(), "|")+")")
		outFile      = flag.String("out", "", "Write output to this file instead of stdout")
		printFilters = flag.Bool("filters", false, "Print the filter descriptors of the view as JSON")
		logFile      = flag.String("log", "", "Log file path")
		verbose      = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Var(filters, "filter", "Column filter as key=value, repeatable")
	flag.Parse()

	if *configPath == "" {
		home, _ := os.UserHomeDir()
		*configPath = filepath.Join(home, ".config", "gridview", "config.toml")
	}

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg, *logFile, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	viewCfg, err := cfg.View(*viewName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := handler.New(logger, core.NewFormatterRegistry(nil), cfg.General.LoadTimeout.Duration,
		handler.WithStateFile(cfg.General.StateFile))
	defer h.Close()

	err = run(ctx, h, viewCfg, &options{
		search:       *search,
		filters:      filters,
		sort:         *sortBy,
		page:         *page,
		pageSize:     *pageSize,
		format:       *outFormat,
		out:          *outFile,
		printFilters: *printFilters,
	})
	if err != nil {
		logger.Errorf("run: %s", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config, path string, verbose bool) (*logging.Logger, error) {
	level := logging.ParseLevel(cfg.General.LogLevel)
	if verbose {
		level = logging.LevelDebug
	}

	if path == "" {
		path = cfg.General.LogFile
	}
	if path == "" {
		return logging.New(os.Stderr, max(level, logging.LevelWarn)), nil
	}
	return logging.NewFile(path, level)
}

type options struct {
	search       string
	filters      map[string]any
	sort         string
	page         int
	pageSize     int
	format       string
	out          string
	printFilters bool
}

func run(ctx context.Context, h *handler.Handler, viewCfg *config.View, opts *options) error {
	id, err := h.CreateView(ctx, viewCfg)
	if err != nil {
		return fmt.Errorf("h.CreateView: %w", err)
	}

	if opts.printFilters {
		filters, err := h.ViewFilters(id)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(filters, "", "  ")
		if err != nil {
			return fmt.Errorf("json.MarshalIndent: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if opts.search != "" {
		if err := h.ViewSetSearch(id, opts.search); err != nil {
			return err
		}
	}
	if len(opts.filters) > 0 {
		err := h.ViewApplyDialog(id, &core.DialogResult{
			Action:  core.DialogApply,
			Filters: opts.filters,
		})
		if err != nil {
			return err
		}
	}

	if opts.sort != "" {
		order, err := core.ParseSortOrder(opts.sort)
		if err != nil {
			return err
		}
		if err := h.ViewSetSort(id, order); err != nil {
			return err
		}
	}
	if opts.pageSize > 0 {
		if err := h.ViewSetPageSize(id, opts.pageSize); err != nil {
			return err
		}
	}
	if err := h.ViewSetPage(id, opts.page); err != nil {
		return err
	}

	if opts.out != "" {
		err = h.ViewStore(id, opts.format, "file", opts.out)
	} else {
		err = h.ViewStore(id, opts.format, "stdout")
	}
	if err != nil {
		return err
	}

	return printSummary(os.Stderr, h, id)
}

func printSummary(w io.Writer, h *handler.Handler, id core.ViewID) error {
	view, err := h.GetView(id)
	if err != nil {
		return err
	}
	page, err := h.ViewPage(id)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "page %d/%d, %d of %d rows, %d active filters\n",
		page.Number, page.Count, page.Total, len(view.Original()), view.ActiveFilterCount())
	return err
}
