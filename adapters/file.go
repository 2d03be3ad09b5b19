package adapters

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/builders"
)

// Register client
func init() {
	_ = register(&File{decode: decodeJSONRecords}, "json")
	_ = register(&File{decode: decodeYAMLRecords}, "yaml", "yml")
	_ = register(&File{decode: decodeCSVRecords}, "csv")
}

var errNotRecordList = errors.New("file does not hold a list of records")

// recordDecoder reads records from r. key selects a top level field holding
// the records, the whole document is used when it is empty.
type recordDecoder func(r io.Reader, key string) (core.Header, []core.Row, error)

var _ core.Adapter = (*File)(nil)

// File reads datasets from local files. The url is a path, optionally
// prefixed with "file://".
type File struct {
	decode recordDecoder
}

func (f *File) Connect(url string) (core.Driver, error) {
	path := strings.TrimPrefix(url, "file://")
	if path == "" {
		return nil, errors.New("no file path provided")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("os.Stat: %w", err)
	}

	return &fileDriver{
		path:   path,
		decode: f.decode,
	}, nil
}

var _ core.Driver = (*fileDriver)(nil)

type fileDriver struct {
	path   string
	decode recordDecoder
}

// Query reads the file again on every call so reloads pick up changes.
func (d *fileDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	header, rows, err := d.decode(file, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.path, err)
	}

	next, hasNext := builders.NextSlice(rows, func(row core.Row) (core.Row, error) { return row, nil })

	return builders.NewResultStreamBuilder().
		WithNextFunc(next, hasNext).
		WithHeader(header).
		Build(), nil
}

func (d *fileDriver) Close() {}

// recordsHeader returns the sorted union of all record keys.
func recordsHeader(rows []core.Row) core.Header {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}

	header := make(core.Header, 0, len(seen))
	for k := range seen {
		header = append(header, k)
	}
	slices.Sort(header)
	return header
}

// selectRecords picks the record list out of a decoded document.
func selectRecords(doc any, key string) ([]any, error) {
	if key != "" {
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: no top level object to select %q from", errNotRecordList, key)
		}
		doc, ok = obj[key]
		if !ok {
			return nil, fmt.Errorf("%w: key %q not found", errNotRecordList, key)
		}
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, errNotRecordList
	}
	return list, nil
}

func toRows(list []any) ([]core.Row, error) {
	rows := make([]core.Row, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is not an object", errNotRecordList, i)
		}
		rows = append(rows, core.Row(obj))
	}
	return rows, nil
}

func decodeJSONRecords(r io.Reader, key string) (core.Header, []core.Row, error) {
	dec := json.NewDecoder(r)
	// keep integers integral
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("json.Decode: %w", err)
	}

	list, err := selectRecords(doc, key)
	if err != nil {
		return nil, nil, err
	}

	rows, err := toRows(list)
	if err != nil {
		return nil, nil, err
	}
	return recordsHeader(rows), rows, nil
}

func decodeYAMLRecords(r io.Reader, key string) (core.Header, []core.Row, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("yaml.Decode: %w", err)
	}

	list, err := selectRecords(doc, key)
	if err != nil {
		return nil, nil, err
	}

	rows, err := toRows(list)
	if err != nil {
		return nil, nil, err
	}
	return recordsHeader(rows), rows, nil
}

// decodeCSVRecords reads a header line followed by records. Cells stay
// strings; empty cells become missing values.
func decodeCSVRecords(r io.Reader, _ string) (core.Header, []core.Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.Header{}, []core.Row{}, nil
		}
		return nil, nil, fmt.Errorf("reader.Read: %w", err)
	}

	var rows []core.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reader.Read: %w", err)
		}

		row := make(core.Row, len(header))
		for i, key := range header {
			if i >= len(record) || record[i] == "" {
				row[key] = nil
				continue
			}
			row[key] = record[i]
		}
		rows = append(rows, row)
	}

	return core.Header(header), rows, nil
}
