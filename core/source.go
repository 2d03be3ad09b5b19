package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type (
	// Adapter connects to a data source by url.
	Adapter interface {
		Connect(url string) (Driver, error)
	}

	// Driver runs queries against a connected source.
	Driver interface {
		Query(ctx context.Context, query string) (ResultStream, error)
		Close()
	}

	// ResultStream is the result of a query in form of an iterator.
	ResultStream interface {
		Header() Header
		Next() (Row, error)
		HasNext() bool
		Close()
	}
)

type SourceID string

type SourceParams struct {
	ID    SourceID
	Name  string
	Type  string
	URL   string
	Query string
}

// Expand returns a copy of the parameters with every field template-expanded.
func (p *SourceParams) Expand() *SourceParams {
	return &SourceParams{
		ID:    SourceID(expandOrDefault(string(p.ID))),
		Name:  expandOrDefault(p.Name),
		Type:  expandOrDefault(p.Type),
		URL:   expandOrDefault(p.URL),
		Query: expandOrDefault(p.Query),
	}
}

// MarshalJSON leaves the url out since it may carry credentials.
func (p *SourceParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Type  string `json:"type"`
		Query string `json:"query"`
	}{
		ID:    string(p.ID),
		Name:  p.Name,
		Type:  p.Type,
		Query: p.Query,
	})
}

// Source is a connected dataset origin of a view.
type Source struct {
	params           *SourceParams
	unexpandedParams *SourceParams

	driver Driver
}

func NewSource(params *SourceParams, adapter Adapter) (*Source, error) {
	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = SourceID(uuid.New().String())
	}

	driver, err := adapter.Connect(expanded.URL)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	return &Source{
		params:           expanded,
		unexpandedParams: params,
		driver:           driver,
	}, nil
}

func (s *Source) GetID() SourceID {
	return s.params.ID
}

func (s *Source) GetName() string {
	return s.params.Name
}

func (s *Source) GetType() string {
	return s.params.Type
}

// GetParams returns the parameters as they were before expansion.
func (s *Source) GetParams() *SourceParams {
	return s.unexpandedParams
}

// Load runs the source query and drains the result into a dataset.
func (s *Source) Load(ctx context.Context) (*Dataset, error) {
	stream, err := s.driver.Query(ctx, s.params.Query)
	if err != nil {
		return nil, fmt.Errorf("driver.Query: %w", err)
	}

	return Drain(ctx, stream)
}

func (s *Source) Close() {
	s.driver.Close()
}

// Drain reads every row of stream and closes it.
func Drain(ctx context.Context, stream ResultStream) (*Dataset, error) {
	defer stream.Close()

	ds := &Dataset{
		Header: stream.Header(),
		Rows:   []Row{},
	}

	for stream.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := stream.Next()
		if err != nil {
			return nil, fmt.Errorf("stream.Next: %w", err)
		}
		if row == nil {
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}
