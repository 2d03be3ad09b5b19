package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcpsql "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/portalkit/gridview/adapters"
	"github.com/portalkit/gridview/core"
)

type PostgresContainer struct {
	*tcpsql.PostgresContainer
	ConnURL string
	Source  *core.Source
}

// NewPostgresContainer creates a new postgres container seeded with the
// users table and a source connected to it. Empty params.Type and
// params.URL are filled in.
func NewPostgresContainer(ctx context.Context, params *core.SourceParams) (*PostgresContainer, error) {
	seedFile, err := GetTestDataFile("postgres_seed.sql")
	if err != nil {
		return nil, err
	}

	ctr, err := tcpsql.Run(
		ctx,
		"postgres:16-alpine",
		tcpsql.BasicWaitStrategies(),
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcpsql.WithInitScripts(seedFile.Name()),
		tcpsql.WithDatabase("dev"),
	)
	if err != nil {
		return nil, err
	}
	connURL, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	if params.Type == "" {
		params.Type = "postgres"
	}

	if params.URL == "" {
		params.URL = connURL
	}

	src, err := adapters.NewSource(params)
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		PostgresContainer: ctr,
		ConnURL:           connURL,
		Source:            src,
	}, nil
}

// NewSource helper function to create a new source with the connection URL.
func (p *PostgresContainer) NewSource(params *core.SourceParams) (*core.Source, error) {
	if params.URL == "" {
		params.URL = p.ConnURL
	}
	if params.Type == "" {
		params.Type = "postgres"
	}

	return adapters.NewSource(params)
}
