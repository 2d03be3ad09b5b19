package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"github.com/portalkit/gridview/adapters"
	"github.com/portalkit/gridview/core"
)

type ClickHouseContainer struct {
	*clickhouse.ClickHouseContainer
	ConnURL string
	Source  *core.Source
}

// NewClickHouseContainer creates a new clickhouse container seeded with
// the users table and a source connected to it.
func NewClickHouseContainer(ctx context.Context, params *core.SourceParams) (*ClickHouseContainer, error) {
	seedFile, err := GetTestDataFile("clickhouse_seed.sql")
	if err != nil {
		return nil, err
	}

	ctr, err := clickhouse.Run(
		ctx,
		"clickhouse/clickhouse-server:25.1-alpine",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		clickhouse.WithUsername("admin"),
		clickhouse.WithPassword(""),
		clickhouse.WithDatabase("dev"),
		clickhouse.WithInitScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx)
	if err != nil {
		return nil, err
	}

	if params.Type == "" {
		params.Type = "clickhouse"
	}

	if params.URL == "" {
		params.URL = connURL
	}

	src, err := adapters.NewSource(params)
	if err != nil {
		return nil, err
	}

	return &ClickHouseContainer{
		ClickHouseContainer: ctr,
		ConnURL:             connURL,
		Source:              src,
	}, nil
}
