package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/portalkit/gridview/adapters"
	"github.com/portalkit/gridview/core"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	ConnURL string
	Source  *core.Source
}

// NewMySQLContainer creates a new MySQL container seeded with the users
// table and a source connected to it. Empty params.Type and params.URL
// are filled in.
func NewMySQLContainer(ctx context.Context, params *core.SourceParams) (*MySQLContainer, error) {
	seedFile, err := GetTestDataFile("mysql_seed.sql")
	if err != nil {
		return nil, err
	}

	ctr, err := tcmysql.Run(
		ctx,
		"mysql:9.2.0",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcmysql.WithDatabase("dev"),
		tcmysql.WithPassword("password"),
		tcmysql.WithUsername("root"),
		tcmysql.WithScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "tls=skip-verify")
	if err != nil {
		return nil, err
	}

	if params.Type == "" {
		params.Type = "mysql"
	}

	if params.URL == "" {
		params.URL = connURL
	}

	src, err := adapters.NewSource(params)
	if err != nil {
		return nil, err
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		ConnURL:        connURL,
		Source:         src,
	}, nil
}

// NewSource helper function to create a new source with the connection URL.
func (p *MySQLContainer) NewSource(params *core.SourceParams) (*core.Source, error) {
	if params.URL == "" {
		params.URL = p.ConnURL
	}
	if params.Type == "" {
		params.Type = "mysql"
	}

	return adapters.NewSource(params)
}
