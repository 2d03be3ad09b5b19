package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcmssql "github.com/testcontainers/testcontainers-go/modules/mssql"

	"github.com/portalkit/gridview/adapters"
	"github.com/portalkit/gridview/core"
)

type MSSQLServerContainer struct {
	*tcmssql.MSSQLServerContainer
	ConnURL string
	Source  *core.Source
}

// NewSQLServerContainer creates a new MS SQL Server container seeded with
// the users table and a source connected to it.
func NewSQLServerContainer(ctx context.Context, params *core.SourceParams) (*MSSQLServerContainer, error) {
	const password = "H3ll0@W0rld"

	seedFile, err := GetTestDataFile("sqlserver_seed.sql")
	if err != nil {
		return nil, err
	}

	ctr, err := tcmssql.Run(
		ctx,
		"mcr.microsoft.com/mssql/server:2022-CU17-ubuntu-22.04",
		tcmssql.WithAcceptEULA(),
		tcmssql.WithPassword(password),
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ContainerRequest: tc.ContainerRequest{
				Files: []tc.ContainerFile{
					{
						Reader:            seedFile,
						ContainerFilePath: seedFile.Name(),
						FileMode:          0o644,
					},
				},
			},
			ProviderType: GetContainerProvider(),
		}),
		tc.WithAfterReadyCommand(
			tc.NewRawCommand([]string{
				"/opt/mssql-tools18/bin/sqlcmd",
				"-S", "localhost",
				"-U", "sa",
				"-P", password,
				"-No",
				"-i", seedFile.Name(),
			}),
		),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "encrypt=false", "TrustServerCertificate=true")
	if err != nil {
		return nil, err
	}

	if params.Type == "" {
		params.Type = "mssql"
	}

	if params.URL == "" {
		params.URL = connURL
	}

	src, err := adapters.NewSource(params)
	if err != nil {
		return nil, err
	}

	return &MSSQLServerContainer{
		MSSQLServerContainer: ctr,
		ConnURL:              connURL,
		Source:               src,
	}, nil
}
