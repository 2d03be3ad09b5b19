package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/portalkit/gridview/adapters"
	"github.com/portalkit/gridview/core"
)

type OracleContainer struct {
	tc.Container
	ConnURL string
	Source  *core.Source
}

// OracleUsersQuery selects the seeded users with lower case column names,
// oracle upper cases unquoted identifiers.
const OracleUsersQuery = `SELECT name AS "name", dept AS "dept", age AS "age" FROM users ORDER BY id`

// NewOracleContainer creates a new oracle container seeded with the users
// table and a source connected to it.
func NewOracleContainer(ctx context.Context, params *core.SourceParams) (*OracleContainer, error) {
	const (
		password      = "password"
		appUser       = "tester"
		port          = "1521/tcp"
		memoryLimitGB = 3 * 1024 * 1024 * 1024
	)

	seedFile, err := GetTestDataFile("oracle_seed.sql")
	if err != nil {
		return nil, err
	}

	req := tc.ContainerRequest{
		Image:        "gvenzl/oracle-free:23.6-slim-faststart",
		ExposedPorts: []string{port},
		Env: map[string]string{
			"ORACLE_PASSWORD":   password,
			"APP_USER":          appUser,
			"APP_USER_PASSWORD": password,
		},
		WaitingFor: wait.ForLog("DATABASE IS READY TO USE!").WithStartupTimeout(5 * time.Minute),
		Resources:  container.Resources{Memory: memoryLimitGB},
		Files: []tc.ContainerFile{
			{
				Reader:            seedFile,
				ContainerFilePath: "/docker-entrypoint-initdb.d/oracle_seed.sql",
				FileMode:          0o755,
			},
		},
	}

	ctr, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		ProviderType:     GetContainerProvider(),
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return nil, err
	}

	mPort, err := ctr.MappedPort(ctx, port)
	if err != nil {
		return nil, err
	}

	connURL := fmt.Sprintf("oracle://%s:%s@%s:%d/FREEPDB1", appUser, password, host, mPort.Int())
	if params.Type == "" {
		params.Type = "oracle"
	}

	if params.URL == "" {
		params.URL = connURL
	}

	src, err := adapters.NewSource(params)
	if err != nil {
		return nil, err
	}

	return &OracleContainer{Container: ctr, ConnURL: connURL, Source: src}, nil
}
