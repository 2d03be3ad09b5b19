package adapters

import (
	"database/sql"
	"fmt"
	nurl "net/url"

	"github.com/google/uuid"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/builders"
)

// Register client
func init() {
	_ = register(&SQLServer{}, "sqlserver", "mssql")
}

var _ core.Adapter = (*SQLServer)(nil)

type SQLServer struct{}

func (s *SQLServer) Connect(url string) (core.Driver, error) {
	u, err := nurl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlserver database: %w", err)
	}

	opts := append(withDecimalTypes("decimal", "money", "smallmoney"),
		builders.WithCustomTypeProcessor("uniqueidentifier", uniqueIdentifierProcessor),
	)

	return &sqlDriver{
		c: builders.NewClient(db, opts...),
	}, nil
}

// uniqueIdentifierProcessor renders sqlserver uuids as strings so they
// display and filter like text.
func uniqueIdentifierProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	id, err := uuid.FromBytes(b)
	if err != nil {
		return a
	}

	return id.String()
}
