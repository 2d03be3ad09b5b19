package adapters

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/builders"
)

// Register client
func init() {
	_ = register(&MySQL{}, "mysql", "mariadb")
}

var _ core.Adapter = (*MySQL)(nil)

type MySQL struct{}

func (m *MySQL) Connect(url string) (core.Driver, error) {
	cfg, err := mysql.ParseDSN(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}
	// date columns should filter as dates
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mysql database: %w", err)
	}

	opts := append(withDecimalTypes("decimal"),
		builders.WithCustomTypeProcessor("json", jsonProcessor),
	)

	return &sqlDriver{
		c: builders.NewClient(db, opts...),
	}, nil
}
