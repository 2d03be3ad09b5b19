package adapters

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/databricks/databricks-sql-go"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/builders"
)

// Register client
func init() {
	_ = register(&Databricks{}, "databricks")
}

var errMissingCatalog = errors.New("required parameter '?catalog=<catalog>' is missing")

var _ core.Adapter = (*Databricks)(nil)

type Databricks struct{}

// Connect expects a DSN of the form
//
//	token:[my_token]@[hostname]:[port]/[endpoint http path]?catalog=[catalog]
//
// see https://github.com/databricks/databricks-sql-go for more information.
func (d *Databricks) Connect(connectionURL string) (core.Driver, error) {
	parsedURL, err := url.Parse(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if parsedURL.Query().Get("catalog") == "" {
		return nil, errMissingCatalog
	}

	db, err := sql.Open("databricks", parsedURL.String())
	if err != nil {
		return nil, fmt.Errorf("invalid databricks connection string: %w", err)
	}

	return &sqlDriver{
		c: builders.NewClient(db, withDecimalTypes("decimal")...),
	}, nil
}
