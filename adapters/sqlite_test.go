//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portalkit/gridview/core"
)

func TestSQLiteSource(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "portal.db")
	db, err := sql.Open("sqlite", path)
	r.NoError(err)
	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, dept TEXT, salary REAL);
		INSERT INTO users (id, name, dept, salary) VALUES
			(1, 'John Smith', 'Engineering', 50000),
			(2, 'Jane Doe', 'Sales', 64000.5),
			(3, 'Bob Stone', NULL, NULL);
	`)
	r.NoError(err)
	r.NoError(db.Close())

	source, err := NewSource(&core.SourceParams{
		Type:  "sqlite",
		URL:   path,
		Query: "SELECT id, name, dept, salary FROM users ORDER BY id",
	})
	r.NoError(err)
	defer source.Close()

	ds, err := source.Load(context.Background())
	r.NoError(err)
	r.Equal(core.Header{"id", "name", "dept", "salary"}, ds.Header)
	r.Len(ds.Rows, 3)
	r.Equal("John Smith", ds.Rows[0]["name"])
	r.Nil(ds.Rows[2]["dept"])

	view := core.NewView([]core.Column{
		{Key: "name"},
		{Key: "dept"},
		{Key: "salary", Formatter: core.FormatAsCurrency},
	}, ds.Rows)
	view.SetSearch("$64,000.50")
	r.Len(view.Visible(), 1)
	r.Equal("Jane Doe", view.Visible()[0]["name"])
}
