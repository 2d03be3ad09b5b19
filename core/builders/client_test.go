package builders_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/core/builders"
)

func setupClient(t *testing.T, opts ...builders.ClientOption) (*builders.Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return builders.NewClient(db, opts...), mock
}

func TestClientQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		rows       *sqlmock.Rows
		wantHeader core.Header
		wantRows   []core.Row
		wantErr    bool
	}{
		{
			name:  "rows become maps",
			query: "SELECT id, name FROM users",
			rows: sqlmock.NewRows([]string{"id", "name"}).
				AddRow(1, []byte("john")).
				AddRow(2, "jane"),
			wantHeader: core.Header{"id", "name"},
			wantRows: []core.Row{
				{"id": int64(1), "name": "john"},
				{"id": int64(2), "name": "jane"},
			},
		},
		{
			name:  "duplicate column names",
			query: "SELECT u.id, d.id FROM users u JOIN depts d",
			rows: sqlmock.NewRows([]string{"id", "id"}).
				AddRow(1, 10),
			wantHeader: core.Header{"id", "id_2"},
			wantRows:   []core.Row{{"id": int64(1), "id_2": int64(10)}},
		},
		{
			name:       "empty result",
			query:      "SELECT id FROM nobody",
			rows:       sqlmock.NewRows([]string{"id"}),
			wantHeader: core.Header{"id"},
			wantRows:   []core.Row{},
		},
		{
			name:    "invalid query",
			query:   "INVALID QUERY",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := setupClient(t)

			if tt.wantErr {
				mock.ExpectQuery(tt.query).WillReturnError(sql.ErrConnDone)
			} else {
				mock.ExpectQuery(tt.query).WillReturnRows(tt.rows)
			}

			stream, err := client.Query(context.Background(), tt.query)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, stream)
				return
			}
			require.NoError(t, err)

			ds, err := core.Drain(context.Background(), stream)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, ds.Header)
			assert.Equal(t, tt.wantRows, ds.Rows)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClientQueryRowError(t *testing.T) {
	client, mock := setupClient(t)

	rowErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT id FROM users").WillReturnRows(
		sqlmock.NewRows([]string{"id"}).
			AddRow(1).
			AddRow(2).
			RowError(1, rowErr),
	)

	stream, err := client.Query(context.Background(), "SELECT id FROM users")
	require.NoError(t, err)

	_, err = core.Drain(context.Background(), stream)
	assert.ErrorIs(t, err, rowErr)
}

func TestClientTypeProcessor(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	client := builders.NewClient(db,
		builders.WithCustomTypeProcessor("NUMERIC", func(v any) any { return "processed" }),
		// first registration wins
		builders.WithCustomTypeProcessor("numeric", func(v any) any { return "ignored" }),
	)

	mock.ExpectQuery("SELECT price FROM items").WillReturnRows(
		sqlmock.NewRowsWithColumnDefinition(sqlmock.NewColumn("price").OfType("NUMERIC", "1.5")).
			AddRow("1.5"),
	)

	stream, err := client.Query(context.Background(), "SELECT price FROM items")
	require.NoError(t, err)

	ds, err := core.Drain(context.Background(), stream)
	require.NoError(t, err)
	assert.Equal(t, []core.Row{{"price": "processed"}}, ds.Rows)
}
