// Package testhelpers provides helpers for integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/portalkit/gridview/core"
)

// GetContainerProvider returns the container provider type to use for the tests.
// If we detect podman is available, we use it, otherwise we use docker.
func GetContainerProvider() testcontainers.ProviderType {
	if _, err := exec.LookPath("podman"); err == nil {
		fmt.Println("Podman detected. Remember to set TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED=true;")
		return testcontainers.ProviderPodman
	}
	return testcontainers.ProviderDocker
}

// LoadView loads src and opens a view over its rows.
func LoadView(t *testing.T, ctx context.Context, src *core.Source, columns []core.Column, opts ...core.ViewOption) *core.View {
	t.Helper()

	ds, err := src.Load(ctx)
	require.NoError(t, err)

	return core.NewView(columns, ds.Rows, opts...)
}

// UserColumns are the columns of the users table in the seed files.
func UserColumns() []core.Column {
	return []core.Column{
		{Key: "name", Label: "Name"},
		{Key: "dept", Label: "Department"},
		{Key: "age", Label: "Age"},
		{Key: "active", Label: "Active"},
		{Key: "salary", Label: "Salary", Formatter: core.FormatAsCurrency},
		{Key: "joined", Label: "Joined"},
	}
}

// UsersQuery selects the seeded users in insertion order.
const UsersQuery = "SELECT name, dept, age, active, salary, joined FROM users ORDER BY id"

// FilterTypes maps every descriptor key to its inferred type.
func FilterTypes(filters []core.FilterDescriptor) map[string]core.FilterType {
	out := make(map[string]core.FilterType, len(filters))
	for _, f := range filters {
		out[f.Key] = f.Type
	}
	return out
}

// Names returns the name column of rows.
func Names(rows []core.Row) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r["name"]
	}
	return out
}

// GetTestDataPath returns the path to the testdata directory.
func GetTestDataPath() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get current file path")
	}

	return filepath.Join(filepath.Dir(currentFile), "../testdata"), nil
}

// GetTestDataFile returns a file from the testdata directory.
func GetTestDataFile(filename string) (*os.File, error) {
	testDataPath, err := GetTestDataPath()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(testDataPath, filename)
	return os.Open(path)
}
