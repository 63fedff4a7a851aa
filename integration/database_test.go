//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestClasparWithMySQL exercises the archive commands against a MySQL backend.
func TestClasparWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "claspar",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/claspar?parseTime=true", host, port.Port())
	runArchiveLifecycle(t, "mysql", connStr)
}

// TestClasparWithPostgres exercises the archive commands against a PostgreSQL backend.
func TestClasparWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runArchiveLifecycle(t, "postgresql", connStr)
}

// runArchiveLifecycle drives a full parse plus archive round trip against a backend.
func runArchiveLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("CLASPAR_ARCHIVE_BACKEND", backend)
	_ = os.Setenv("CLASPAR_ARCHIVE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("CLASPAR_ARCHIVE_BACKEND") }()
	defer func() { _ = os.Unsetenv("CLASPAR_ARCHIVE_DB_CONNECT") }()

	outputDir := t.TempDir()
	recordPath := writeRecordFile(t, outputDir)

	// Run claspar archive clear on a fresh schema
	_, err := runClaspar(t, "archive", "clear")
	require.NoError(t, err)

	// Run claspar parse, which records the run in the archive
	_, err = runClaspar(t, "parse", "barcode01",
		"--input", recordPath, "--output-dir", outputDir)
	require.NoError(t, err)

	// Run claspar archive status and check the recorded run shows up
	statusOut, err := runClaspar(t, "archive", "status")
	require.NoError(t, err)
	assert.Contains(t, statusOut, backend)
	assert.Contains(t, statusOut, "Total Runs")
	assert.True(t, strings.Contains(statusOut, "1"), "expected one archived run, got: %s", statusOut)

	// Run claspar archive clear again to leave the schema empty
	_, err = runClaspar(t, "archive", "clear")
	require.NoError(t, err)
}
