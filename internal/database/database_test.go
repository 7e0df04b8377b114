package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

func TestConnectMemory(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Both tables must exist after migration.
	for _, table := range []string{"payroll_records", "ingestion_log"} {
		var n int
		err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
		require.NoError(t, err)
		assert.Zero(t, n)
	}
}

func TestConnectMemorySharesOneConnection(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`INSERT INTO ingestion_log
		(batch_id, source_file, status, created_at)
		VALUES ('b1', 'jan.csv', 'loaded', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	// With a pooled second connection the row would not be visible.
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM ingestion_log").Scan(&n))
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestConnectFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payroll.db")
	db, err := Connect(Config{DSN: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.FileExists(t, path)

	// Migrate is idempotent, a second open over the same file must work.
	require.NoError(t, db.Close())
	db2, err := Connect(Config{DSN: path})
	require.NoError(t, err)
	t.Cleanup(func() { db2.Close() })
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(Config{Driver: "oracle"})
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "database.driver", cfgErr.Field)
}

func TestConnectPostgresRequiresDSN(t *testing.T) {
	_, err := Connect(Config{Driver: DriverPostgres})
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "database.dsn", cfgErr.Field)
}
