package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	names, err := migrationFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, names)
}

func TestRunMigrations_NoPoolIsANoop(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, "does-not-exist", zap.NewNop()))
}

func TestPostgres_UnconfiguredPing(t *testing.T) {
	var pg *Postgres
	assert.False(t, pg.Configured())
	assert.Error(t, pg.Ping(context.Background()))
}
