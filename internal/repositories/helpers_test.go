package repositories

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/config"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func sqliteConfig(t *testing.T) config.DBConfig {
	t.Helper()
	return config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "hh.db")}
}

func newTestDb(t *testing.T) *DbContext {
	t.Helper()
	dbContext, err := InitSchema(context.Background(), sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbContext.Close() })
	return dbContext
}

func intPtr(v int) *int {
	return &v
}
