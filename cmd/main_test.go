package main

import (
	"context"
	"github.com/maxaizer/hh-sync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func sqliteAppConfig(t *testing.T, path string) *config.Config {
	t.Helper()
	return &config.Config{
		DB: config.DBConfig{Driver: config.DriverSQLite, Path: path},
		HH: config.HHConfig{BaseURL: "http://127.0.0.1:1", UserAgent: "test", PerPage: 10},
	}
}

func Test_Run_UnknownModeReturnsError(t *testing.T) {
	err := run(context.Background(), "bogus", sqliteAppConfig(t, filepath.Join(t.TempDir(), "hh.db")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func Test_Run_DatabaseFailureReturnsError(t *testing.T) {
	cfg := sqliteAppConfig(t, filepath.Join(t.TempDir(), "missing", "dir", "hh.db"))

	err := run(context.Background(), modeSync, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't initialize database")
}

func Test_Run_PipelineFailureReturnsError(t *testing.T) {
	cfg := sqliteAppConfig(t, filepath.Join(t.TempDir(), "hh.db"))

	err := run(context.Background(), modeSync, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't create pipeline")
}

func Test_Run_SyncModeWithUnreachableSourceSucceeds(t *testing.T) {
	cfg := sqliteAppConfig(t, filepath.Join(t.TempDir(), "hh.db"))
	cfg.Sync.EmployerIDs = []string{"1"}

	assert.NoError(t, run(context.Background(), modeSync, cfg))
}
