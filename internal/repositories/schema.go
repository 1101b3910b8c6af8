package repositories

import (
	"context"
	"fmt"
	"github.com/maxaizer/hh-sync/internal/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os"
	"regexp"
)

var ErrInvalidDatabaseName = errors.New("invalid database name")

var databaseNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

func ValidateDatabaseName(name string) error {
	if !databaseNamePattern.MatchString(name) {
		return errors.Wrapf(ErrInvalidDatabaseName, "%q", name)
	}
	return nil
}

// quoteIdentifier must only be called with a name accepted by ValidateDatabaseName.
func quoteIdentifier(name string) string {
	return `"` + name + `"`
}

// ResetDatabase DESTROYS the configured database and creates it again empty.
// For postgres every session connected to it is terminated first; for sqlite
// the database file is removed. All previous data is lost.
// Call (*DbContext).Migrate on a fresh connection afterwards to create the tables.
func ResetDatabase(ctx context.Context, cfg config.DBConfig) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		return resetPostgres(ctx, cfg)
	case config.DriverSQLite:
		return resetSQLite(cfg.Path)
	default:
		return fmt.Errorf("unsupported driver: %q", cfg.Driver)
	}
}

func resetPostgres(ctx context.Context, cfg config.DBConfig) error {
	if err := ValidateDatabaseName(cfg.Name); err != nil {
		return err
	}
	if cfg.Name == cfg.MaintenanceDB {
		return errors.Wrapf(ErrInvalidDatabaseName, "%q is the maintenance database", cfg.Name)
	}

	db, err := open(ctx, config.DriverPostgres, cfg.MaintenanceDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database %q: %w", cfg.MaintenanceDB, err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	db = db.WithContext(ctx)

	var exists int64
	if err = db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", cfg.Name).Scan(&exists).Error; err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}

	if exists > 0 {
		log.Warnf("dropping existing database %q", cfg.Name)

		if err = db.Exec("SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = ? AND pid <> pg_backend_pid()",
			cfg.Name).Error; err != nil {
			return fmt.Errorf("failed to terminate connections to %q: %w", cfg.Name, err)
		}

		if err = db.Exec("DROP DATABASE " + quoteIdentifier(cfg.Name)).Error; err != nil {
			return fmt.Errorf("failed to drop database %q: %w", cfg.Name, err)
		}
	}

	if err = db.Exec("CREATE DATABASE " + quoteIdentifier(cfg.Name)).Error; err != nil {
		return fmt.Errorf("failed to create database %q: %w", cfg.Name, err)
	}

	log.Infof("database %q created", cfg.Name)
	return nil
}

func resetSQLite(path string) error {
	for _, file := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", file, err)
		}
	}
	log.Infof("sqlite database %s reset", path)
	return nil
}

// InitSchema resets the database, connects to it and creates the tables.
func InitSchema(ctx context.Context, cfg config.DBConfig) (*DbContext, error) {
	if err := ResetDatabase(ctx, cfg); err != nil {
		return nil, err
	}

	dbContext, err := NewDbContext(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %q: %w", cfg.Name, err)
	}

	if err = dbContext.Migrate(); err != nil {
		_ = dbContext.Close()
		return nil, err
	}

	return dbContext, nil
}

// OpenSchema connects to the configured database and makes sure the tables
// exist. With reset the database is recreated first, see ResetDatabase.
func OpenSchema(ctx context.Context, cfg config.DBConfig, reset bool) (*DbContext, error) {
	if reset {
		return InitSchema(ctx, cfg)
	}

	dbContext, err := NewDbContext(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = dbContext.Migrate(); err != nil {
		_ = dbContext.Close()
		return nil, err
	}

	return dbContext, nil
}
