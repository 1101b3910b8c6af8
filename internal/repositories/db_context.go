package repositories

import (
	"context"
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/hh-sync/internal/config"
	"github.com/maxaizer/hh-sync/internal/domain/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"time"
)

type DbContext struct {
	DB *gorm.DB
}

func openDialector(driver config.Driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %q", driver)
	}
}

func open(ctx context.Context, driver config.Driver, dsn string) (*gorm.DB, error) {
	dialector, err := openDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}

	return db, nil
}

func NewDbContext(ctx context.Context, cfg config.DBConfig) (*DbContext, error) {
	db, err := open(ctx, cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	return &DbContext{DB: db}, nil
}

// Migrate creates the employers and listings tables when they are missing.
func (c *DbContext) Migrate() error {
	if err := c.DB.AutoMigrate(models.Employer{}); err != nil {
		return fmt.Errorf("failed to migrate Employer entity: %w", err)
	}

	if err := c.DB.AutoMigrate(models.Listing{}); err != nil {
		return fmt.Errorf("failed to migrate Listing entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
