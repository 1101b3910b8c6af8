package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"net"
	"net/url"
	"strconv"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

type DBConfig struct {
	Driver        Driver `mapstructure:"driver"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Name          string `mapstructure:"name"`
	SSLMode       string `mapstructure:"ssl_mode"`
	MaintenanceDB string `mapstructure:"maintenance_db"`
	Path          string `mapstructure:"path"`
}

// DSN returns the connection string for the configured database.
func (config DBConfig) DSN() string {
	if config.Driver == DriverSQLite {
		return config.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return config.postgresDSN(config.Name)
}

// MaintenanceDSN points at the database used to create and drop the target one.
func (config DBConfig) MaintenanceDSN() string {
	return config.postgresDSN(config.MaintenanceDB)
}

func (config DBConfig) postgresDSN(database string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(config.User, config.Password),
		Host:   net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Path:   "/" + database,
	}
	if config.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {config.SSLMode}}.Encode()
	}
	return u.String()
}

func (config DBConfig) validate() error {
	var errs []error

	switch config.Driver {
	case DriverPostgres:
		if config.Host == "" {
			errs = append(errs, fmt.Errorf("missing variable: host"))
		}
		if config.User == "" {
			errs = append(errs, fmt.Errorf("missing variable: user"))
		}
		if config.Name == "" {
			errs = append(errs, fmt.Errorf("missing variable: name"))
		}
		if config.MaintenanceDB == "" {
			errs = append(errs, fmt.Errorf("missing variable: maintenance_db"))
		}
		if config.Port <= 0 || config.Port > 65535 {
			errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
		}
	case DriverSQLite:
		if config.Path == "" {
			errs = append(errs, fmt.Errorf("missing variable: path"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported driver: %q", config.Driver))
	}

	return errors.Join(errs...)
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.driver":   "DB_DRIVER",
		"db.host":     "DB_HOST",
		"db.port":     "DB_PORT",
		"db.user":     "DB_USER",
		"db.password": "DB_PASSWORD",
		"db.name":     "DB_NAME",
		"db.ssl_mode": "DB_SSL_MODE",
		"db.path":     "DB_PATH",
	})
}
