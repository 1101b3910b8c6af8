package config

import (
	"errors"
	"github.com/spf13/viper"
	"time"
)

type SyncConfig struct {
	EmployerIDs []string      `mapstructure:"employer_ids"`
	ResetSchema bool          `mapstructure:"reset_schema"`
	Schedule    string        `mapstructure:"schedule"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

func (config SyncConfig) validate() error {
	if len(config.EmployerIDs) == 0 {
		return errors.New("missing variable: employer_ids")
	}
	if config.CacheTTL < 0 {
		return errors.New("cache_ttl must be non-negative")
	}
	return nil
}

func (config SyncConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"sync.employer_ids": "SYNC_EMPLOYER_IDS",
		"sync.schedule":     "SYNC_SCHEDULE",
		"sync.reset_schema": "SYNC_RESET_SCHEMA",
	})
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

func (config MetricsConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"metrics.enabled": "METRICS_ENABLED",
		"metrics.address": "METRICS_ADDRESS",
	})
}
