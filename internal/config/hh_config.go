package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type HHConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	Token                string        `mapstructure:"token"`
	UserAgent            string        `mapstructure:"user_agent"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	PerPage              int           `mapstructure:"per_page"`
}

func (config HHConfig) validate() error {

	var missingFields []string

	if config.BaseURL == "" {
		missingFields = append(missingFields, "base_url")
	}

	if config.UserAgent == "" {
		missingFields = append(missingFields, "user_agent")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.PerPage < 1 || config.PerPage > 100 {
		return fmt.Errorf("per_page must be between 1 and 100, got %d", config.PerPage)
	}

	if config.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("max_requests_per_second must be non-negative")
	}

	return nil
}

func (config HHConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"hh.base_url":                "HH_BASE_URL",
		"hh.token":                   "HH_TOKEN",
		"hh.user_agent":              "HH_USER_AGENT",
		"hh.timeout":                 "HH_TIMEOUT",
		"hh.per_page":                "HH_PER_PAGE",
		"hh.max_requests_per_second": "HH_MAX_REQUESTS_PER_SECOND",
	})
}
