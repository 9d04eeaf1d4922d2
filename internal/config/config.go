// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	// Commerce platform API
	CTPProjectKey   string `env:"CTP_PROJECT_KEY,required"`
	CTPAuthURL      string `env:"CTP_AUTH_URL,required"`
	CTPAPIURL       string `env:"CTP_API_URL,required"`
	CTPClientID     string `env:"CTP_CLIENT_ID,required"`
	CTPClientSecret string `env:"CTP_CLIENT_SECRET,required"`
	CTPScopes       string `env:"CTP_SCOPES"`

	// Warehouse
	WarehouseURL     string `env:"WAREHOUSE_URL,required"`
	WarehouseTable   string `env:"WAREHOUSE_TABLE" envDefault:"discount_usage"`
	WarehouseMigrate bool   `env:"WAREHOUSE_MIGRATE" envDefault:"false"`

	// Analytics behavior. The reporting timezone is an explicit setting, not
	// an ambient server default.
	Timezone         string        `env:"ANALYTICS_TIMEZONE" envDefault:"Australia/Sydney"`
	UpstreamTimeout  time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`
	DiscountCacheTTL time.Duration `env:"DISCOUNT_CACHE_TTL" envDefault:"30s"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Scopes splits the space-separated OAuth scope list.
func (c *Config) Scopes() []string {
	return strings.Fields(c.CTPScopes)
}

// Location resolves the configured IANA timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
