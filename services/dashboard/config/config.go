package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// CacheConfig holds the cache connection and expiration settings
type CacheConfig struct {
	ConnectTimeoutInSeconds      uint32 `toml:"ConnectTimeoutInSeconds"`
	MetricsListTTLInSeconds      uint32 `toml:"MetricsListTTLInSeconds"`
	SummaryTTLInSeconds          uint32 `toml:"SummaryTTLInSeconds"`
	TypeOverviewTTLInSeconds     uint32 `toml:"TypeOverviewTTLInSeconds"`
	DashboardConfigsTTLInSeconds uint32 `toml:"DashboardConfigsTTLInSeconds"`
}

// QueryConfig holds the result size limits
type QueryConfig struct {
	MaxResults int `toml:"MaxResults"`
	TopGroups  int `toml:"TopGroups"`
}

// Config maps to the config.toml file for the dashboard service
type Config struct {
	ListenAddress string      `toml:"ListenAddress"`
	StaticDir     string      `toml:"StaticDir"`
	SettingsFile  string      `toml:"SettingsFile"`
	EnablePprof   bool        `toml:"EnablePprof"`
	Cache         CacheConfig `toml:"Cache"`
	Query         QueryConfig `toml:"Query"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}
