package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// EndpointConfig defines a single metric polling rule
type EndpointConfig struct {
	MetricType string `toml:"MetricType"`
	URL        string `toml:"URL"`
	Value      string `toml:"Value"`
}

// Config maps to the config.toml file for the metrics agent
type Config struct {
	ServerName             string           `toml:"ServerName"`
	Environment            string           `toml:"Environment"`
	Source                 string           `toml:"Source"`
	QueryIntervalInSeconds uint32           `toml:"QueryIntervalInSeconds"`
	ReportEndpoint         string           `toml:"ReportEndpoint"`
	ReportTimeoutInSeconds uint32           `toml:"ReportTimeoutInSeconds"`
	Endpoints              []EndpointConfig `toml:"Endpoints"`
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
