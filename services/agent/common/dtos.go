package common

import "github.com/iulianpascalau/metrics-dashboard/services/agent/config"

// MetricResult holds the extracted value for a specific endpoint configuration
type MetricResult struct {
	Config config.EndpointConfig
	Value  string
}

// MetricPayload is the body accepted by the dashboard ingestion endpoint
type MetricPayload struct {
	ServerName  string `json:"serverName"`
	Environment string `json:"environment"`
	MetricType  string `json:"metricType"`
	MetricValue string `json:"metricValue"`
	Source      string `json:"source,omitempty"`
}
