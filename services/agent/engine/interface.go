package engine

import (
	"context"

	"github.com/iulianpascalau/metrics-dashboard/services/agent/common"
	"github.com/iulianpascalau/metrics-dashboard/services/agent/config"
)

// Poller defines the interface for fetching values from local endpoints
type Poller interface {
	// PollAll fetches all the configured endpoints concurrently and extracts the configured JSON path.
	// Endpoints that fail, time out or lack the JSON path are omitted from the returned map.
	PollAll(ctx context.Context, endpoints []config.EndpointConfig) map[string]common.MetricResult

	IsInterfaceNil() bool
}

// Reporter defines the interface for pushing polled metrics to the dashboard service
type Reporter interface {
	// Report sends the polled results and a heartbeat record. Failures are not retried.
	Report(ctx context.Context, results map[string]common.MetricResult) error

	IsInterfaceNil() bool
}
