package reporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/agent/common"
	"github.com/iulianpascalau/metrics-dashboard/services/agent/config"
	jsoniter "github.com/json-iterator/go"
	logger "github.com/multiversx/mx-chain-logger-go"
)

const (
	heartbeatMetricType = "AgentHeartbeat"
	heartbeatValue      = "1"
	apiKeyHeader        = "X-Api-Key"
)

var log = logger.GetOrCreate("reporter")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type httpReporter struct {
	endpoint    string
	apiKey      string
	serverName  string
	environment string
	source      string
	client      *http.Client
}

// NewHTTPReporter creates a new reporter that pushes every polled value to the configured ReportEndpoint
func NewHTTPReporter(cfg config.Config, apiKey string, timeout time.Duration) *httpReporter {
	return &httpReporter{
		endpoint:    cfg.ReportEndpoint,
		apiKey:      apiKey,
		serverName:  cfg.ServerName,
		environment: cfg.Environment,
		source:      cfg.Source,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Report sends one metric record per polled result, in metric type order, followed by the heartbeat record.
// A failed record does not stop the others; all the failures are returned together.
func (r *httpReporter) Report(ctx context.Context, results map[string]common.MetricResult) error {
	metricTypes := make([]string, 0, len(results))
	for metricType := range results {
		metricTypes = append(metricTypes, metricType)
	}
	sort.Strings(metricTypes)

	var errs []error
	for _, metricType := range metricTypes {
		err := r.send(ctx, r.newPayload(metricType, results[metricType].Value))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", metricType, err))
		}
	}

	err := r.send(ctx, r.newPayload(heartbeatMetricType, heartbeatValue))
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", heartbeatMetricType, err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	log.Debug("successfully sent metrics report", "endpoint", r.endpoint, "metrics_count", len(results)+1)

	return nil
}

func (r *httpReporter) newPayload(metricType string, value string) common.MetricPayload {
	return common.MetricPayload{
		ServerName:  r.serverName,
		Environment: r.environment,
		MetricType:  metricType,
		MetricValue: value,
		Source:      r.source,
	}
}

func (r *httpReporter) send(ctx context.Context, payload common.MetricPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal report payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create report request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if len(r.apiKey) > 0 {
		req.Header.Set(apiKeyHeader, r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error sending report: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server rejected report with status code: %d", resp.StatusCode)
	}

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *httpReporter) IsInterfaceNil() bool {
	return r == nil
}
