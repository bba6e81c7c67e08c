package cache

import (
	"strconv"
	"strings"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

const (
	// AllMetricsKey holds the unfiltered metrics list
	AllMetricsKey = "all_metrics"
	// SummaryKey holds the metrics summary counters
	SummaryKey = "metrics_summary"
	// TypeOverviewKey holds the per metric type overview
	TypeOverviewKey = "metrics_type_overview"
	// DashboardConfigsKey holds the dashboard configs list
	DashboardConfigsKey = "dashboard_configs"

	filteredMetricsKeyPrefix = "filtered_metrics"
	keySeparator             = "|"
	missingValueToken        = "null"
)

// MetricsQueryKey builds the cache key of a metrics query. An empty filter maps to AllMetricsKey.
// Present values are written as <byte length>:<value> so the key can be split back unambiguously; two
// different filters never produce the same key. Dates are rendered in UTC with nanosecond precision so
// the same instant expressed in any time zone produces the same key.
func MetricsQueryKey(filter common.MetricFilter) string {
	if filter.IsEmpty() {
		return AllMetricsKey
	}

	parts := []string{
		filteredMetricsKeyPrefix,
		encodeString(filter.ServerName),
		encodeString(filter.Environment),
		encodeString(filter.MetricType),
		encodeTime(filter.StartDate),
		encodeTime(filter.EndDate),
	}

	return strings.Join(parts, keySeparator)
}

func encodeString(value string) string {
	if len(value) == 0 {
		return missingValueToken
	}

	return strconv.Itoa(len(value)) + ":" + value
}

func encodeTime(value *time.Time) string {
	if value == nil {
		return missingValueToken
	}

	return encodeString(value.UTC().Format(time.RFC3339Nano))
}
