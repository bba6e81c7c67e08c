package process

import (
	"context"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

// MetricsStorage defines the persistence operations over the metrics table
type MetricsStorage interface {
	// SaveMetric inserts the record and returns it with the assigned identity, after the insert is committed
	SaveMetric(ctx context.Context, record common.MetricRecord) (common.MetricRecord, error)

	// GetMetric returns the record with the provided identity or common.ErrMetricNotFound
	GetMetric(ctx context.Context, id int64) (*common.MetricRecord, error)

	// QueryMetrics returns the records matching all the set predicates, newest first, capped at limit rows
	QueryMetrics(ctx context.Context, filter common.MetricFilter, limit int) ([]common.MetricRecord, error)

	// GetSummary computes the global counters
	GetSummary(ctx context.Context) (*common.MetricsSummary, error)

	// GetTypeOverview groups the records by metric type
	GetTypeOverview(ctx context.Context) ([]common.MetricTypeOverview, error)

	// GetDistribution counts the records grouped by the provided dimension, limit <= 0 meaning all the groups
	GetDistribution(ctx context.Context, dimension common.DistributionDimension, limit int) ([]common.DistributionItem, error)

	IsInterfaceNil() bool
}

// DashboardStorage defines the persistence operations over the dashboard configs table
type DashboardStorage interface {
	ListDashboardConfigs(ctx context.Context) ([]common.DashboardConfig, error)
	GetDashboardConfig(ctx context.Context, id int64) (*common.DashboardConfig, error)
	GetDefaultDashboardConfig(ctx context.Context) (*common.DashboardConfig, error)
	CreateDashboardConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error)
	UpdateDashboardConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error)
	SetDefaultDashboardConfig(ctx context.Context, id int64, modifiedAt time.Time) (common.DashboardConfig, error)
	DeleteDashboardConfig(ctx context.Context, id int64) error
	IsInterfaceNil() bool
}
