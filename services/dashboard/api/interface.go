package api

import (
	"context"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

// MetricsProcessor defines the operations over the metrics served by the API
type MetricsProcessor interface {
	// SaveMetric stamps and stores a metric, returning it with the assigned identity and timestamp
	SaveMetric(ctx context.Context, record common.MetricRecord) (common.MetricRecord, error)

	// GetMetric returns a single metric or common.ErrMetricNotFound
	GetMetric(ctx context.Context, id int64) (*common.MetricRecord, error)

	// QueryMetrics returns the matching metrics, newest first
	QueryMetrics(ctx context.Context, filter common.MetricFilter) ([]common.MetricRecord, error)

	GetSummary(ctx context.Context) (*common.MetricsSummary, error)
	GetTypeOverview(ctx context.Context) ([]common.MetricTypeOverview, error)
	GetDistribution(ctx context.Context, dimension common.DistributionDimension) ([]common.DistributionItem, error)
	IsInterfaceNil() bool
}

// DashboardProcessor defines the operations over the dashboard configs served by the API
type DashboardProcessor interface {
	ListConfigs(ctx context.Context) ([]common.DashboardConfig, error)
	GetConfig(ctx context.Context, id int64) (*common.DashboardConfig, error)
	GetDefault(ctx context.Context) (common.DefaultDashboard, error)
	CreateConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error)
	UpdateConfig(ctx context.Context, id int64, cfg common.DashboardConfig) (common.DashboardConfig, error)
	SetDefault(ctx context.Context, id int64) (common.DashboardConfig, error)
	DeleteConfig(ctx context.Context, id int64) error
	IsInterfaceNil() bool
}

// SettingsStore defines the persistence of the application settings document
type SettingsStore interface {
	Load() (common.ApplicationSettings, error)
	Save(settings common.ApplicationSettings) error
	IsInterfaceNil() bool
}

// AlertsProvider defines the source of the alert widgets data
type AlertsProvider interface {
	GetSummary(ctx context.Context) (common.AlertSummary, error)
	GetRecent(ctx context.Context) ([]common.Alert, error)
	IsInterfaceNil() bool
}
