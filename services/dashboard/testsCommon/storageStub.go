package testsCommon

import (
	"context"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

// StorageStub -
type StorageStub struct {
	SaveMetricHandler                func(ctx context.Context, record common.MetricRecord) (common.MetricRecord, error)
	GetMetricHandler                 func(ctx context.Context, id int64) (*common.MetricRecord, error)
	QueryMetricsHandler              func(ctx context.Context, filter common.MetricFilter, limit int) ([]common.MetricRecord, error)
	GetSummaryHandler                func(ctx context.Context) (*common.MetricsSummary, error)
	GetTypeOverviewHandler           func(ctx context.Context) ([]common.MetricTypeOverview, error)
	GetDistributionHandler           func(ctx context.Context, dimension common.DistributionDimension, limit int) ([]common.DistributionItem, error)
	ListDashboardConfigsHandler      func(ctx context.Context) ([]common.DashboardConfig, error)
	GetDashboardConfigHandler        func(ctx context.Context, id int64) (*common.DashboardConfig, error)
	GetDefaultDashboardConfigHandler func(ctx context.Context) (*common.DashboardConfig, error)
	CreateDashboardConfigHandler     func(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error)
	UpdateDashboardConfigHandler     func(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error)
	SetDefaultDashboardConfigHandler func(ctx context.Context, id int64, modifiedAt time.Time) (common.DashboardConfig, error)
	DeleteDashboardConfigHandler     func(ctx context.Context, id int64) error
	CloseHandler                     func() error
}

// SaveMetric -
func (stub *StorageStub) SaveMetric(ctx context.Context, record common.MetricRecord) (common.MetricRecord, error) {
	if stub.SaveMetricHandler != nil {
		return stub.SaveMetricHandler(ctx, record)
	}

	return record, nil
}

// GetMetric -
func (stub *StorageStub) GetMetric(ctx context.Context, id int64) (*common.MetricRecord, error) {
	if stub.GetMetricHandler != nil {
		return stub.GetMetricHandler(ctx, id)
	}

	return nil, common.ErrMetricNotFound
}

// QueryMetrics -
func (stub *StorageStub) QueryMetrics(ctx context.Context, filter common.MetricFilter, limit int) ([]common.MetricRecord, error) {
	if stub.QueryMetricsHandler != nil {
		return stub.QueryMetricsHandler(ctx, filter, limit)
	}

	return make([]common.MetricRecord, 0), nil
}

// GetSummary -
func (stub *StorageStub) GetSummary(ctx context.Context) (*common.MetricsSummary, error) {
	if stub.GetSummaryHandler != nil {
		return stub.GetSummaryHandler(ctx)
	}

	return &common.MetricsSummary{}, nil
}

// GetTypeOverview -
func (stub *StorageStub) GetTypeOverview(ctx context.Context) ([]common.MetricTypeOverview, error) {
	if stub.GetTypeOverviewHandler != nil {
		return stub.GetTypeOverviewHandler(ctx)
	}

	return make([]common.MetricTypeOverview, 0), nil
}

// GetDistribution -
func (stub *StorageStub) GetDistribution(ctx context.Context, dimension common.DistributionDimension, limit int) ([]common.DistributionItem, error) {
	if stub.GetDistributionHandler != nil {
		return stub.GetDistributionHandler(ctx, dimension, limit)
	}

	return make([]common.DistributionItem, 0), nil
}

// ListDashboardConfigs -
func (stub *StorageStub) ListDashboardConfigs(ctx context.Context) ([]common.DashboardConfig, error) {
	if stub.ListDashboardConfigsHandler != nil {
		return stub.ListDashboardConfigsHandler(ctx)
	}

	return make([]common.DashboardConfig, 0), nil
}

// GetDashboardConfig -
func (stub *StorageStub) GetDashboardConfig(ctx context.Context, id int64) (*common.DashboardConfig, error) {
	if stub.GetDashboardConfigHandler != nil {
		return stub.GetDashboardConfigHandler(ctx, id)
	}

	return nil, common.ErrDashboardNotFound
}

// GetDefaultDashboardConfig -
func (stub *StorageStub) GetDefaultDashboardConfig(ctx context.Context) (*common.DashboardConfig, error) {
	if stub.GetDefaultDashboardConfigHandler != nil {
		return stub.GetDefaultDashboardConfigHandler(ctx)
	}

	return nil, common.ErrNoDefaultDashboard
}

// CreateDashboardConfig -
func (stub *StorageStub) CreateDashboardConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error) {
	if stub.CreateDashboardConfigHandler != nil {
		return stub.CreateDashboardConfigHandler(ctx, cfg)
	}

	return cfg, nil
}

// UpdateDashboardConfig -
func (stub *StorageStub) UpdateDashboardConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error) {
	if stub.UpdateDashboardConfigHandler != nil {
		return stub.UpdateDashboardConfigHandler(ctx, cfg)
	}

	return cfg, nil
}

// SetDefaultDashboardConfig -
func (stub *StorageStub) SetDefaultDashboardConfig(ctx context.Context, id int64, modifiedAt time.Time) (common.DashboardConfig, error) {
	if stub.SetDefaultDashboardConfigHandler != nil {
		return stub.SetDefaultDashboardConfigHandler(ctx, id, modifiedAt)
	}

	return common.DashboardConfig{ID: id, IsDefault: true, LastModified: modifiedAt}, nil
}

// DeleteDashboardConfig -
func (stub *StorageStub) DeleteDashboardConfig(ctx context.Context, id int64) error {
	if stub.DeleteDashboardConfigHandler != nil {
		return stub.DeleteDashboardConfigHandler(ctx, id)
	}

	return nil
}

// Close -
func (stub *StorageStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StorageStub) IsInterfaceNil() bool {
	return stub == nil
}
