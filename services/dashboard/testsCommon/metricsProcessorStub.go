package testsCommon

import (
	"context"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

// MetricsProcessorStub -
type MetricsProcessorStub struct {
	SaveMetricHandler      func(ctx context.Context, record common.MetricRecord) (common.MetricRecord, error)
	GetMetricHandler       func(ctx context.Context, id int64) (*common.MetricRecord, error)
	QueryMetricsHandler    func(ctx context.Context, filter common.MetricFilter) ([]common.MetricRecord, error)
	GetSummaryHandler      func(ctx context.Context) (*common.MetricsSummary, error)
	GetTypeOverviewHandler func(ctx context.Context) ([]common.MetricTypeOverview, error)
	GetDistributionHandler func(ctx context.Context, dimension common.DistributionDimension) ([]common.DistributionItem, error)
}

// SaveMetric -
func (stub *MetricsProcessorStub) SaveMetric(ctx context.Context, record common.MetricRecord) (common.MetricRecord, error) {
	if stub.SaveMetricHandler != nil {
		return stub.SaveMetricHandler(ctx, record)
	}

	return record, nil
}

// GetMetric -
func (stub *MetricsProcessorStub) GetMetric(ctx context.Context, id int64) (*common.MetricRecord, error) {
	if stub.GetMetricHandler != nil {
		return stub.GetMetricHandler(ctx, id)
	}

	return &common.MetricRecord{ID: id}, nil
}

// QueryMetrics -
func (stub *MetricsProcessorStub) QueryMetrics(ctx context.Context, filter common.MetricFilter) ([]common.MetricRecord, error) {
	if stub.QueryMetricsHandler != nil {
		return stub.QueryMetricsHandler(ctx, filter)
	}

	return make([]common.MetricRecord, 0), nil
}

// GetSummary -
func (stub *MetricsProcessorStub) GetSummary(ctx context.Context) (*common.MetricsSummary, error) {
	if stub.GetSummaryHandler != nil {
		return stub.GetSummaryHandler(ctx)
	}

	return &common.MetricsSummary{}, nil
}

// GetTypeOverview -
func (stub *MetricsProcessorStub) GetTypeOverview(ctx context.Context) ([]common.MetricTypeOverview, error) {
	if stub.GetTypeOverviewHandler != nil {
		return stub.GetTypeOverviewHandler(ctx)
	}

	return make([]common.MetricTypeOverview, 0), nil
}

// GetDistribution -
func (stub *MetricsProcessorStub) GetDistribution(ctx context.Context, dimension common.DistributionDimension) ([]common.DistributionItem, error) {
	if stub.GetDistributionHandler != nil {
		return stub.GetDistributionHandler(ctx, dimension)
	}

	return make([]common.DistributionItem, 0), nil
}

// IsInterfaceNil -
func (stub *MetricsProcessorStub) IsInterfaceNil() bool {
	return stub == nil
}
