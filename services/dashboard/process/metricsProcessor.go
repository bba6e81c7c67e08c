package process

import (
	"context"
	"fmt"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/cache"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("process")

// ArgsMetricsProcessor defines the arguments needed to create a metrics processor
type ArgsMetricsProcessor struct {
	Storage         MetricsStorage
	Cacher          cache.Cacher
	TimeHandler     func() time.Time
	MaxResults      int
	TopGroups       int
	MetricsListTTL  time.Duration
	SummaryTTL      time.Duration
	TypeOverviewTTL time.Duration
}

type metricsProcessor struct {
	storage         MetricsStorage
	readThrough     *cache.ReadThrough
	timeHandler     func() time.Time
	maxResults      int
	topGroups       int
	metricsListTTL  time.Duration
	summaryTTL      time.Duration
	typeOverviewTTL time.Duration
}

// NewMetricsProcessor creates the component that stores and queries metrics through the cache
func NewMetricsProcessor(args ArgsMetricsProcessor) (*metricsProcessor, error) {
	if check.IfNil(args.Storage) {
		return nil, common.ErrNilStorage
	}
	if args.TimeHandler == nil {
		return nil, common.ErrNilTimeHandler
	}
	if args.MaxResults <= 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidMaxResults, args.MaxResults)
	}
	if args.TopGroups <= 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidTopGroups, args.TopGroups)
	}

	rt, err := cache.NewReadThrough(args.Cacher)
	if err != nil {
		return nil, err
	}

	return &metricsProcessor{
		storage:         args.Storage,
		readThrough:     rt,
		timeHandler:     args.TimeHandler,
		maxResults:      args.MaxResults,
		topGroups:       args.TopGroups,
		metricsListTTL:  args.MetricsListTTL,
		summaryTTL:      args.SummaryTTL,
		typeOverviewTTL: args.TypeOverviewTTL,
	}, nil
}

// SaveMetric stamps the record with the current UTC time, stores it and, once the insert is committed,
// drops the unfiltered list and the aggregates from the cache. Filtered lists are left to expire.
func (mp *metricsProcessor) SaveMetric(ctx context.Context, record common.MetricRecord) (common.MetricRecord, error) {
	record.ID = 0
	record.Timestamp = mp.timeHandler().UTC()

	saved, err := mp.storage.SaveMetric(ctx, record)
	if err != nil {
		return common.MetricRecord{}, err
	}

	err = mp.readThrough.Remove(ctx, cache.AllMetricsKey, cache.SummaryKey, cache.TypeOverviewKey)
	if err != nil {
		return common.MetricRecord{}, fmt.Errorf("metric %d stored but the cache invalidation failed: %w", saved.ID, err)
	}

	log.Debug("metric stored", "id", saved.ID, "server", saved.ServerName, "type", saved.MetricType)

	return saved, nil
}

// GetMetric returns a single metric record
func (mp *metricsProcessor) GetMetric(ctx context.Context, id int64) (*common.MetricRecord, error) {
	if id <= 0 {
		return nil, common.ErrMetricNotFound
	}

	return mp.storage.GetMetric(ctx, id)
}

// QueryMetrics returns the metrics matching the filter, newest first. Results are cached under a key derived
// from the filter.
func (mp *metricsProcessor) QueryMetrics(ctx context.Context, filter common.MetricFilter) ([]common.MetricRecord, error) {
	key := cache.MetricsQueryKey(filter)

	return cache.Load(ctx, mp.readThrough, key, mp.metricsListTTL, func(ctx context.Context) ([]common.MetricRecord, error) {
		return mp.storage.QueryMetrics(ctx, filter, mp.maxResults)
	})
}

// GetSummary returns the global counters
func (mp *metricsProcessor) GetSummary(ctx context.Context) (*common.MetricsSummary, error) {
	return cache.Load(ctx, mp.readThrough, cache.SummaryKey, mp.summaryTTL, mp.storage.GetSummary)
}

// GetTypeOverview returns the per metric type overview
func (mp *metricsProcessor) GetTypeOverview(ctx context.Context) ([]common.MetricTypeOverview, error) {
	return cache.Load(ctx, mp.readThrough, cache.TypeOverviewKey, mp.typeOverviewTTL, mp.storage.GetTypeOverview)
}

// GetDistribution counts the metrics by the provided dimension. The environment distribution holds all the
// groups, the type and server ones only the biggest groups. Never cached.
func (mp *metricsProcessor) GetDistribution(ctx context.Context, dimension common.DistributionDimension) ([]common.DistributionItem, error) {
	switch dimension {
	case common.DistributionByEnvironment:
		return mp.storage.GetDistribution(ctx, dimension, 0)
	case common.DistributionByType, common.DistributionByServer:
		return mp.storage.GetDistribution(ctx, dimension, mp.topGroups)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidDistributionDimension, dimension)
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (mp *metricsProcessor) IsInterfaceNil() bool {
	return mp == nil
}
