package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) *sqliteStorage {
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.False(t, s.IsInterfaceNil())
	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func saveTestMetric(t *testing.T, s *sqliteStorage, ts time.Time, server string, env string, metricType string, value string) common.MetricRecord {
	record, err := s.SaveMetric(context.Background(), common.MetricRecord{
		Timestamp:   ts,
		ServerName:  server,
		Environment: env,
		MetricType:  metricType,
		MetricValue: value,
	})
	require.NoError(t, err)

	return record
}

func TestSQLiteStorage_SaveAndGetMetric(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()

	ts := time.Date(2025, 5, 14, 7, 52, 32, 123456789, time.FixedZone("EEST", 3*3600))
	saved, err := s.SaveMetric(ctx, common.MetricRecord{
		Timestamp:   ts,
		ServerName:  "WEB-01",
		Environment: "Production",
		MetricType:  "CPUUsage",
		MetricValue: `{"core0": 75, "core1": 12}`,
		Source:      "AgentX",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.ID)
	require.Equal(t, time.UTC, saved.Timestamp.Location())

	fetched, err := s.GetMetric(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved, *fetched)
	require.True(t, ts.Equal(fetched.Timestamp))

	fetched, err = s.GetMetric(ctx, 999)
	require.Nil(t, fetched)
	require.ErrorIs(t, err, common.ErrMetricNotFound)
}

func TestSQLiteStorage_QueryMetrics(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m1 := saveTestMetric(t, s, base, "WEB-01", "Production", "CPUUsage", "10")
	m2 := saveTestMetric(t, s, base.Add(time.Minute), "WEB-02", "QA", "RAMUsage", "20")
	m3 := saveTestMetric(t, s, base.Add(2*time.Minute), "DB-01", "Production", "CPUUsage", "30")
	m4 := saveTestMetric(t, s, base.Add(3*time.Minute), "WEB-01", "Production", "DiskSpace", "40")

	t.Run("no filter returns everything newest first", func(t *testing.T) {
		results, err := s.QueryMetrics(ctx, common.MetricFilter{}, 1000)
		require.NoError(t, err)
		require.Equal(t, []common.MetricRecord{m4, m3, m2, m1}, results)
	})
	t.Run("server name is a substring match", func(t *testing.T) {
		results, err := s.QueryMetrics(ctx, common.MetricFilter{ServerName: "WEB"}, 1000)
		require.NoError(t, err)
		require.Equal(t, []common.MetricRecord{m4, m2, m1}, results)
	})
	t.Run("environment is an exact match", func(t *testing.T) {
		results, err := s.QueryMetrics(ctx, common.MetricFilter{Environment: "Prod"}, 1000)
		require.NoError(t, err)
		require.Empty(t, results)

		results, err = s.QueryMetrics(ctx, common.MetricFilter{Environment: "Production"}, 1000)
		require.NoError(t, err)
		require.Equal(t, []common.MetricRecord{m4, m3, m1}, results)
	})
	t.Run("predicates are combined", func(t *testing.T) {
		results, err := s.QueryMetrics(ctx, common.MetricFilter{
			ServerName:  "01",
			Environment: "Production",
			MetricType:  "CPU",
		}, 1000)
		require.NoError(t, err)
		require.Equal(t, []common.MetricRecord{m3, m1}, results)
	})
	t.Run("date bounds are inclusive", func(t *testing.T) {
		start := base.Add(time.Minute)
		end := base.Add(2 * time.Minute)
		results, err := s.QueryMetrics(ctx, common.MetricFilter{StartDate: &start, EndDate: &end}, 1000)
		require.NoError(t, err)
		require.Equal(t, []common.MetricRecord{m3, m2}, results)
	})
	t.Run("limit caps the results", func(t *testing.T) {
		results, err := s.QueryMetrics(ctx, common.MetricFilter{}, 2)
		require.NoError(t, err)
		require.Equal(t, []common.MetricRecord{m4, m3}, results)
	})
}

func TestSQLiteStorage_Aggregates(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()

	summary, err := s.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, common.MetricsSummary{}, *summary)
	require.Nil(t, summary.LastMetricTime)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	saveTestMetric(t, s, base, "WEB-01", "Production", "CPUUsage", "10")
	saveTestMetric(t, s, base.Add(time.Minute), "WEB-01", "Production", "CPUUsage", "11")
	saveTestMetric(t, s, base.Add(2*time.Minute), "WEB-02", "QA", "RAMUsage", "20")
	saveTestMetric(t, s, base.Add(3*time.Minute), "", "", "", "30")

	summary, err = s.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), summary.TotalMetrics)
	require.Equal(t, int64(3), summary.UniqueServers)
	require.Equal(t, int64(3), summary.UniqueMetricTypes)
	require.NotNil(t, summary.LastMetricTime)
	require.True(t, base.Add(3*time.Minute).Equal(*summary.LastMetricTime))

	overview, err := s.GetTypeOverview(ctx)
	require.NoError(t, err)
	require.Equal(t, []common.MetricTypeOverview{
		{MetricType: "", Quantity: 1, LastUpdateTime: base.Add(3 * time.Minute)},
		{MetricType: "CPUUsage", Quantity: 2, LastUpdateTime: base.Add(time.Minute)},
		{MetricType: "RAMUsage", Quantity: 1, LastUpdateTime: base.Add(2 * time.Minute)},
	}, overview)

	distribution, err := s.GetDistribution(ctx, common.DistributionByEnvironment, 0)
	require.NoError(t, err)
	require.Equal(t, []common.DistributionItem{
		{Name: "Production", Count: 2},
		{Name: "QA", Count: 1},
		{Name: common.UnknownGroupName, Count: 1},
	}, distribution)

	distribution, err = s.GetDistribution(ctx, common.DistributionByServer, 1)
	require.NoError(t, err)
	require.Equal(t, []common.DistributionItem{{Name: "WEB-01", Count: 2}}, distribution)

	distribution, err = s.GetDistribution(ctx, "invalid", 10)
	require.Nil(t, distribution)
	require.ErrorIs(t, err, common.ErrInvalidDistributionDimension)
}

func TestSQLiteStorage_DistributionTopGroups(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 12; i++ {
		for j := 0; j <= i; j++ {
			saveTestMetric(t, s, now, "srv", "QA", fmt.Sprintf("type-%02d", i), "1")
		}
	}

	distribution, err := s.GetDistribution(ctx, common.DistributionByType, 10)
	require.NoError(t, err)
	require.Len(t, distribution, 10)
	require.Equal(t, common.DistributionItem{Name: "type-11", Count: 12}, distribution[0])
	require.Equal(t, common.DistributionItem{Name: "type-02", Count: 3}, distribution[9])
}
