package storage

import (
	"context"
	"testing"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	"github.com/stretchr/testify/require"
)

func createTestDashboard(t *testing.T, s *sqliteStorage, name string, isDefault bool, ts time.Time) common.DashboardConfig {
	cfg, err := s.CreateDashboardConfig(context.Background(), common.DashboardConfig{
		Name:         name,
		Layout:       "2x1",
		Widgets:      `[{"id":"timeline","type":"timeline","position":0}]`,
		Settings:     "{}",
		IsDefault:    isDefault,
		CreatedAt:    ts,
		LastModified: ts,
	})
	require.NoError(t, err)

	return cfg
}

func countDefaults(t *testing.T, s *sqliteStorage) int {
	configs, err := s.ListDashboardConfigs(context.Background())
	require.NoError(t, err)

	numDefaults := 0
	for _, cfg := range configs {
		if cfg.IsDefault {
			numDefaults++
		}
	}

	return numDefaults
}

func TestSQLiteStorage_DashboardConfigsCRUD(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 22, 22, 3, 54, 0, time.UTC)

	_, err := s.GetDefaultDashboardConfig(ctx)
	require.ErrorIs(t, err, common.ErrNoDefaultDashboard)

	first := createTestDashboard(t, s, "first", true, base)
	require.Equal(t, int64(1), first.ID)

	fetched, err := s.GetDashboardConfig(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first, *fetched)

	second := createTestDashboard(t, s, "second", false, base.Add(time.Minute))
	third := createTestDashboard(t, s, "third", false, base.Add(2*time.Minute))

	configs, err := s.ListDashboardConfigs(ctx)
	require.NoError(t, err)
	require.Equal(t, []common.DashboardConfig{first, third, second}, configs)

	second.Name = "second renamed"
	second.LastModified = base.Add(time.Hour)
	updated, err := s.UpdateDashboardConfig(ctx, second)
	require.NoError(t, err)
	require.Equal(t, second, updated)

	configs, err = s.ListDashboardConfigs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{first.ID, second.ID, third.ID}, []int64{configs[0].ID, configs[1].ID, configs[2].ID})

	_, err = s.UpdateDashboardConfig(ctx, common.DashboardConfig{ID: 999, Name: "missing"})
	require.ErrorIs(t, err, common.ErrDashboardNotFound)

	err = s.DeleteDashboardConfig(ctx, third.ID)
	require.NoError(t, err)

	_, err = s.GetDashboardConfig(ctx, third.ID)
	require.ErrorIs(t, err, common.ErrDashboardNotFound)

	err = s.DeleteDashboardConfig(ctx, third.ID)
	require.ErrorIs(t, err, common.ErrDashboardNotFound)
}

func TestSQLiteStorage_SingleDefaultDashboard(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 22, 22, 3, 54, 0, time.UTC)

	first := createTestDashboard(t, s, "first", true, base)
	require.Equal(t, 1, countDefaults(t, s))

	second := createTestDashboard(t, s, "second", true, base.Add(time.Minute))
	require.Equal(t, 1, countDefaults(t, s))

	def, err := s.GetDefaultDashboardConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, second.ID, def.ID)

	reloaded, err := s.GetDashboardConfig(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, reloaded.IsDefault)

	first.IsDefault = true
	first.LastModified = base.Add(time.Hour)
	_, err = s.UpdateDashboardConfig(ctx, first)
	require.NoError(t, err)
	require.Equal(t, 1, countDefaults(t, s))

	def, err = s.GetDefaultDashboardConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, def.ID)

	modifiedAt := base.Add(2 * time.Hour)
	cfg, err := s.SetDefaultDashboardConfig(ctx, second.ID, modifiedAt)
	require.NoError(t, err)
	require.True(t, cfg.IsDefault)
	require.Equal(t, modifiedAt, cfg.LastModified)
	require.Equal(t, 1, countDefaults(t, s))

	_, err = s.SetDefaultDashboardConfig(ctx, 999, modifiedAt)
	require.ErrorIs(t, err, common.ErrDashboardNotFound)
	require.Equal(t, 1, countDefaults(t, s))

	err = s.DeleteDashboardConfig(ctx, second.ID)
	require.ErrorIs(t, err, common.ErrDefaultDashboardDeletion)

	configs, err := s.ListDashboardConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	require.Equal(t, second.ID, configs[0].ID)
}
