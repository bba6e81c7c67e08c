package process

import (
	"context"
	"errors"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/cache"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

const emptySettings = "{}"

// ArgsDashboardProcessor defines the arguments needed to create a dashboard processor
type ArgsDashboardProcessor struct {
	Storage     DashboardStorage
	Cacher      cache.Cacher
	TimeHandler func() time.Time
	ListTTL     time.Duration
}

type dashboardProcessor struct {
	storage     DashboardStorage
	readThrough *cache.ReadThrough
	timeHandler func() time.Time
	listTTL     time.Duration
}

// NewDashboardProcessor creates the component handling the dashboard configs
func NewDashboardProcessor(args ArgsDashboardProcessor) (*dashboardProcessor, error) {
	if check.IfNil(args.Storage) {
		return nil, common.ErrNilStorage
	}
	if args.TimeHandler == nil {
		return nil, common.ErrNilTimeHandler
	}

	rt, err := cache.NewReadThrough(args.Cacher)
	if err != nil {
		return nil, err
	}

	return &dashboardProcessor{
		storage:     args.Storage,
		readThrough: rt,
		timeHandler: args.TimeHandler,
		listTTL:     args.ListTTL,
	}, nil
}

// ListConfigs returns all the dashboard configs, default first, then most recently modified
func (dp *dashboardProcessor) ListConfigs(ctx context.Context) ([]common.DashboardConfig, error) {
	return cache.Load(ctx, dp.readThrough, cache.DashboardConfigsKey, dp.listTTL, dp.storage.ListDashboardConfigs)
}

// GetConfig returns a single dashboard config
func (dp *dashboardProcessor) GetConfig(ctx context.Context, id int64) (*common.DashboardConfig, error) {
	if id <= 0 {
		return nil, common.ErrDashboardNotFound
	}

	return dp.storage.GetDashboardConfig(ctx, id)
}

// GetDefault returns the stored default dashboard config or, if none is marked as default, the built-in one
func (dp *dashboardProcessor) GetDefault(ctx context.Context) (common.DefaultDashboard, error) {
	cfg, err := dp.storage.GetDefaultDashboardConfig(ctx)
	if errors.Is(err, common.ErrNoDefaultDashboard) {
		return common.DefaultDashboard{
			Kind:   common.DefaultDashboardSynthetic,
			Config: builtInDashboardConfig(),
		}, nil
	}
	if err != nil {
		return common.DefaultDashboard{}, err
	}

	return common.DefaultDashboard{
		Kind:   common.DefaultDashboardFound,
		Config: *cfg,
	}, nil
}

// CreateConfig stores a new dashboard config
func (dp *dashboardProcessor) CreateConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error) {
	now := dp.timeHandler().UTC()
	cfg.ID = 0
	cfg.Settings = normalizeSettings(cfg.Settings)
	cfg.CreatedAt = now
	cfg.LastModified = now

	created, err := dp.storage.CreateDashboardConfig(ctx, cfg)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	err = dp.invalidateList(ctx)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	log.Debug("dashboard config created", "id", created.ID, "name", created.Name, "default", created.IsDefault)

	return created, nil
}

// UpdateConfig overwrites an existing dashboard config
func (dp *dashboardProcessor) UpdateConfig(ctx context.Context, id int64, cfg common.DashboardConfig) (common.DashboardConfig, error) {
	if id <= 0 {
		return common.DashboardConfig{}, common.ErrDashboardNotFound
	}

	cfg.ID = id
	cfg.Settings = normalizeSettings(cfg.Settings)
	cfg.LastModified = dp.timeHandler().UTC()

	updated, err := dp.storage.UpdateDashboardConfig(ctx, cfg)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	err = dp.invalidateList(ctx)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	return updated, nil
}

// SetDefault marks the dashboard config as the only default one
func (dp *dashboardProcessor) SetDefault(ctx context.Context, id int64) (common.DashboardConfig, error) {
	if id <= 0 {
		return common.DashboardConfig{}, common.ErrDashboardNotFound
	}

	cfg, err := dp.storage.SetDefaultDashboardConfig(ctx, id, dp.timeHandler().UTC())
	if err != nil {
		return common.DashboardConfig{}, err
	}

	err = dp.invalidateList(ctx)
	if err != nil {
		return common.DashboardConfig{}, err
	}

	log.Debug("default dashboard config changed", "id", id)

	return cfg, nil
}

// DeleteConfig removes a dashboard config, unless it is the default one
func (dp *dashboardProcessor) DeleteConfig(ctx context.Context, id int64) error {
	if id <= 0 {
		return common.ErrDashboardNotFound
	}

	err := dp.storage.DeleteDashboardConfig(ctx, id)
	if err != nil {
		return err
	}

	return dp.invalidateList(ctx)
}

func (dp *dashboardProcessor) invalidateList(ctx context.Context) error {
	return dp.readThrough.Remove(ctx, cache.DashboardConfigsKey)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (dp *dashboardProcessor) IsInterfaceNil() bool {
	return dp == nil
}

func normalizeSettings(settings string) string {
	if len(settings) == 0 {
		return emptySettings
	}

	return settings
}

func builtInDashboardConfig() common.DashboardConfig {
	return common.DashboardConfig{
		Name:   "Default Dashboard",
		Layout: "2x1",
		Widgets: `[` +
			`{"id":"timeline","type":"timeline","position":0,"title":"Metric Timeline"},` +
			`{"id":"environment","type":"donut","position":1,"title":"Environment Distribution"}` +
			`]`,
		Settings:  `{"refreshInterval":60,"theme":"auto","fullscreen":true}`,
		IsDefault: true,
	}
}
