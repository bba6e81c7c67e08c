package testsCommon

import (
	"context"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

// DashboardProcessorStub -
type DashboardProcessorStub struct {
	ListConfigsHandler  func(ctx context.Context) ([]common.DashboardConfig, error)
	GetConfigHandler    func(ctx context.Context, id int64) (*common.DashboardConfig, error)
	GetDefaultHandler   func(ctx context.Context) (common.DefaultDashboard, error)
	CreateConfigHandler func(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error)
	UpdateConfigHandler func(ctx context.Context, id int64, cfg common.DashboardConfig) (common.DashboardConfig, error)
	SetDefaultHandler   func(ctx context.Context, id int64) (common.DashboardConfig, error)
	DeleteConfigHandler func(ctx context.Context, id int64) error
}

// ListConfigs -
func (stub *DashboardProcessorStub) ListConfigs(ctx context.Context) ([]common.DashboardConfig, error) {
	if stub.ListConfigsHandler != nil {
		return stub.ListConfigsHandler(ctx)
	}

	return make([]common.DashboardConfig, 0), nil
}

// GetConfig -
func (stub *DashboardProcessorStub) GetConfig(ctx context.Context, id int64) (*common.DashboardConfig, error) {
	if stub.GetConfigHandler != nil {
		return stub.GetConfigHandler(ctx, id)
	}

	return &common.DashboardConfig{ID: id}, nil
}

// GetDefault -
func (stub *DashboardProcessorStub) GetDefault(ctx context.Context) (common.DefaultDashboard, error) {
	if stub.GetDefaultHandler != nil {
		return stub.GetDefaultHandler(ctx)
	}

	return common.DefaultDashboard{Kind: common.DefaultDashboardSynthetic}, nil
}

// CreateConfig -
func (stub *DashboardProcessorStub) CreateConfig(ctx context.Context, cfg common.DashboardConfig) (common.DashboardConfig, error) {
	if stub.CreateConfigHandler != nil {
		return stub.CreateConfigHandler(ctx, cfg)
	}

	return cfg, nil
}

// UpdateConfig -
func (stub *DashboardProcessorStub) UpdateConfig(ctx context.Context, id int64, cfg common.DashboardConfig) (common.DashboardConfig, error) {
	if stub.UpdateConfigHandler != nil {
		return stub.UpdateConfigHandler(ctx, id, cfg)
	}

	return cfg, nil
}

// SetDefault -
func (stub *DashboardProcessorStub) SetDefault(ctx context.Context, id int64) (common.DashboardConfig, error) {
	if stub.SetDefaultHandler != nil {
		return stub.SetDefaultHandler(ctx, id)
	}

	return common.DashboardConfig{ID: id, IsDefault: true}, nil
}

// DeleteConfig -
func (stub *DashboardProcessorStub) DeleteConfig(ctx context.Context, id int64) error {
	if stub.DeleteConfigHandler != nil {
		return stub.DeleteConfigHandler(ctx, id)
	}

	return nil
}

// IsInterfaceNil -
func (stub *DashboardProcessorStub) IsInterfaceNil() bool {
	return stub == nil
}
