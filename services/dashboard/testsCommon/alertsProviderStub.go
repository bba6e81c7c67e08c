package testsCommon

import (
	"context"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

// AlertsProviderStub -
type AlertsProviderStub struct {
	GetSummaryHandler func(ctx context.Context) (common.AlertSummary, error)
	GetRecentHandler  func(ctx context.Context) ([]common.Alert, error)
}

// GetSummary -
func (stub *AlertsProviderStub) GetSummary(ctx context.Context) (common.AlertSummary, error) {
	if stub.GetSummaryHandler != nil {
		return stub.GetSummaryHandler(ctx)
	}

	return common.AlertSummary{}, nil
}

// GetRecent -
func (stub *AlertsProviderStub) GetRecent(ctx context.Context) ([]common.Alert, error) {
	if stub.GetRecentHandler != nil {
		return stub.GetRecentHandler(ctx)
	}

	return make([]common.Alert, 0), nil
}

// IsInterfaceNil -
func (stub *AlertsProviderStub) IsInterfaceNil() bool {
	return stub == nil
}
