package alerts

import (
	"context"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

// staticProvider is a placeholder: no alerting rules are evaluated, it always returns the same fixed data
// so the dashboard widgets have something to show.
type staticProvider struct {
	timeHandler func() time.Time
}

// NewStaticProvider creates the placeholder alerts provider
func NewStaticProvider(timeHandler func() time.Time) (*staticProvider, error) {
	if timeHandler == nil {
		return nil, common.ErrNilTimeHandler
	}

	return &staticProvider{
		timeHandler: timeHandler,
	}, nil
}

// GetSummary returns fixed counters
func (sp *staticProvider) GetSummary(_ context.Context) (common.AlertSummary, error) {
	return common.AlertSummary{
		ActiveAlerts:   2,
		CriticalAlerts: 0,
		WarningAlerts:  1,
		InfoAlerts:     1,
	}, nil
}

// GetRecent returns two fixed alerts, stamped relative to the current time
func (sp *staticProvider) GetRecent(_ context.Context) ([]common.Alert, error) {
	now := sp.timeHandler().UTC()

	return []common.Alert{
		{
			ID:           1,
			Severity:     "warning",
			Message:      "High CPU usage detected on PROD-WEB-01",
			Timestamp:    now.Add(-5 * time.Minute),
			Acknowledged: false,
		},
		{
			ID:           2,
			Severity:     "info",
			Message:      "Memory usage returned to normal on DEV-DB-02",
			Timestamp:    now.Add(-15 * time.Minute),
			Acknowledged: true,
		},
	}, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (sp *staticProvider) IsInterfaceNil() bool {
	return sp == nil
}
