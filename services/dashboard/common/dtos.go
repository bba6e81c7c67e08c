package common

import "time"

// MetricRecord defines a single reported metric, as stored in the metrics table
type MetricRecord struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	ServerName  string    `json:"serverName"`
	Environment string    `json:"environment"`
	MetricType  string    `json:"metricType"`
	MetricValue string    `json:"metricValue"` // raw number or embedded JSON for composite metrics
	Source      string    `json:"source,omitempty"`
}

// MetricsSummary holds the global counters shown on the dashboard KPIs
type MetricsSummary struct {
	TotalMetrics      int64      `json:"totalMetrics"`
	UniqueServers     int64      `json:"uniqueServers"`
	UniqueMetricTypes int64      `json:"uniqueMetricTypes"`
	LastMetricTime    *time.Time `json:"lastMetricTime"`
}

// MetricTypeOverview is one row of the per metric type breakdown
type MetricTypeOverview struct {
	MetricType     string    `json:"metricType"`
	Quantity       int64     `json:"quantity"`
	LastUpdateTime time.Time `json:"lastUpdateTime"`
}

// DistributionItem is a (group name, count) pair
type DistributionItem struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DashboardConfig defines a named, persisted dashboard layout
type DashboardConfig struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Layout       string    `json:"layout"`
	Widgets      string    `json:"widgets"`
	Settings     string    `json:"settings"`
	IsDefault    bool      `json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// DefaultDashboardKind tells where a default dashboard descriptor comes from
type DefaultDashboardKind int

const (
	// DefaultDashboardFound marks a default dashboard read from the storage
	DefaultDashboardFound DefaultDashboardKind = iota
	// DefaultDashboardSynthetic marks the built-in descriptor returned when no stored config is the default.
	// It is never persisted.
	DefaultDashboardSynthetic
)

// DefaultDashboard is the result of a default dashboard lookup
type DefaultDashboard struct {
	Kind   DefaultDashboardKind
	Config DashboardConfig
}

// IsSynthetic returns true if the descriptor was not read from the storage
func (dd DefaultDashboard) IsSynthetic() bool {
	return dd.Kind == DefaultDashboardSynthetic
}

// ApplicationSettings is the singleton settings document kept on disk
type ApplicationSettings struct {
	RefreshInterval     int    `json:"refreshInterval" binding:"min=0"`
	ThemeSelection      string `json:"themeSelection"`
	EnableNotifications bool   `json:"enableNotifications"`
	CpuThreshold        int    `json:"cpuThreshold" binding:"min=0"`
	MemoryThreshold     int    `json:"memoryThreshold" binding:"min=0"`
}

// DefaultApplicationSettings returns the settings used when nothing was saved yet
func DefaultApplicationSettings() ApplicationSettings {
	return ApplicationSettings{
		RefreshInterval:     60,
		ThemeSelection:      "Light",
		EnableNotifications: false,
		CpuThreshold:        80,
		MemoryThreshold:     1024,
	}
}

// AlertSummary holds the alert counters
type AlertSummary struct {
	ActiveAlerts   int `json:"activeAlerts"`
	CriticalAlerts int `json:"criticalAlerts"`
	WarningAlerts  int `json:"warningAlerts"`
	InfoAlerts     int `json:"infoAlerts"`
}

// Alert is a single alert entry
type Alert struct {
	ID           int64     `json:"id"`
	Severity     string    `json:"severity"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	Acknowledged bool      `json:"acknowledged"`
}
