package common

import "time"

// MetricFilter holds the optional predicates of a metrics query. Empty strings and nil dates mean "not filtered".
type MetricFilter struct {
	ServerName  string     // substring match
	Environment string     // exact match
	MetricType  string     // substring match
	StartDate   *time.Time // inclusive
	EndDate     *time.Time // inclusive
}

// IsEmpty returns true if no predicate is set
func (f MetricFilter) IsEmpty() bool {
	return len(f.ServerName) == 0 &&
		len(f.Environment) == 0 &&
		len(f.MetricType) == 0 &&
		f.StartDate == nil &&
		f.EndDate == nil
}

// DistributionDimension selects the column a distribution is grouped by
type DistributionDimension string

const (
	// DistributionByEnvironment groups the metrics by environment
	DistributionByEnvironment DistributionDimension = "environment"
	// DistributionByType groups the metrics by metric type
	DistributionByType DistributionDimension = "type"
	// DistributionByServer groups the metrics by server name
	DistributionByServer DistributionDimension = "server"
)

// UnknownGroupName is the label used for empty grouping keys
const UnknownGroupName = "Unknown"
