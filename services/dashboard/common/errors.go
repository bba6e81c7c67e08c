package common

import "errors"

// ErrMetricNotFound signals that the requested metric record does not exist
var ErrMetricNotFound = errors.New("metric not found")

// ErrDashboardNotFound signals that the requested dashboard config does not exist
var ErrDashboardNotFound = errors.New("dashboard config not found")

// ErrNoDefaultDashboard signals that no stored dashboard config is marked as default
var ErrNoDefaultDashboard = errors.New("no default dashboard config")

// ErrDefaultDashboardDeletion signals an attempt to delete the current default dashboard config
var ErrDefaultDashboardDeletion = errors.New("cannot delete the default dashboard configuration")

// ErrInvalidDistributionDimension signals an unknown distribution grouping
var ErrInvalidDistributionDimension = errors.New("invalid distribution dimension")

// ErrNilStorage signals that a nil storage was provided
var ErrNilStorage = errors.New("nil storage")

// ErrNilCacher signals that a nil cacher was provided
var ErrNilCacher = errors.New("nil cacher")

// ErrNilAlertsProvider signals that a nil alerts provider was provided
var ErrNilAlertsProvider = errors.New("nil alerts provider")

// ErrNilSettingsStore signals that a nil settings store was provided
var ErrNilSettingsStore = errors.New("nil settings store")

// ErrNilMetricsProcessor signals that a nil metrics processor was provided
var ErrNilMetricsProcessor = errors.New("nil metrics processor")

// ErrNilDashboardProcessor signals that a nil dashboard processor was provided
var ErrNilDashboardProcessor = errors.New("nil dashboard processor")

// ErrNilTimeHandler signals that a nil time handler function was provided
var ErrNilTimeHandler = errors.New("nil time handler")

// ErrInvalidMaxResults signals that the result cap is not a positive number
var ErrInvalidMaxResults = errors.New("invalid max results value")

// ErrInvalidTopGroups signals that the number of distribution groups is not a positive number
var ErrInvalidTopGroups = errors.New("invalid top groups value")
