package factory

import "github.com/iulianpascalau/metrics-dashboard/services/dashboard/process"

// Server defines the operation of an entity able to serve requests
type Server interface {
	Start()
	Address() string
	Close() error
}

// Storage defines the persistence component shared by the processors
type Storage interface {
	process.MetricsStorage
	process.DashboardStorage
	Close() error
}
