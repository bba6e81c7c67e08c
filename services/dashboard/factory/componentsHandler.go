package factory

import (
	"context"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/alerts"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/api"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/cache"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/config"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/process"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/settings"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/storage"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("factory")

type componentsHandler struct {
	store  Storage
	cacher cache.Cacher
	server Server
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	sqlitePath string,
	redisAddress string,
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	store, err := storage.NewSQLiteStorage(sqlitePath)
	if err != nil {
		return nil, err
	}

	connectTimeout := time.Duration(cfg.Cache.ConnectTimeoutInSeconds) * time.Second
	cacher := cache.NewCacher(context.Background(), redisAddress, connectTimeout)

	ch := &componentsHandler{
		store:  store,
		cacher: cacher,
	}

	ch.server, err = createServer(store, cacher, serviceKeyApi, cfg)
	if err != nil {
		ch.Close()
		return nil, err
	}

	return ch, nil
}

func createServer(store Storage, cacher cache.Cacher, serviceKeyApi string, cfg config.Config) (Server, error) {
	metricsProcessor, err := process.NewMetricsProcessor(process.ArgsMetricsProcessor{
		Storage:         store,
		Cacher:          cacher,
		TimeHandler:     time.Now,
		MaxResults:      cfg.Query.MaxResults,
		TopGroups:       cfg.Query.TopGroups,
		MetricsListTTL:  secondsToDuration(cfg.Cache.MetricsListTTLInSeconds),
		SummaryTTL:      secondsToDuration(cfg.Cache.SummaryTTLInSeconds),
		TypeOverviewTTL: secondsToDuration(cfg.Cache.TypeOverviewTTLInSeconds),
	})
	if err != nil {
		return nil, err
	}

	dashboardProcessor, err := process.NewDashboardProcessor(process.ArgsDashboardProcessor{
		Storage:     store,
		Cacher:      cacher,
		TimeHandler: time.Now,
		ListTTL:     secondsToDuration(cfg.Cache.DashboardConfigsTTLInSeconds),
	})
	if err != nil {
		return nil, err
	}

	settingsStore, err := settings.NewFileStore(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}

	alertsProvider, err := alerts.NewStaticProvider(time.Now)
	if err != nil {
		return nil, err
	}

	server, err := api.NewServer(api.ArgsWebServer{
		ServiceKeyApi:      serviceKeyApi,
		ListenAddress:      cfg.ListenAddress,
		StaticDir:          cfg.StaticDir,
		EnablePprof:        cfg.EnablePprof,
		MetricsProcessor:   metricsProcessor,
		DashboardProcessor: dashboardProcessor,
		SettingsStore:      settingsStore,
		AlertsProvider:     alertsProvider,
		GeneralHandler:     api.CORSMiddleware,
	})
	if err != nil {
		return nil, err
	}

	return server, nil
}

func secondsToDuration(seconds uint32) time.Duration {
	return time.Duration(seconds) * time.Second
}

// GetStore returns the storage component
func (ch *componentsHandler) GetStore() Storage {
	return ch.store
}

// GetCacher returns the cache component
func (ch *componentsHandler) GetCacher() cache.Cacher {
	return ch.cacher
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.server.Start()
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	if ch.server != nil {
		err := ch.server.Close()
		if err != nil {
			log.Warn("failed to close the server", "error", err)
		}
	}

	err := ch.cacher.Close()
	if err != nil {
		log.Warn("failed to close the cache", "error", err)
	}

	err = ch.store.Close()
	if err != nil {
		log.Warn("failed to close the storage", "error", err)
	}
}
