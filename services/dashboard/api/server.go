package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

const (
	apiKeyHeader    = "X-Api-Key"
	shutdownTimeout = 5 * time.Second
)

var log = logger.GetOrCreate("api")

type server struct {
	router             *gin.Engine
	httpServer         *http.Server
	metricsProcessor   MetricsProcessor
	dashboardProcessor DashboardProcessor
	settingsStore      SettingsStore
	alertsProvider     AlertsProvider
	serviceKey         string
	listenAddr         string
	staticDir          string
	generalHandler     func(http.Handler) http.Handler
	wg                 sync.WaitGroup
}

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ServiceKeyApi      string
	ListenAddress      string
	StaticDir          string
	EnablePprof        bool
	MetricsProcessor   MetricsProcessor
	DashboardProcessor DashboardProcessor
	SettingsStore      SettingsStore
	AlertsProvider     AlertsProvider
	GeneralHandler     func(http.Handler) http.Handler
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.MetricsProcessor) {
		return nil, common.ErrNilMetricsProcessor
	}
	if check.IfNil(args.DashboardProcessor) {
		return nil, common.ErrNilDashboardProcessor
	}
	if check.IfNil(args.SettingsStore) {
		return nil, common.ErrNilSettingsStore
	}
	if check.IfNil(args.AlertsProvider) {
		return nil, common.ErrNilAlertsProvider
	}
	if args.GeneralHandler == nil {
		return nil, errNilHTTPHandler
	}

	useJSONFieldNames()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())

	s := &server{
		router:             router,
		metricsProcessor:   args.MetricsProcessor,
		dashboardProcessor: args.DashboardProcessor,
		settingsStore:      args.SettingsStore,
		alertsProvider:     args.AlertsProvider,
		serviceKey:         args.ServiceKeyApi,
		listenAddr:         args.ListenAddress,
		staticDir:          args.StaticDir,
		generalHandler:     args.GeneralHandler,
	}

	s.setupRoutes()
	if args.EnablePprof {
		log.Info("profiling routes enabled", "prefix", pprof.DefaultPrefix)
		pprof.Register(router)
	}

	return s, nil
}

func (s *server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/health", s.handleHealth)

	metrics := api.Group("/metrics")
	{
		metrics.POST("", s.authAPIKey(), s.handleSaveMetric)
		metrics.GET("", s.handleQueryMetrics)
		metrics.GET("/summary", s.handleGetSummary)
		metrics.GET("/overview", s.handleGetTypeOverview)
		metrics.GET("/breakdown", s.handleGetTypeOverview)
		metrics.GET("/distribution/:dimension", s.handleGetDistribution)
		metrics.GET("/alerts/summary", s.handleGetAlertsSummary)
		metrics.GET("/recent-alerts", s.handleGetRecentAlerts)
		metrics.GET("/:id", s.handleGetMetric)
	}

	dashboard := api.Group("/dashboard/configs")
	{
		dashboard.GET("", s.handleListDashboards)
		dashboard.POST("", s.handleCreateDashboard)
		dashboard.GET("/default", s.handleGetDefaultDashboard)
		dashboard.GET("/:id", s.handleGetDashboard)
		dashboard.PUT("/:id", s.handleUpdateDashboard)
		dashboard.DELETE("/:id", s.handleDeleteDashboard)
		dashboard.POST("/:id/set-default", s.handleSetDefaultDashboard)
	}

	api.GET("/settings", s.handleGetSettings)
	api.POST("/settings", s.handleSaveSettings)

	// Serve static files from the frontend build if configured
	if s.staticDir != "" {
		log.Info("serving static files", "dir", s.staticDir)
		s.router.Static("/css", path.Join(s.staticDir, "css"))
		s.router.Static("/js", path.Join(s.staticDir, "js"))
		s.router.Static("/lib", path.Join(s.staticDir, "lib"))
		s.router.StaticFile("/favicon.ico", path.Join(s.staticDir, "favicon.ico"))
	}

	s.router.NoRoute(func(c *gin.Context) {
		// unknown /api routes never fall back to the frontend
		if strings.HasPrefix(c.Request.URL.Path, "/api") || s.staticDir == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
			return
		}

		c.File(path.Join(s.staticDir, "index.html"))
	})
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:              s.listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		errServe := s.httpServer.Serve(ln)
		if errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			log.Error("http server failed", "error", errServe)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		err := s.httpServer.Shutdown(ctx)
		if err != nil {
			return err
		}
	}
	s.wg.Wait()

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *server) IsInterfaceNil() bool {
	return s == nil
}

// authAPIKey guards the ingestion endpoint when a service key is configured
func (s *server) authAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(s.serviceKey) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.serviceKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
