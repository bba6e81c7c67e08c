package engine

import (
	"context"
	"time"

	"github.com/iulianpascalau/metrics-dashboard/services/agent/config"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

const (
	pollTimeout          = 30 * time.Second
	defaultReportTimeout = 10 * time.Second
)

var log = logger.GetOrCreate("engine")

// agentEngine orchestrates polling and reporting at configured intervals
type agentEngine struct {
	config        config.Config
	poller        Poller
	reporter      Reporter
	reportTimeout time.Duration
}

// NewAgentEngine creates a new engine instance
func NewAgentEngine(cfg config.Config, p Poller, r Reporter) (*agentEngine, error) {
	if check.IfNil(p) {
		return nil, errNilPoller
	}
	if check.IfNil(r) {
		return nil, errNilReporter
	}

	reportTimeout := defaultReportTimeout
	if cfg.ReportTimeoutInSeconds > 0 {
		// one request per polled metric plus the heartbeat
		reportTimeout = time.Duration(cfg.ReportTimeoutInSeconds) * time.Second * time.Duration(len(cfg.Endpoints)+1)
	}

	return &agentEngine{
		config:        cfg,
		poller:        p,
		reporter:      r,
		reportTimeout: reportTimeout,
	}, nil
}

// Process will poll all endpoints and push the collected values to the dashboard
func (e *agentEngine) Process(ctx context.Context) {
	log.Debug("waking up to poll endpoints", "count", len(e.config.Endpoints))

	pollCtx, cancelPoll := context.WithTimeout(ctx, pollTimeout)
	defer cancelPoll()
	results := e.poller.PollAll(pollCtx, e.config.Endpoints)

	log.Debug("finished polling", "successful_results", len(results))

	reportCtx, cancelReport := context.WithTimeout(ctx, e.reportTimeout)
	defer cancelReport()

	err := e.reporter.Report(reportCtx, results)
	if err != nil {
		log.Warn("failed to report metrics, they will be discarded", "error", err)
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *agentEngine) IsInterfaceNil() bool {
	return e == nil
}
