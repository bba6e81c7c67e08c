package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

func (s *server) handleSaveMetric(c *gin.Context) {
	var req metricRequest
	if !bindJSON(c, &req) {
		return
	}

	saved, err := s.metricsProcessor.SaveMetric(c.Request.Context(), req.toRecord())
	if err != nil {
		respondError(c, "save metric", err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/metrics/%d", saved.ID))
	c.JSON(http.StatusCreated, saved)
}

func (s *server) handleQueryMetrics(c *gin.Context) {
	filter, err := parseMetricFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := s.metricsProcessor.QueryMetrics(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "query metrics", err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (s *server) handleGetMetric(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := s.metricsProcessor.GetMetric(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get metric", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *server) handleGetSummary(c *gin.Context) {
	summary, err := s.metricsProcessor.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, "get summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *server) handleGetTypeOverview(c *gin.Context) {
	overview, err := s.metricsProcessor.GetTypeOverview(c.Request.Context())
	if err != nil {
		respondError(c, "get type overview", err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (s *server) handleGetDistribution(c *gin.Context) {
	dimension := common.DistributionDimension(c.Param("dimension"))

	items, err := s.metricsProcessor.GetDistribution(c.Request.Context(), dimension)
	if err != nil {
		respondError(c, "get distribution", err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (s *server) handleGetAlertsSummary(c *gin.Context) {
	summary, err := s.alertsProvider.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, "get alerts summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *server) handleGetRecentAlerts(c *gin.Context) {
	alerts, err := s.alertsProvider.GetRecent(c.Request.Context())
	if err != nil {
		respondError(c, "get recent alerts", err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// respondError maps the known errors to client responses. Anything else is logged and answered with a
// generic message.
func respondError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, common.ErrMetricNotFound), errors.Is(err, common.ErrDashboardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrDefaultDashboardDeletion), errors.Is(err, common.ErrInvalidDistributionDimension):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", "operation", operation, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
