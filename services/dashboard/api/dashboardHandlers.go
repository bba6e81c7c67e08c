package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *server) handleListDashboards(c *gin.Context) {
	configs, err := s.dashboardProcessor.ListConfigs(c.Request.Context())
	if err != nil {
		respondError(c, "list dashboard configs", err)
		return
	}

	c.JSON(http.StatusOK, configs)
}

func (s *server) handleGetDashboard(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := s.dashboardProcessor.GetConfig(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get dashboard config", err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (s *server) handleGetDefaultDashboard(c *gin.Context) {
	result, err := s.dashboardProcessor.GetDefault(c.Request.Context())
	if err != nil {
		respondError(c, "get default dashboard config", err)
		return
	}
	if result.IsSynthetic() {
		log.Trace("no stored default dashboard config, serving the built-in one")
	}

	c.JSON(http.StatusOK, result.Config)
}

func (s *server) handleCreateDashboard(c *gin.Context) {
	req, ok := bindDashboardConfig(c)
	if !ok {
		return
	}

	created, err := s.dashboardProcessor.CreateConfig(c.Request.Context(), req.toConfig())
	if err != nil {
		respondError(c, "create dashboard config", err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/dashboard/configs/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (s *server) handleUpdateDashboard(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, ok := bindDashboardConfig(c)
	if !ok {
		return
	}

	updated, err := s.dashboardProcessor.UpdateConfig(c.Request.Context(), id, req.toConfig())
	if err != nil {
		respondError(c, "update dashboard config", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (s *server) handleDeleteDashboard(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = s.dashboardProcessor.DeleteConfig(c.Request.Context(), id)
	if err != nil {
		respondError(c, "delete dashboard config", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *server) handleSetDefaultDashboard(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := s.dashboardProcessor.SetDefault(c.Request.Context(), id)
	if err != nil {
		respondError(c, "set default dashboard config", err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func bindDashboardConfig(c *gin.Context) (dashboardConfigRequest, bool) {
	var req dashboardConfigRequest
	if !bindJSON(c, &req) {
		return dashboardConfigRequest{}, false
	}

	fields := req.validateDocuments()
	if len(fields) > 0 {
		respondInvalidFields(c, fields)
		return dashboardConfigRequest{}, false
	}

	return req, true
}
