package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iulianpascalau/metrics-dashboard/services/dashboard/common"
)

func (s *server) handleGetSettings(c *gin.Context) {
	settings, err := s.settingsStore.Load()
	if err != nil {
		respondError(c, "load settings", err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// handleSaveSettings replaces the whole settings document. Fields missing from the body take the default values.
func (s *server) handleSaveSettings(c *gin.Context) {
	settings := common.DefaultApplicationSettings()
	if !bindJSONObject(c, &settings) {
		return
	}

	err := s.settingsStore.Save(settings)
	if err != nil {
		respondError(c, "save settings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully."})
}
