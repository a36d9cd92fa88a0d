package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports server health and the configured defaults so the UI
// can pre-fill its inputs.
type StatusResponse struct {
	Ready                 bool   `json:"ready"`
	LoadedDatasets        int    `json:"loadedDatasets"`
	DefaultPolygonURL     string `json:"defaultPolygonUrl"`
	DefaultSpreadsheetURL string `json:"defaultSpreadsheetUrl"`
	PrefixLength          int    `json:"prefixLength"`
	SimplifyDefault       bool   `json:"simplifyDefault"`
}

// GetStatus returns server status.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Ready:                 true,
		LoadedDatasets:        h.store.Count(),
		DefaultPolygonURL:     h.cfg.Data.PolygonURL,
		DefaultSpreadsheetURL: h.cfg.Data.SpreadsheetURL,
		PrefixLength:          h.cfg.Viewer.PrefixLength,
		SimplifyDefault:       h.cfg.Viewer.Simplify,
	})
}
