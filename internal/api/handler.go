// Package api exposes the viewer's JSON API.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/config"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/service/dataset"
)

// Handler holds the API dependencies.
type Handler struct {
	cfg     *config.AppConfig
	builder *dataset.Builder
	store   *dataset.Store
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.AppConfig, builder *dataset.Builder, store *dataset.Store) *Handler {
	return &Handler{cfg: cfg, builder: builder, store: store}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/datasets", h.LoadDataset)
	router.GET("/datasets/:id", h.GetDataset)
	router.GET("/datasets/:id/map", h.GetMap)
	router.GET("/datasets/:id/options", h.GetOptions)
	router.GET("/datasets/:id/preview", h.GetPreview)
}

// fail converts a pipeline error to a JSON response. Fetch failures report as
// bad gateway, parse failures as unprocessable input, the rest as internal.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch model.KindOf(err) {
	case model.ErrFetch:
		status = http.StatusBadGateway
	case model.ErrParse:
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
