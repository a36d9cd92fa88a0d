package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/geo"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/service/dataset"
)

// LoadRequest asks for a dataset to be built from two source URLs. Optional
// fields default from configuration.
type LoadRequest struct {
	PolygonURL     string `json:"polygonUrl"`
	SpreadsheetURL string `json:"spreadsheetUrl"`
	PrefixLength   *int   `json:"prefixLength"`
	Simplify       *bool  `json:"simplify"`
}

// DatasetSummary is the response for a loaded dataset.
type DatasetSummary struct {
	ID           string         `json:"id"`
	Count        int            `json:"count"`
	PrefixLength int            `json:"prefixLength"`
	Simplified   bool           `json:"simplified"`
	Villages     []string       `json:"villages"`
	Groups       []string       `json:"groups"`
	Bounds       model.Viewport `json:"bounds"`
}

// LoadDataset runs the pipeline for the requested input tuple, reusing a
// cached dataset when the exact tuple was loaded before.
// POST /api/datasets
func (h *Handler) LoadDataset(c *gin.Context) {
	var req LoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.PolygonURL = strings.TrimSpace(req.PolygonURL)
	req.SpreadsheetURL = strings.TrimSpace(req.SpreadsheetURL)
	if req.PolygonURL == "" {
		req.PolygonURL = h.cfg.Data.PolygonURL
	}
	if req.SpreadsheetURL == "" {
		req.SpreadsheetURL = h.cfg.Data.SpreadsheetURL
	}
	if req.PolygonURL == "" || req.SpreadsheetURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both polygonUrl and spreadsheetUrl are required"})
		return
	}

	key := dataset.Key{
		PolygonURL:     req.PolygonURL,
		SpreadsheetURL: req.SpreadsheetURL,
		PrefixLength:   h.cfg.Viewer.PrefixLength,
		Simplify:       h.cfg.Viewer.Simplify,
	}
	if req.PrefixLength != nil && *req.PrefixLength > 0 {
		key.PrefixLength = *req.PrefixLength
	}
	if req.Simplify != nil {
		key.Simplify = *req.Simplify
	}

	ds, err := h.builder.Load(c.Request.Context(), key)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, summarize(ds))
}

// GetDataset returns the summary of a loaded dataset.
// GET /api/datasets/:id
func (h *Handler) GetDataset(c *gin.Context) {
	ds, err := h.store.Get(c.Param("id"))
	if err != nil {
		notFound(c, err)
		return
	}
	c.JSON(http.StatusOK, summarize(ds))
}

// GetOptions returns the cross-filtered village and group option lists.
// GET /api/datasets/:id/options?village=&group=
func (h *Handler) GetOptions(c *gin.Context) {
	ds, err := h.store.Get(c.Param("id"))
	if err != nil {
		notFound(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"villages": ds.Index.VillagesFor(c.Query("group")),
		"groups":   ds.Index.GroupsFor(c.Query("village")),
	})
}

// GetPreview returns a sample of one raw input. The sample size is capped at
// build time; limit can only shrink it further.
// GET /api/datasets/:id/preview?source=polygons|rows&limit=
func (h *Handler) GetPreview(c *gin.Context) {
	ds, err := h.store.Get(c.Param("id"))
	if err != nil {
		notFound(c, err)
		return
	}

	limit := dataset.PreviewLimit
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n < limit {
		limit = n
	}

	switch c.DefaultQuery("source", "polygons") {
	case "polygons":
		polys := ds.PolygonSample
		if len(polys) > limit {
			polys = polys[:limit]
		}
		c.JSON(http.StatusOK, gin.H{"polygons": polys})
	case "rows":
		rows := ds.RowSample
		if len(rows) > limit {
			rows = rows[:limit]
		}
		c.JSON(http.StatusOK, gin.H{"headers": ds.RowHeaders, "rows": rows})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "source must be polygons or rows"})
	}
}

func summarize(ds *dataset.Dataset) DatasetSummary {
	return DatasetSummary{
		ID:           ds.ID,
		Count:        len(ds.Records),
		PrefixLength: ds.Key.PrefixLength,
		Simplified:   ds.Key.Simplify,
		Villages:     ds.Index.Villages(),
		Groups:       ds.Index.Groups(),
		Bounds:       geo.BoundsFor(ds.Records),
	}
}

func notFound(c *gin.Context, err error) {
	if errors.Is(err, dataset.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
