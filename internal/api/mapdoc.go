package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/service/filter"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/service/render"
)

// MapResponse wraps the rendered map document with filter bookkeeping: the
// total joined count and whether the empty-filter fallback kicked in.
type MapResponse struct {
	*render.MapDocument
	Total    int  `json:"total"`
	Fallback bool `json:"fallback"`
}

// GetMap filters the dataset and renders the map document. When an active
// filter matches nothing, the full joined set is rendered instead of an empty
// map and the response is flagged as a fallback.
// GET /api/datasets/:id/map?code=&village=&group=&display=simplified|original
func (h *Handler) GetMap(c *gin.Context) {
	ds, err := h.store.Get(c.Param("id"))
	if err != nil {
		notFound(c, err)
		return
	}

	opts := filter.Options{
		CodePrefix: c.Query("code"),
		Village:    c.Query("village"),
		Group:      c.Query("group"),
	}
	records := filter.Apply(ds.Records, opts)

	fallback := false
	if len(records) == 0 && !opts.IsEmpty() && len(ds.Records) > 0 {
		records = ds.Records
		fallback = true
	}

	mode := render.DisplaySimplified
	if c.Query("display") == string(render.DisplayOriginal) {
		mode = render.DisplayOriginal
	}

	doc := render.Render(records, h.cfg.Viewer.PopupFields, mode)
	c.JSON(http.StatusOK, MapResponse{
		MapDocument: doc,
		Total:       len(ds.Records),
		Fallback:    fallback,
	})
}
