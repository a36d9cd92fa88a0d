// Package dataset runs the load pipeline (fetch, parse, join, simplify) and
// keeps the results in memory keyed by the exact input tuple.
package dataset

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/fetch"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/geo"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/service/filter"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/service/join"
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/table"
)

// Key is the exact input tuple a dataset is derived from. Two loads with the
// same key are the same dataset; anything else is a fresh pipeline run.
type Key struct {
	PolygonURL     string
	SpreadsheetURL string
	PrefixLength   int
	Simplify       bool
}

// Dataset is the stable product of pipeline steps 1-4. Filter and render
// operate on read-only views of Records and never mutate it.
type Dataset struct {
	ID        string
	Key       Key
	Records   []*model.JoinedRecord
	Index     *filter.CrossIndex
	CreatedAt time.Time

	// Raw-input samples for the preview panels.
	PolygonSample []PolygonPreview
	RowSample     []map[string]model.Scalar
	RowHeaders    []string
}

// PolygonPreview is one row of the polygon-file preview.
type PolygonPreview struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Vertices int    `json:"vertices"`
	Matched  bool   `json:"matched"`
}

// PreviewLimit caps how many raw input rows are kept for previews.
const PreviewLimit = 10

// Builder runs the pipeline.
type Builder struct {
	fetcher *fetch.Client
	mapping table.Mapping
	store   *Store
}

// NewBuilder wires a builder with its fetch client, column mapping and store.
func NewBuilder(fetcher *fetch.Client, mapping table.Mapping, store *Store) *Builder {
	return &Builder{fetcher: fetcher, mapping: mapping, store: store}
}

// Load returns the dataset for key, running the pipeline only when the exact
// tuple has not been loaded before. The cache is a performance optimization;
// an entry is valid only for the tuple that produced it.
func (b *Builder) Load(ctx context.Context, key Key) (*Dataset, error) {
	if ds, ok := b.store.GetByKey(key); ok {
		return ds, nil
	}

	ds, err := b.build(ctx, key)
	if err != nil {
		return nil, err
	}
	b.store.Put(ds)
	return ds, nil
}

func (b *Builder) build(ctx context.Context, key Key) (*Dataset, error) {
	polyBytes, err := b.fetcher.Fetch(ctx, key.PolygonURL, "polygon file")
	if err != nil {
		return nil, err
	}
	sheetBytes, err := b.fetcher.Fetch(ctx, key.SpreadsheetURL, "spreadsheet")
	if err != nil {
		return nil, err
	}

	polygons, err := geo.ParsePolygons(polyBytes)
	if err != nil {
		return nil, err
	}
	tbl, err := table.Parse(sheetBytes, b.mapping)
	if err != nil {
		return nil, err
	}

	records := join.Join(polygons, tbl.Rows, key.PrefixLength)
	geo.Simplify(records, key.Simplify)

	ds := &Dataset{
		ID:        uuid.New().String(),
		Key:       key,
		Records:   records,
		Index:     filter.BuildIndex(records),
		CreatedAt: time.Now(),
	}
	ds.PolygonSample = samplePolygons(polygons, records, key.PrefixLength)
	ds.RowHeaders = tbl.Headers
	ds.RowSample = sampleRows(tbl.Rows)
	return ds, nil
}

func samplePolygons(polygons []model.PolygonRecord, joined []*model.JoinedRecord, prefixLen int) []PolygonPreview {
	matched := make(map[string]bool, len(joined))
	for _, r := range joined {
		matched[r.Code] = true
	}

	n := len(polygons)
	if n > PreviewLimit {
		n = PreviewLimit
	}
	out := make([]PolygonPreview, 0, n)
	for i := 0; i < n; i++ {
		code := model.DeriveCode(polygons[i].Name, prefixLen)
		out = append(out, PolygonPreview{
			Name:     polygons[i].Name,
			Code:     code,
			Vertices: model.VertexCount(polygons[i].Geometry),
			Matched:  matched[code],
		})
	}
	return out
}

func sampleRows(rows []model.SpreadsheetRow) []map[string]model.Scalar {
	n := len(rows)
	if n > PreviewLimit {
		n = PreviewLimit
	}
	out := make([]map[string]model.Scalar, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rows[i].Attributes)
	}
	return out
}
