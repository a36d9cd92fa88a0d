// Package join matches polygon records to spreadsheet rows by farmer code.
package join

import (
	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// Join derives each polygon's code from the first prefixLen characters of its
// name and keeps only polygons whose code appears in the row set. Output
// order follows the input polygon order. When several rows share a farmer
// code the first row wins.
func Join(polygons []model.PolygonRecord, rows []model.SpreadsheetRow, prefixLen int) []*model.JoinedRecord {
	byCode := make(map[string]*model.SpreadsheetRow, len(rows))
	for i := range rows {
		if _, ok := byCode[rows[i].FarmerCode]; !ok {
			byCode[rows[i].FarmerCode] = &rows[i]
		}
	}

	out := make([]*model.JoinedRecord, 0, len(polygons))
	for i := range polygons {
		code := model.DeriveCode(polygons[i].Name, prefixLen)
		row, ok := byCode[code]
		if !ok {
			continue
		}
		out = append(out, &model.JoinedRecord{
			Name:     polygons[i].Name,
			Code:     code,
			Geometry: polygons[i].Geometry,
			Village:  row.Village,
			Group:    row.Group,
			Attrs:    row.Attributes,
		})
	}
	return out
}
