// Package geo parses polygon files (KML or GeoJSON) into WGS84 polygon
// records and provides geometry simplification and viewport computation.
package geo

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// ParsePolygons decodes a polygon file. The format is sniffed from the
// content: a JSON document is treated as GeoJSON, an XML document as KML.
// Records without a usable name get their ordinal index as the name.
func ParsePolygons(data []byte) ([]model.PolygonRecord, error) {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}), " \t\r\n")
	if len(trimmed) == 0 {
		return nil, model.ParseError("polygon file", errors.New("empty file"))
	}

	var (
		records []model.PolygonRecord
		err     error
	)
	switch trimmed[0] {
	case '{', '[':
		records, err = parseGeoJSON(trimmed)
	case '<':
		records, err = parseKML(trimmed)
	default:
		err = errors.New("unrecognized polygon file format (expected KML or GeoJSON)")
	}
	if err != nil {
		return nil, model.ParseError("polygon file", err)
	}

	for i := range records {
		if strings.TrimSpace(records[i].Name) == "" {
			records[i].Name = strconv.Itoa(i)
		}
	}
	return records, nil
}
