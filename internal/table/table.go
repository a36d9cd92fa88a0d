// Package table parses the spreadsheet file (XLSX or CSV) into rows with a
// normalized farmer code and typed attribute values.
package table

import (
	"bytes"
	"errors"
	"strings"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// Table is the parsed spreadsheet: trimmed headers plus data rows.
type Table struct {
	Headers []string
	Rows    []model.SpreadsheetRow
}

// Parse decodes spreadsheet bytes. XLSX files are recognized by their zip
// magic; anything else is read as CSV.
func Parse(data []byte, mapping Mapping) (*Table, error) {
	var (
		rows [][]string
		err  error
	)
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		rows, err = readXLSX(data)
	} else {
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, model.ParseError("spreadsheet", err)
	}
	if len(rows) == 0 {
		return nil, model.ParseError("spreadsheet", errors.New("empty spreadsheet"))
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	cols, err := resolveColumns(header, mapping)
	if err != nil {
		return nil, model.ParseError("spreadsheet", err)
	}

	out := make([]model.SpreadsheetRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		code := strings.ToUpper(strings.TrimSpace(cell(row, cols.farmerCode)))
		if code == "" {
			continue // blank formatting rows
		}

		attrs := make(map[string]model.Scalar, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			attrs[h] = model.ParseScalar(cell(row, i))
		}

		out = append(out, model.SpreadsheetRow{
			FarmerCode: code,
			Village:    strings.TrimSpace(cell(row, cols.village)),
			Group:      strings.TrimSpace(cell(row, cols.group)),
			Attributes: attrs,
		})
	}

	return &Table{Headers: header, Rows: out}, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
