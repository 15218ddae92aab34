// Package ingest reads clinic visit exports (CSV or saved HTML tables) into
// the raw row form the normalizer consumes.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"clinic_analytics/pkg/core/record"
)

// ReadCSV parses a visit export where the first row is the header. Header
// cells are trimmed and upper-cased so exports with inconsistent casing still
// map onto the expected keys. Rows shorter than the header are padded with
// empty strings.
func ReadCSV(r io.Reader) ([]record.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports sometimes have ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return []record.RawRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToUpper(strings.TrimSpace(h))
	}

	rows := make([]record.RawRow, 0)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+2, err)
		}
		row := make(record.RawRow, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			if i < len(fields) {
				row[key] = strings.TrimSpace(fields[i])
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
