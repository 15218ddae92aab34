package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"clinic_analytics/pkg/core/record"
)

// Snapshot is one loaded dataset with provenance, so concurrent API handlers
// can tell which upload they are serving.
type Snapshot struct {
	ID       uuid.UUID            `json:"id"`
	Source   string               `json:"source"` // file path or upload name
	LoadedAt time.Time            `json:"loadedAt"`
	Records  []record.VisitRecord `json:"records"`
}

// NewSnapshot stamps already-normalized records with provenance.
func NewSnapshot(source string, records []record.VisitRecord) Snapshot {
	return Snapshot{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: time.Now(),
		Records:  records,
	}
}

// LoadFile reads a visit export from disk, dispatching on extension: .html
// and .htm go through the table extractor, everything else is treated as CSV.
func LoadFile(path string, markers record.ScoreMarkers) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var rows []record.RawRow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		rows, err = ReadHTMLTable(f)
	default:
		rows, err = ReadCSV(f)
	}
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		ID:       uuid.New(),
		Source:   path,
		LoadedAt: time.Now(),
		Records:  record.NormalizeWith(rows, markers),
	}, nil
}
