package sources

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amaumene/reelarr/internal/models"
	"github.com/gocarina/gocsv"
)

// SpreadsheetRow is one row of a collection spreadsheet export
type SpreadsheetRow struct {
	Row      int    `csv:"row"`
	Title    string `csv:"title"`
	Director string `csv:"director"`
	Year     string `csv:"year"`
	Notes    string `csv:"notes"`
	// TMDBID is optional; rows without one are resolved by search
	TMDBID int64 `csv:"tmdb_id,omitempty"`
}

// Provenance converts the row into collection import-provenance fields
func (r SpreadsheetRow) Provenance() models.ImportProvenance {
	return models.ImportProvenance{
		Imported:       true,
		SourceRow:      r.Row,
		SourceTitle:    r.Title,
		SourceDirector: r.Director,
		SourceYear:     r.Year,
		Notes:          r.Notes,
	}
}

// ReadSpreadsheet parses a CSV export with a row,title,director,year,notes header.
// Rows without a row number are numbered by position, rows without a title are dropped.
func ReadSpreadsheet(r io.Reader) ([]SpreadsheetRow, error) {
	entries := make([]SpreadsheetRow, 0)
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse spreadsheet: %w", err)
	}

	rows := make([]SpreadsheetRow, 0, len(entries))
	for i, entry := range entries {
		entry.Title = strings.TrimSpace(entry.Title)
		entry.Director = strings.TrimSpace(entry.Director)
		entry.Year = strings.TrimSpace(entry.Year)
		entry.Notes = strings.TrimSpace(entry.Notes)
		if entry.Title == "" {
			continue
		}
		if entry.Row <= 0 {
			entry.Row = i + 1
		}
		rows = append(rows, entry)
	}

	return rows, nil
}

// ReadSpreadsheetFile parses the spreadsheet export at path
func ReadSpreadsheetFile(path string) ([]SpreadsheetRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func(c io.Closer) {
		_ = c.Close()
	}(file)

	return ReadSpreadsheet(file)
}
