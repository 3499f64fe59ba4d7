package sources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadSpreadsheet(t *testing.T) {
	csv := `row,title,director,year,notes
12,The Hold Overs , Alexander Payne,2023,watched twice
,Past Lives,Celine Song,2023,
13,,Nobody,2020,blank title
14,Rustin,George C. Wolfe,, 
`
	rows, err := ReadSpreadsheet(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Failed to parse spreadsheet: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Row != 12 || first.Title != "The Hold Overs" || first.Director != "Alexander Payne" || first.Notes != "watched twice" {
		t.Errorf("Unexpected first row: %+v", first)
	}
	if rows[1].Row != 2 {
		t.Errorf("Expected positional row number 2, got %d", rows[1].Row)
	}
	if rows[2].Year != "" {
		t.Errorf("Expected empty year, got %q", rows[2].Year)
	}

	provenance := first.Provenance()
	if !provenance.Imported || provenance.SourceRow != 12 || provenance.SourceTitle != "The Hold Overs" || provenance.SourceYear != "2023" {
		t.Errorf("Unexpected provenance: %+v", provenance)
	}
}

func TestReadSpreadsheetWithExternalID(t *testing.T) {
	csv := "row,title,director,year,notes,tmdb_id\n1,Oppenheimer,Christopher Nolan,2023,,872585\n"
	rows, err := ReadSpreadsheet(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Failed to parse spreadsheet: %v", err)
	}
	if len(rows) != 1 || rows[0].TMDBID != 872585 {
		t.Errorf("Expected tmdb_id 872585, got %+v", rows)
	}
}

func TestReadArchive(t *testing.T) {
	data := `[
  {"ceremony_year": 2024, "category": "Best Picture", "nominees": ["Emma Thomas", " "], "movies": [{"title": "Oppenheimer", "tmdb_id": 872585, "imdb_id": "tt15398776"}], "winner": true},
  {"film_year": "1927/28", "category": "Outstanding Picture", "movies": [{"title": "Wings"}], "winner": true},
  {"film_year": 2022, "category": "Actor in a Leading Role", "nominees": ["Brendan Fraser"], "movies": [{"title": "The Whale", "tmdb_id": 0}, {"title": ""}]},
  {"category": "Unknown Year", "movies": [{"title": "Lost"}]}
]`
	records, err := ReadArchive(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to parse archive: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(records))
	}

	best := records[0]
	if best.CeremonyYear != 2024 || !best.Winner || len(best.Nominees) != 1 {
		t.Errorf("Unexpected first record: %+v", best)
	}
	if best.Movies[0].ExternalID == nil || *best.Movies[0].ExternalID != 872585 || best.Movies[0].SecondaryID != "tt15398776" {
		t.Errorf("Unexpected movie ref: %+v", best.Movies[0])
	}

	if records[1].CeremonyYear != 1929 {
		t.Errorf("Expected ceremony 1929 for film year 1927/28, got %d", records[1].CeremonyYear)
	}
	if records[2].CeremonyYear != 2023 {
		t.Errorf("Expected ceremony 2023 for numeric film year 2022, got %d", records[2].CeremonyYear)
	}
	if len(records[2].Movies) != 1 || records[2].Movies[0].ExternalID != nil {
		t.Errorf("Expected one movie without external id, got %+v", records[2].Movies)
	}
	if records[3].CeremonyYear != 0 {
		t.Errorf("Expected unresolved ceremony year, got %d", records[3].CeremonyYear)
	}
}

func TestReadArchiveRejectsMalformedJSON(t *testing.T) {
	if _, err := ReadArchive(strings.NewReader(`{"category":`)); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestReadArchiveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")
	if err := os.WriteFile(path, []byte(`[{"ceremony_year": 1973, "category": "Best Picture", "movies": [{"title": "The Godfather"}]}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadArchiveFile(path)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if len(records) != 1 || records[0].Movies[0].Title != "The Godfather" {
		t.Errorf("Unexpected records: %+v", records)
	}

	if _, err := ReadArchiveFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
