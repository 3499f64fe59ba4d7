package sources

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/utils"
)

type archiveMovie struct {
	Title  string `json:"title"`
	TMDBID *int64 `json:"tmdb_id,omitempty"`
	IMDBID string `json:"imdb_id,omitempty"`
}

type archiveEntry struct {
	CeremonyYear int            `json:"ceremony_year,omitempty"`
	FilmYear     flexibleYear   `json:"film_year,omitempty"`
	Category     string         `json:"category"`
	Nominees     []string       `json:"nominees"`
	Movies       []archiveMovie `json:"movies"`
	Winner       bool           `json:"winner"`
}

// flexibleYear accepts a film year written as a JSON number or string ("1927/28")
type flexibleYear string

func (y *flexibleYear) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*y = flexibleYear(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("film_year must be a string or number: %w", err)
	}
	*y = flexibleYear(strconv.Itoa(n))
	return nil
}

// ReadArchive parses an award-archive JSON array into nomination records, in source order.
// A record whose ceremony year cannot be resolved keeps CeremonyYear 0 so the importer can count it failed.
func ReadArchive(r io.Reader) ([]models.NominationRecord, error) {
	var entries []archiveEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse award archive: %w", err)
	}

	records := make([]models.NominationRecord, 0, len(entries))
	for _, entry := range entries {
		record := models.NominationRecord{
			CeremonyYear: entry.CeremonyYear,
			Category:     strings.TrimSpace(entry.Category),
			Winner:       entry.Winner,
		}
		if record.CeremonyYear == 0 && entry.FilmYear != "" {
			if year, err := utils.CeremonyYearFromFilmYear(string(entry.FilmYear)); err == nil {
				record.CeremonyYear = year
			}
		}

		for _, name := range entry.Nominees {
			if name = strings.TrimSpace(name); name != "" {
				record.Nominees = append(record.Nominees, name)
			}
		}
		for _, movie := range entry.Movies {
			title := strings.TrimSpace(movie.Title)
			if title == "" {
				continue
			}
			ref := models.MovieRef{Title: title, SecondaryID: strings.TrimSpace(movie.IMDBID)}
			if movie.TMDBID != nil && *movie.TMDBID > 0 {
				ref.ExternalID = movie.TMDBID
			}
			record.Movies = append(record.Movies, ref)
		}

		records = append(records, record)
	}

	return records, nil
}

// ReadArchiveFile parses the award archive at path
func ReadArchiveFile(path string) ([]models.NominationRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open award archive: %w", err)
	}
	defer file.Close()

	return ReadArchive(file)
}
