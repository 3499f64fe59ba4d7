package models

import (
	"strconv"
	"time"
)

// ImportProvenance records the spreadsheet row a collection movie came from
// All fields are set together; Imported is false for movies added any other way
type ImportProvenance struct {
	Imported       bool
	SourceRow      int
	SourceTitle    string
	SourceDirector string
	SourceYear     string
	Notes          string
}

// CollectionMovie is a movie recorded in a user's library
type CollectionMovie struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        string `gorm:"uniqueIndex:idx_collection_user_external;not null"`
	ExternalID    int64  `gorm:"uniqueIndex:idx_collection_user_external;not null"`
	Title         string `gorm:"not null"`
	OriginalTitle string
	Director      string
	ReleaseDate   string // YYYY-MM-DD as reported by the metadata provider

	Provenance     ImportProvenance `gorm:"embedded;embeddedPrefix:import_"`
	ApprovalStatus ApprovalStatus   `gorm:"index;not null;default:pending"`

	Analysis *MatchAnalysis `gorm:"foreignKey:CollectionMovieID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReleaseYear returns the year part of ReleaseDate, 0 when unknown
func (m *CollectionMovie) ReleaseYear() int {
	return YearOfDate(m.ReleaseDate)
}

// MatchAnalysis is the match-quality assessment of a spreadsheet-imported collection movie
type MatchAnalysis struct {
	ID                 uint     `gorm:"primaryKey"`
	CollectionMovieID  uint     `gorm:"uniqueIndex;not null"`
	Confidence         int      `gorm:"index"` // 0-100
	Severity           Severity `gorm:"index"`
	Mismatches         []string `gorm:"serializer:json"`
	TitleSimilarity    *int
	DirectorSimilarity *int
	YearDifference     *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// YearOfDate extracts the year from a YYYY-MM-DD (or YYYY) date, 0 when absent or invalid
func YearOfDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}
