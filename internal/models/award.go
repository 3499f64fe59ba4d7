package models

import "time"

// MovieRef is a movie referenced by a nomination record
type MovieRef struct {
	Title       string
	ExternalID  *int64 // TMDB ID, nil when the source has none
	SecondaryID string // IMDB ID
}

// NominationRecord is one award-category nomination in one ceremony year, as parsed from a source
type NominationRecord struct {
	CeremonyYear int
	Category     string
	Nominees     []string
	Movies       []MovieRef
	Winner       bool
}

// CanonicalCategory is a deduplicated award category
type CanonicalCategory struct {
	ID    uint          `gorm:"primaryKey"`
	Key   string        `gorm:"uniqueIndex;not null"`
	Name  string        `gorm:"not null"`
	Group CategoryGroup `gorm:"column:category_group;index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanonicalNomination is a persisted nomination
// MovieID is 0 and NomineeName is empty when absent so the natural key stays unique in SQL
type CanonicalNomination struct {
	ID           uint   `gorm:"primaryKey"`
	CeremonyYear int    `gorm:"uniqueIndex:idx_nomination_natural_key;not null"`
	CategoryID   uint   `gorm:"uniqueIndex:idx_nomination_natural_key;not null"`
	MovieID      uint   `gorm:"uniqueIndex:idx_nomination_natural_key"`
	NomineeName  string `gorm:"uniqueIndex:idx_nomination_natural_key"`
	Winner       bool

	Category CanonicalCategory `gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AwardLinkedMovie is a movie known through award records
type AwardLinkedMovie struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"index;not null"`
	ExternalID   *int64 `gorm:"uniqueIndex"` // Unique when present
	SecondaryID  string
	CeremonyYear int // First ceremony the movie appeared in

	// Natural key from the nomination source, fixed at creation so re-imports
	// resolve to this row after a correction
	SourceExternalID *int64 `gorm:"index"`
	SourceTitle      string `gorm:"index"`

	ReviewStatus      ReviewStatus `gorm:"index;not null;default:pending"`
	Confidence        float64      // 0-1
	VerificationNotes string
	ReviewedBy        string
	ReviewedAt        *time.Time
	CorrectedBy       string // Last reviewer who replaced ExternalID
	CorrectedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BestPictureNominee is a flattened picture-category nomination
type BestPictureNominee struct {
	CeremonyYear int
	Title        string
	ReleaseYear  int
	Winner       bool
	ExternalID   *int64
	Director     string
}
