package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicateExternalID is returned when an external identifier is already used by another record
var ErrDuplicateExternalID = errors.New("external identifier already in use")

// ErrInvalidMovieRef is returned for a movie reference with neither a title nor an external identifier
var ErrInvalidMovieRef = errors.New("movie reference needs a title or external identifier")

// UpsertOutcome describes what an idempotent write did
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
	OutcomeSkipped UpsertOutcome = "skipped"
)

// Database wraps the gorm connection
type Database struct {
	db *gorm.DB
}

// NewDatabase opens (and migrates) the sqlite database at path
func NewDatabase(path string, debug bool) (*Database, error) {
	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&CanonicalCategory{},
		&AwardLinkedMovie{},
		&CanonicalNomination{},
		&CollectionMovie{},
		&MatchAnalysis{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Category operations

// UpsertCategory returns the category with the given key, creating it if needed
func (d *Database) UpsertCategory(key, name string, group CategoryGroup) (*CanonicalCategory, UpsertOutcome, error) {
	var category CanonicalCategory
	result := d.db.
		Where(CanonicalCategory{Key: key}).
		Attrs(CanonicalCategory{Name: name, Group: group}).
		FirstOrCreate(&category)
	if result.Error != nil {
		return nil, "", result.Error
	}
	if result.RowsAffected == 1 {
		return &category, OutcomeCreated, nil
	}
	return &category, OutcomeSkipped, nil
}

// Award-linked movie operations

// FindOrCreateAwardMovie returns the award-linked movie for ref.
// Refs resolve on the source key recorded at creation first, so corrections made since
// do not break idempotence, then on the current external identifier, then on the
// case-insensitive title of movies without one.
func (d *Database) FindOrCreateAwardMovie(ref MovieRef, ceremonyYear int) (*AwardLinkedMovie, UpsertOutcome, error) {
	var movie AwardLinkedMovie
	outcome := OutcomeSkipped
	title := strings.TrimSpace(ref.Title)
	if title == "" && ref.ExternalID == nil {
		return nil, "", ErrInvalidMovieRef
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		var lookups []*gorm.DB
		if ref.ExternalID != nil {
			lookups = []*gorm.DB{
				tx.Where("source_external_id = ?", *ref.ExternalID),
				tx.Where("external_id = ?", *ref.ExternalID),
			}
		} else {
			lookups = []*gorm.DB{
				tx.Where("source_external_id IS NULL AND lower(source_title) = lower(?)", title),
				tx.Where("external_id IS NULL AND lower(title) = lower(?)", title),
			}
		}

		for _, query := range lookups {
			err := query.Order("id ASC").First(&movie).Error
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		movie = AwardLinkedMovie{
			Title:            title,
			ExternalID:       ref.ExternalID,
			SecondaryID:      ref.SecondaryID,
			CeremonyYear:     ceremonyYear,
			SourceExternalID: ref.ExternalID,
			SourceTitle:      title,
			ReviewStatus:     ReviewPending,
		}
		if err := tx.Create(&movie).Error; err != nil {
			return err
		}
		outcome = OutcomeCreated
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return &movie, outcome, nil
}

// GetAwardMovieByID retrieves an award-linked movie by ID
func (d *Database) GetAwardMovieByID(id uint) (*AwardLinkedMovie, error) {
	var movie AwardLinkedMovie
	if err := d.db.First(&movie, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &movie, nil
}

// GetAwardMoviesByStatus retrieves award-linked movies in any of the given statuses, in creation order
func (d *Database) GetAwardMoviesByStatus(statuses ...ReviewStatus) ([]*AwardLinkedMovie, error) {
	var movies []*AwardLinkedMovie
	err := d.db.Where("review_status IN ?", statuses).Order("id ASC").Find(&movies).Error
	return movies, err
}

// UpdateAwardMovie saves an award-linked movie
func (d *Database) UpdateAwardMovie(movie *AwardLinkedMovie) error {
	err := d.db.Save(movie).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateExternalID
	}
	return err
}

// AwardExternalIDInUse reports whether another award-linked movie already carries externalID
func (d *Database) AwardExternalIDInUse(externalID int64, exceptID uint) (bool, error) {
	var count int64
	err := d.db.Model(&AwardLinkedMovie{}).
		Where("external_id = ? AND id <> ?", externalID, exceptID).
		Count(&count).Error
	return count > 0, err
}

// CountAwardMoviesByStatus returns the number of award-linked movies per review status
func (d *Database) CountAwardMoviesByStatus() (map[ReviewStatus]int64, error) {
	var rows []struct {
		ReviewStatus ReviewStatus
		Count        int64
	}
	err := d.db.Model(&AwardLinkedMovie{}).
		Select("review_status, count(*) AS count").
		Group("review_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[ReviewStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.ReviewStatus] = row.Count
	}
	return counts, nil
}

// Nomination operations

// UpsertNomination inserts a nomination unless one with the same natural key exists.
// An existing row only changes when its winner flag differs.
func (d *Database) UpsertNomination(nomination *CanonicalNomination) (UpsertOutcome, error) {
	result := d.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(nomination)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 1 {
		return OutcomeCreated, nil
	}

	wantWinner := nomination.Winner
	var existing CanonicalNomination
	err := d.db.Where(
		"ceremony_year = ? AND category_id = ? AND movie_id = ? AND nominee_name = ?",
		nomination.CeremonyYear, nomination.CategoryID, nomination.MovieID, nomination.NomineeName,
	).First(&existing).Error
	if err != nil {
		return "", notFound(err)
	}
	*nomination = existing

	if existing.Winner == wantWinner {
		return OutcomeSkipped, nil
	}
	if err := d.SetNominationWinner(existing.ID, wantWinner); err != nil {
		return "", err
	}
	nomination.Winner = wantWinner
	return OutcomeUpdated, nil
}

// SetNominationWinner corrects the winner flag of a nomination
func (d *Database) SetNominationWinner(id uint, winner bool) error {
	return d.db.Model(&CanonicalNomination{}).Where("id = ?", id).Update("winner", winner).Error
}

// CountNominations returns the number of persisted nominations
func (d *Database) CountNominations() (int64, error) {
	var count int64
	err := d.db.Model(&CanonicalNomination{}).Count(&count).Error
	return count, err
}

type nominationRow struct {
	MovieID      uint
	Title        string
	ExternalID   *int64
	CeremonyYear int
	NomineeName  string
	Winner       bool
}

func (d *Database) nominationsInGroup(ceremonyYear int, group CategoryGroup) ([]nominationRow, error) {
	var rows []nominationRow
	err := d.db.Table("canonical_nominations AS n").
		Select("n.movie_id, m.title, m.external_id, n.ceremony_year, n.nominee_name, n.winner").
		Joins("JOIN canonical_categories AS c ON c.id = n.category_id").
		Joins("JOIN award_linked_movies AS m ON m.id = n.movie_id").
		Where("n.ceremony_year = ? AND c.category_group = ?", ceremonyYear, group).
		Order("n.id ASC").
		Scan(&rows).Error
	return rows, err
}

// BestPictureNominees returns the picture-category nominees of a ceremony, one per movie,
// with the director taken from the same ceremony's directing nominations when available
func (d *Database) BestPictureNominees(ceremonyYear int) ([]BestPictureNominee, error) {
	pictures, err := d.nominationsInGroup(ceremonyYear, CategoryPicture)
	if err != nil {
		return nil, fmt.Errorf("failed to load picture nominations: %w", err)
	}
	directing, err := d.nominationsInGroup(ceremonyYear, CategoryDirecting)
	if err != nil {
		return nil, fmt.Errorf("failed to load directing nominations: %w", err)
	}

	directors := make(map[uint]string, len(directing))
	for _, row := range directing {
		if _, ok := directors[row.MovieID]; !ok && row.NomineeName != "" {
			directors[row.MovieID] = row.NomineeName
		}
	}

	index := make(map[uint]int)
	var nominees []BestPictureNominee
	for _, row := range pictures {
		if i, ok := index[row.MovieID]; ok {
			nominees[i].Winner = nominees[i].Winner || row.Winner
			continue
		}
		index[row.MovieID] = len(nominees)
		nominees = append(nominees, BestPictureNominee{
			CeremonyYear: row.CeremonyYear,
			Title:        row.Title,
			ReleaseYear:  row.CeremonyYear - 1,
			Winner:       row.Winner,
			ExternalID:   row.ExternalID,
			Director:     directors[row.MovieID],
		})
	}

	return nominees, nil
}

// Collection operations

// CreateCollectionMovie inserts a collection movie unless the user already has one with
// the same external identifier
func (d *Database) CreateCollectionMovie(movie *CollectionMovie) (UpsertOutcome, error) {
	result := d.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(movie)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return OutcomeSkipped, nil
	}
	return OutcomeCreated, nil
}

// GetCollectionMovieByID retrieves a collection movie with its match analysis
func (d *Database) GetCollectionMovieByID(id uint) (*CollectionMovie, error) {
	var movie CollectionMovie
	if err := d.db.Preload("Analysis").First(&movie, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &movie, nil
}

// GetCollectionMovieByExternalID retrieves a user's collection movie by external identifier
func (d *Database) GetCollectionMovieByExternalID(userID string, externalID int64) (*CollectionMovie, error) {
	var movie CollectionMovie
	err := d.db.Where("user_id = ? AND external_id = ?", userID, externalID).First(&movie).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &movie, nil
}

// GetCollectionMovies retrieves a user's collection movies in insertion order,
// optionally restricted to the given approval statuses
func (d *Database) GetCollectionMovies(userID string, statuses ...ApprovalStatus) ([]*CollectionMovie, error) {
	var movies []*CollectionMovie
	query := d.db.Where("user_id = ?", userID)
	if len(statuses) > 0 {
		query = query.Where("approval_status IN ?", statuses)
	}
	err := query.Order("id ASC").Find(&movies).Error
	return movies, err
}

// UpdateCollectionMovie saves a collection movie without touching its analysis
func (d *Database) UpdateCollectionMovie(movie *CollectionMovie) error {
	err := d.db.Omit(clause.Associations).Save(movie).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateExternalID
	}
	return err
}

// SaveMatchAnalysis replaces the match analysis of a collection movie
func (d *Database) SaveMatchAnalysis(analysis *MatchAnalysis) error {
	return d.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collection_movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"confidence", "severity", "mismatches",
			"title_similarity", "director_similarity", "year_difference",
			"updated_at",
		}),
	}).Create(analysis).Error
}

// GetMatchAnalysis retrieves the match analysis of a collection movie
func (d *Database) GetMatchAnalysis(collectionMovieID uint) (*MatchAnalysis, error) {
	var analysis MatchAnalysis
	err := d.db.Where("collection_movie_id = ?", collectionMovieID).First(&analysis).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &analysis, nil
}

// CountMatchAnalyses returns the number of match analysis rows
func (d *Database) CountMatchAnalyses() (int64, error) {
	var count int64
	err := d.db.Model(&MatchAnalysis{}).Count(&count).Error
	return count, err
}

// ReviewQueue returns a user's pending collection movies, least confident first.
// Movies without an analysis sort last.
func (d *Database) ReviewQueue(userID string, limit int) ([]*CollectionMovie, error) {
	var movies []*CollectionMovie
	err := d.db.Preload("Analysis").
		Where("user_id = ? AND approval_status = ?", userID, ApprovalPending).
		Order("id ASC").
		Find(&movies).Error
	if err != nil {
		return nil, err
	}

	sort.SliceStable(movies, func(i, j int) bool {
		a, b := movies[i].Analysis, movies[j].Analysis
		if a == nil || b == nil {
			return a != nil
		}
		return a.Confidence < b.Confidence
	})

	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	return movies, nil
}

// CountCollectionByApproval returns the number of collection movies per approval status
// across all users
func (d *Database) CountCollectionByApproval() (map[ApprovalStatus]int64, error) {
	var rows []struct {
		ApprovalStatus ApprovalStatus
		Count          int64
	}
	err := d.db.Model(&CollectionMovie{}).
		Select("approval_status, count(*) AS count").
		Group("approval_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[ApprovalStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.ApprovalStatus] = row.Count
	}
	return counts, nil
}
