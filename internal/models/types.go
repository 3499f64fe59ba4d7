package models

// ReviewStatus represents the verification lifecycle state of an award-linked movie
type ReviewStatus string

const (
	ReviewPending           ReviewStatus = "pending"             // No identifier yet, or not yet checked
	ReviewAutoVerified      ReviewStatus = "auto_verified"       // Automated check passed
	ReviewNeedsManualReview ReviewStatus = "needs_manual_review" // Automated check failed or was inconclusive
	ReviewManuallyReviewed  ReviewStatus = "manually_reviewed"   // Human confirmed
)

// ApprovalStatus gates visibility of a collection movie
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRemoved  ApprovalStatus = "removed"
)

// Severity buckets how urgently a match needs human review
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// CategoryGroup is a coarse grouping of award categories
type CategoryGroup string

const (
	CategoryPicture          CategoryGroup = "picture"
	CategoryDirecting        CategoryGroup = "directing"
	CategoryActing           CategoryGroup = "acting"
	CategoryWriting          CategoryGroup = "writing"
	CategoryCinematography   CategoryGroup = "cinematography"
	CategoryEditing          CategoryGroup = "editing"
	CategorySound            CategoryGroup = "sound"
	CategoryMusic            CategoryGroup = "music"
	CategoryVisualEffects    CategoryGroup = "visual_effects"
	CategoryProductionDesign CategoryGroup = "production_design"
	CategoryCostumeMakeup    CategoryGroup = "costume_makeup"
	CategoryDocumentary      CategoryGroup = "documentary"
	CategoryInternational    CategoryGroup = "international"
	CategoryAnimated         CategoryGroup = "animated"
	CategoryShort            CategoryGroup = "short"
	CategoryHonorary         CategoryGroup = "honorary"
	CategoryOther            CategoryGroup = "other"
)
