package utils

import (
	"strings"

	"github.com/amaumene/reelarr/internal/models"
)

type categoryRule struct {
	group    models.CategoryGroup
	keywords []string
}

// Order matters: the first rule with a keyword contained in the label wins,
// so "Documentary Short Subject" lands in documentary and "Sound Editing" in sound.
var categoryRules = []categoryRule{
	{models.CategoryHonorary, []string{"honorary", "special award", "humanitarian", "thalberg", "special achievement", "scientific", "technical achievement", "lifetime"}},
	{models.CategoryDocumentary, []string{"documentary"}},
	{models.CategoryAnimated, []string{"animated feature", "animated film"}},
	{models.CategoryShort, []string{"short"}},
	{models.CategoryInternational, []string{"international feature", "foreign language"}},
	{models.CategoryActing, []string{"actor", "actress", "supporting role", "leading role"}},
	{models.CategoryDirecting, []string{"directing", "director", "assistant director"}},
	{models.CategoryWriting, []string{"writing", "screenplay", "original story", "adaptation"}},
	{models.CategoryCinematography, []string{"cinematography"}},
	{models.CategoryMusic, []string{"music", "song", "score"}},
	{models.CategorySound, []string{"sound"}},
	{models.CategoryEditing, []string{"editing"}},
	{models.CategoryVisualEffects, []string{"visual effects", "special effects", "engineering effects"}},
	{models.CategoryProductionDesign, []string{"production design", "art direction", "interior decoration"}},
	{models.CategoryCostumeMakeup, []string{"costume", "makeup", "hairstyling"}},
	{models.CategoryPicture, []string{"best picture", "outstanding picture", "outstanding production", "unique and artistic", "picture"}},
}

// ClassifyCategory maps a raw award-category label to a coarse category group
func ClassifyCategory(label string) models.CategoryGroup {
	l := strings.ToLower(StripDiacritics(strings.TrimSpace(label)))
	if l == "" {
		return models.CategoryOther
	}

	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(l, keyword) {
				return rule.group
			}
		}
	}

	return models.CategoryOther
}

// CanonicalCategoryKey returns the deduplication key for a category label:
// a leading "Best " is dropped, then the label is normalized
func CanonicalCategoryKey(label string) string {
	l := strings.TrimSpace(label)
	if len(l) >= 5 && strings.EqualFold(l[:5], "best ") {
		l = l[5:]
	}
	return NormalizeTitle(l)
}
