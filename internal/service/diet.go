package service

import (
	"fmt"
	"strings"

	"github.com/pageza/healthara/backend/internal/models"
)

// AnalyzeDietCompatibility sorts foods into compatible, restricted and allergen buckets.
//
// Matching is plain case-insensitive substring containment: a food is flagged for
// the first allergy keyword its text contains and, independently, for the first
// restriction keyword. "peanut-free cookie" therefore still matches "peanut". A
// food is compatible only when neither check matched.
func AnalyzeDietCompatibility(foods []string, profile *models.HealthProfile) models.DietAnalysis {
	analysis := models.DietAnalysis{
		CompatibleFoods:  []string{},
		RestrictedFoods:  []string{},
		AllergenWarnings: []string{},
		Recommendations:  []string{},
	}

	allergies := profile.MedicalHistory.Allergies
	restrictions := profile.MedicalHistory.DietaryRestrictions

	for _, food := range foods {
		text := strings.ToLower(food)
		flagged := false

		if allergen, ok := firstContained(text, allergies); ok {
			analysis.AllergenWarnings = append(analysis.AllergenWarnings, fmt.Sprintf("%s - Contains %s", food, allergen))
			flagged = true
		}
		if restriction, ok := firstContained(text, restrictions); ok {
			analysis.RestrictedFoods = append(analysis.RestrictedFoods, fmt.Sprintf("%s - Violates %s restriction", food, restriction))
			flagged = true
		}

		if !flagged {
			analysis.CompatibleFoods = append(analysis.CompatibleFoods, food)
		}
	}

	return analysis
}

func firstContained(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return keyword, true
		}
	}
	return "", false
}
