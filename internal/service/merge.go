package service

import (
	"encoding/json"

	"github.com/pageza/healthara/backend/internal/models"
)

// MergeOntoDefaults decodes a stored document over a fresh default record.
func MergeOntoDefaults(data []byte) (*models.HealthProfile, error) {
	return MergeOnto(models.DefaultHealthProfile(), data)
}

// MergeOnto decodes data over a copy of base, leaf by leaf:
//   - keys absent from data keep the base value
//   - present keys override, including null on nullable leaves
//   - null on a non-nullable leaf (activity level, meal frequency, ...) keeps the base value
//   - nested sections merge field by field rather than being replaced
//   - unknown keys are ignored
//
// BMI is recomputed afterwards so a stale stored value cannot survive a load.
func MergeOnto(base *models.HealthProfile, data []byte) (*models.HealthProfile, error) {
	merged := base.Clone()
	if err := json.Unmarshal(data, merged); err != nil {
		return nil, err
	}
	restoreLists(merged)
	RecomputeBMI(merged)
	return merged, nil
}

// restoreLists turns lists decoded from null back into empty lists
func restoreLists(p *models.HealthProfile) {
	for _, list := range []*[]string{
		&p.MedicalHistory.Allergies,
		&p.MedicalHistory.ChronicConditions,
		&p.MedicalHistory.Medications,
		&p.MedicalHistory.DietaryRestrictions,
		&p.DietPreferences.PreferredCuisines,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
}
