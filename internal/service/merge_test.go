package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthara/backend/internal/models"
)

func TestMergeOntoDefaults(t *testing.T) {
	t.Run("should merge per leaf rather than per section", func(t *testing.T) {
		p, err := MergeOntoDefaults([]byte(`{
			"health_goals": {"primary_goal": "lose_weight"},
			"diet_preferences": {"meal_frequency": 5}
		}`))
		require.NoError(t, err)

		assert.Equal(t, "lose_weight", p.HealthGoals.PrimaryGoal)
		assert.Equal(t, models.DefaultActivityLevel, p.HealthGoals.ActivityLevel)
		assert.Equal(t, 5, p.DietPreferences.MealFrequency)
		assert.Equal(t, models.DefaultWaterIntakeGoalLiters, p.DietPreferences.WaterIntakeGoalLiters)
	})

	t.Run("should keep defaults for null non-nullable leaves", func(t *testing.T) {
		p, err := MergeOntoDefaults([]byte(`{"health_goals": {"activity_level": null, "weight_goal": null}}`))
		require.NoError(t, err)
		assert.Equal(t, models.DefaultActivityLevel, p.HealthGoals.ActivityLevel)
		assert.Nil(t, p.HealthGoals.WeightGoal)
	})

	t.Run("should keep empty lists for null list leaves", func(t *testing.T) {
		p, err := MergeOntoDefaults([]byte(`{
			"medical_history": {"allergies": null, "chronic_conditions": null, "medications": null, "dietary_restrictions": null},
			"diet_preferences": {"preferred_cuisines": null}
		}`))
		require.NoError(t, err)
		assert.Equal(t, []string{}, p.MedicalHistory.Allergies)
		assert.Equal(t, []string{}, p.MedicalHistory.ChronicConditions)
		assert.Equal(t, []string{}, p.MedicalHistory.Medications)
		assert.Equal(t, []string{}, p.MedicalHistory.DietaryRestrictions)
		assert.Equal(t, []string{}, p.DietPreferences.PreferredCuisines)

		data, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"allergies":[]`)
		assert.Contains(t, string(data), `"preferred_cuisines":[]`)
	})

	t.Run("should ignore unknown keys", func(t *testing.T) {
		p, err := MergeOntoDefaults([]byte(`{"legacy": true, "personal_info": {"age": 30, "shoe_size": 44}}`))
		require.NoError(t, err)
		assert.Equal(t, 30, *p.PersonalInfo.Age)
	})

	t.Run("should recompute a stale BMI", func(t *testing.T) {
		p, err := MergeOntoDefaults([]byte(`{
			"personal_info": {"height_cm": 170, "weight_kg": 70},
			"health_metrics": {"bmi": 99.9}
		}`))
		require.NoError(t, err)
		assert.Equal(t, 24.22, *p.HealthMetrics.BMI)

		p, err = MergeOntoDefaults([]byte(`{"personal_info": {"weight_kg": 70}, "health_metrics": {"bmi": 24.22}}`))
		require.NoError(t, err)
		assert.Nil(t, p.HealthMetrics.BMI)
	})

	t.Run("should read zone-less last_updated values", func(t *testing.T) {
		p, err := MergeOntoDefaults([]byte(`{"health_metrics": {"last_updated": "2024-05-01T10:20:30.123456"}}`))
		require.NoError(t, err)
		require.NotNil(t, p.HealthMetrics.LastUpdated)
		assert.Equal(t, 2024, p.HealthMetrics.LastUpdated.Year())
	})

	t.Run("should be idempotent when merging a record onto itself", func(t *testing.T) {
		base := models.DefaultHealthProfile()
		base.PersonalInfo.Age = ptr(45)
		base.PersonalInfo.HeightCm = ptr(180.0)
		base.PersonalInfo.WeightKg = ptr(81.0)
		base.MedicalHistory.Allergies = []string{"shellfish"}
		base.HealthGoals.PrimaryGoal = "improve_energy"
		RecomputeBMI(base)

		data, err := json.Marshal(base)
		require.NoError(t, err)

		onDefaults, err := MergeOntoDefaults(data)
		require.NoError(t, err)
		assert.Equal(t, base, onDefaults)

		onSelf, err := MergeOnto(base, data)
		require.NoError(t, err)
		assert.Equal(t, base, onSelf)
	})

	t.Run("should reject documents of the wrong shape", func(t *testing.T) {
		_, err := MergeOntoDefaults([]byte(`{"personal_info": "old format"}`))
		assert.Error(t, err)
	})
}
