package api

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthara/backend/internal/models"
)

func TestProfileRoutes(t *testing.T) {
	t.Run("should update personal info and persist it", func(t *testing.T) {
		api := newTestAPI(t, nil)

		w := api.do(t, http.MethodPut, "/api/v1/profile/personal", map[string]any{
			"age": 35, "gender": "Male", "height_cm": 170, "weight_kg": 70,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t,
			"Age: 35 years\nGender: male\nHeight: 170.0 cm\nWeight: 70.0 kg\nBMI: 24.22\nActivity Level: moderate\nPrimary Goal: maintain_health",
			decode(t, w)["summary"])

		raw, err := os.ReadFile(api.profilePath)
		require.NoError(t, err)
		var stored models.HealthProfile
		require.NoError(t, json.Unmarshal(raw, &stored))
		assert.Equal(t, 24.22, *stored.HealthMetrics.BMI)
		assert.NotNil(t, stored.HealthMetrics.LastUpdated)
	})

	t.Run("should reject invalid values with field details", func(t *testing.T) {
		api := newTestAPI(t, nil)

		w := api.do(t, http.MethodPut, "/api/v1/profile/personal", map[string]any{"age": 0, "weight_kg": 500})
		require.Equal(t, http.StatusBadRequest, w.Code)

		fields := decode(t, w)["fields"].(map[string]any)
		assert.Equal(t, "must be at least 1", fields["age"])
		assert.Equal(t, "must be at most 300", fields["weight_kg"])

		_, err := os.Stat(api.profilePath)
		assert.True(t, os.IsNotExist(err), "nothing is written for a rejected update")
	})

	t.Run("should reject malformed bodies", func(t *testing.T) {
		api := newTestAPI(t, nil)
		w := api.do(t, http.MethodPut, "/api/v1/profile/goals", "not an object")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should report a failed save but keep the change", func(t *testing.T) {
		api := newTestAPI(t, nil)
		require.NoError(t, os.Mkdir(api.profilePath, 0o755))

		w := api.do(t, http.MethodPut, "/api/v1/profile/goals", map[string]any{"primary_goal": "lose_weight"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.NotEmpty(t, body["warning"])

		w = api.do(t, http.MethodGet, "/api/v1/profile/summary", nil)
		assert.Contains(t, decode(t, w)["summary"], "Primary Goal: lose_weight")
	})

	t.Run("should return tips and BMI category", func(t *testing.T) {
		api := newTestAPI(t, nil)
		api.do(t, http.MethodPut, "/api/v1/profile/personal", map[string]any{"age": 60, "height_cm": 160, "weight_kg": 80})

		w := api.do(t, http.MethodGet, "/api/v1/profile/tips", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Obese", body["bmi_category"])
		assert.Equal(t, []any{
			"Focus on portion control and regular exercise",
			"Consider calcium and vitamin D supplementation",
		}, body["tips"])
	})

	t.Run("should update medical history and diet preferences", func(t *testing.T) {
		api := newTestAPI(t, nil)

		w := api.do(t, http.MethodPut, "/api/v1/profile/medical", map[string]any{"allergies": []string{"nuts", "Nuts"}})
		require.Equal(t, http.StatusOK, w.Code)
		w = api.do(t, http.MethodPut, "/api/v1/profile/diet", map[string]any{"meal_frequency": 4})
		require.Equal(t, http.StatusOK, w.Code)

		w = api.do(t, http.MethodGet, "/api/v1/profile", nil)
		profile := decode(t, w)["profile"].(map[string]any)
		assert.Equal(t, []any{"nuts"}, profile["medical_history"].(map[string]any)["allergies"])
		assert.Equal(t, float64(4), profile["diet_preferences"].(map[string]any)["meal_frequency"])
	})

	t.Run("should list the vocabularies", func(t *testing.T) {
		api := newTestAPI(t, nil)
		w := api.do(t, http.MethodGet, "/api/v1/vocabulary", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decode(t, w)["activity_levels"], "very_active")
	})
}

func TestAnalyzeDiet(t *testing.T) {
	api := newTestAPI(t, nil)
	api.do(t, http.MethodPut, "/api/v1/profile/medical", map[string]any{
		"allergies": []string{"nuts"}, "dietary_restrictions": []string{"vegan"},
	})

	t.Run("should bucket foods", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/diet/analyze", map[string]any{
			"foods": []string{"mixed nuts", "vegan protein bar", "rice"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var got models.DietAnalysis
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, models.DietAnalysis{
			CompatibleFoods:  []string{"rice"},
			RestrictedFoods:  []string{"vegan protein bar - Violates vegan restriction"},
			AllergenWarnings: []string{"mixed nuts - Contains nuts"},
			Recommendations:  []string{},
		}, got)
	})

	t.Run("should require foods", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/diet/analyze", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
