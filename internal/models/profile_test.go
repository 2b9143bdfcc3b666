package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestHealthProfileSummary(t *testing.T) {
	t.Run("should show only the default goal lines for a new profile", func(t *testing.T) {
		p := DefaultHealthProfile()
		assert.Equal(t, "Activity Level: moderate\nPrimary Goal: maintain_health", p.Summary())
	})

	t.Run("should return the sentinel when nothing qualifies", func(t *testing.T) {
		var p HealthProfile
		assert.Equal(t, NoHealthInformation, p.Summary())
	})

	t.Run("should render every present fact in order", func(t *testing.T) {
		p := DefaultHealthProfile()
		p.PersonalInfo = PersonalInfo{Age: ptr(34), Gender: ptr("female"), HeightCm: ptr(170.0), WeightKg: ptr(72.5)}
		p.HealthMetrics.BMI = ptr(25.09)
		p.MedicalHistory.Allergies = []string{"nuts", "dairy"}
		p.MedicalHistory.ChronicConditions = []string{"asthma"}
		p.MedicalHistory.Medications = []string{"albuterol"}
		p.MedicalHistory.DietaryRestrictions = []string{"vegetarian"}
		p.HealthGoals = HealthGoals{WeightGoal: ptr(65.0), ActivityLevel: "active", PrimaryGoal: "lose_weight"}

		want := "Age: 34 years\n" +
			"Gender: female\n" +
			"Height: 170.0 cm\n" +
			"Weight: 72.5 kg\n" +
			"BMI: 25.09\n" +
			"Allergies: nuts, dairy\n" +
			"Chronic Conditions: asthma\n" +
			"Medications: albuterol\n" +
			"Dietary Restrictions: vegetarian\n" +
			"Weight Goal: 65.0 kg\n" +
			"Activity Level: active\n" +
			"Primary Goal: lose_weight"
		assert.Equal(t, want, p.Summary())
	})

	t.Run("should skip empty lists", func(t *testing.T) {
		p := DefaultHealthProfile()
		p.MedicalHistory.Medications = []string{"metformin"}
		assert.Equal(t, "Medications: metformin\nActivity Level: moderate\nPrimary Goal: maintain_health", p.Summary())
	})
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "170.0", FormatDecimal(170))
	assert.Equal(t, "72.5", FormatDecimal(72.5))
	assert.Equal(t, "24.22", FormatDecimal(24.22))
}

func TestHealthProfileClone(t *testing.T) {
	p := DefaultHealthProfile()
	p.PersonalInfo.Age = ptr(40)
	p.MedicalHistory.Allergies = []string{"soy"}

	c := p.Clone()
	*c.PersonalInfo.Age = 41
	c.MedicalHistory.Allergies[0] = "fish"

	assert.Equal(t, 40, *p.PersonalInfo.Age)
	assert.Equal(t, []string{"soy"}, p.MedicalHistory.Allergies)
}

func TestTimestamp(t *testing.T) {
	t.Run("should round trip RFC 3339", func(t *testing.T) {
		ts := NewTimestamp(time.Date(2025, 3, 4, 5, 6, 7, 800, time.UTC))
		data, err := json.Marshal(ts)
		require.NoError(t, err)
		assert.Equal(t, `"2025-03-04T05:06:07.0000008Z"`, string(data))

		var back Timestamp
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, ts.Equal(back.Time))
	})

	t.Run("should accept zone-less timestamps as local time", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2024-01-02T03:04:05.123456"`), &ts))
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.Local), ts.Time)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
		assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
	})
}
