package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Suggested vocabularies. Allergies and restrictions accept free text; these lists only seed the UI.
var (
	Genders             = []string{"male", "female", "other"}
	ActivityLevels      = []string{"sedentary", "light", "moderate", "active", "very_active"}
	PrimaryGoals        = []string{"lose_weight", "gain_weight", "maintain_health", "build_muscle", "improve_energy"}
	CommonAllergies     = []string{"nuts", "dairy", "gluten", "shellfish", "eggs", "soy", "fish"}
	DietaryRestrictions = []string{"vegetarian", "vegan", "keto", "low_carb", "low_fat", "diabetic", "heart_healthy"}
)

const (
	DefaultActivityLevel         = "moderate"
	DefaultPrimaryGoal           = "maintain_health"
	DefaultMealFrequency         = 3
	DefaultWaterIntakeGoalLiters = 2.5
)

// HealthProfile is the single persisted record describing one user
type HealthProfile struct {
	PersonalInfo    PersonalInfo    `json:"personal_info"`
	MedicalHistory  MedicalHistory  `json:"medical_history"`
	HealthGoals     HealthGoals     `json:"health_goals"`
	DietPreferences DietPreferences `json:"diet_preferences"`
	HealthMetrics   HealthMetrics   `json:"health_metrics"`
}

// PersonalInfo fields stay nil until first set
type PersonalInfo struct {
	Age      *int     `json:"age"`
	Gender   *string  `json:"gender"`
	HeightCm *float64 `json:"height_cm"`
	WeightKg *float64 `json:"weight_kg"`
}

type MedicalHistory struct {
	Allergies           []string `json:"allergies"`
	ChronicConditions   []string `json:"chronic_conditions"`
	Medications         []string `json:"medications"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

type HealthGoals struct {
	WeightGoal    *float64 `json:"weight_goal"`
	ActivityLevel string   `json:"activity_level"`
	PrimaryGoal   string   `json:"primary_goal"`
}

type DietPreferences struct {
	PreferredCuisines     []string `json:"preferred_cuisines"`
	MealFrequency         int      `json:"meal_frequency"`
	WaterIntakeGoalLiters float64  `json:"water_intake_goal_liters"`
}

// HealthMetrics holds values derived by the profile store. Callers never set them.
type HealthMetrics struct {
	BMI         *float64   `json:"bmi"`
	LastUpdated *Timestamp `json:"last_updated"`
}

// DefaultHealthProfile returns a fresh default record
func DefaultHealthProfile() *HealthProfile {
	return &HealthProfile{
		MedicalHistory: MedicalHistory{
			Allergies:           []string{},
			ChronicConditions:   []string{},
			Medications:         []string{},
			DietaryRestrictions: []string{},
		},
		HealthGoals: HealthGoals{
			ActivityLevel: DefaultActivityLevel,
			PrimaryGoal:   DefaultPrimaryGoal,
		},
		DietPreferences: DietPreferences{
			PreferredCuisines:     []string{},
			MealFrequency:         DefaultMealFrequency,
			WaterIntakeGoalLiters: DefaultWaterIntakeGoalLiters,
		},
	}
}

// Clone returns a deep copy that shares no pointers or slices with p
func (p *HealthProfile) Clone() *HealthProfile {
	c := *p
	c.PersonalInfo.Age = clonePtr(p.PersonalInfo.Age)
	c.PersonalInfo.Gender = clonePtr(p.PersonalInfo.Gender)
	c.PersonalInfo.HeightCm = clonePtr(p.PersonalInfo.HeightCm)
	c.PersonalInfo.WeightKg = clonePtr(p.PersonalInfo.WeightKg)
	c.MedicalHistory.Allergies = cloneSlice(p.MedicalHistory.Allergies)
	c.MedicalHistory.ChronicConditions = cloneSlice(p.MedicalHistory.ChronicConditions)
	c.MedicalHistory.Medications = cloneSlice(p.MedicalHistory.Medications)
	c.MedicalHistory.DietaryRestrictions = cloneSlice(p.MedicalHistory.DietaryRestrictions)
	c.HealthGoals.WeightGoal = clonePtr(p.HealthGoals.WeightGoal)
	c.DietPreferences.PreferredCuisines = cloneSlice(p.DietPreferences.PreferredCuisines)
	c.HealthMetrics.BMI = clonePtr(p.HealthMetrics.BMI)
	c.HealthMetrics.LastUpdated = clonePtr(p.HealthMetrics.LastUpdated)
	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneSlice(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// legacyTimestampLayout is the zone-less layout written by earlier tooling
const legacyTimestampLayout = "2006-01-02T15:04:05.999999"

// Timestamp is a time that also accepts zone-less ISO timestamps when decoding
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	for _, layout := range []string{time.RFC3339Nano, legacyTimestampLayout} {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}
