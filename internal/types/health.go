package types

// PersonalInfoUpdate carries a partial personal-info change. Nil fields are left untouched.
type PersonalInfoUpdate struct {
	Age      *int     `json:"age" validate:"omitempty,min=1,max=120"`
	Gender   *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	HeightCm *float64 `json:"height_cm" validate:"omitempty,min=100,max=250"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,min=30,max=300"`
}

// MedicalHistoryUpdate replaces each provided list wholesale
type MedicalHistoryUpdate struct {
	Allergies           []string `json:"allergies" validate:"omitempty,dive,max=100"`
	ChronicConditions   []string `json:"chronic_conditions" validate:"omitempty,dive,max=200"`
	Medications         []string `json:"medications" validate:"omitempty,dive,max=200"`
	DietaryRestrictions []string `json:"dietary_restrictions" validate:"omitempty,dive,max=100"`
}

type HealthGoalsUpdate struct {
	WeightGoal    *float64 `json:"weight_goal" validate:"omitempty,min=30,max=300"`
	ActivityLevel *string  `json:"activity_level" validate:"omitempty,oneof=sedentary light moderate active very_active"`
	PrimaryGoal   *string  `json:"primary_goal" validate:"omitempty,oneof=lose_weight gain_weight maintain_health build_muscle improve_energy"`
}

type DietPreferencesUpdate struct {
	PreferredCuisines     []string `json:"preferred_cuisines" validate:"omitempty,dive,max=100"`
	MealFrequency         *int     `json:"meal_frequency" validate:"omitempty,min=1,max=10"`
	WaterIntakeGoalLiters *float64 `json:"water_intake_goal_liters" validate:"omitempty,gt=0,max=10"`
}

// AnalyzeDietRequest is the body of a diet compatibility check
type AnalyzeDietRequest struct {
	Foods []string `json:"foods" binding:"required"`
}

// ChatRequest is the body of a chat turn
type ChatRequest struct {
	Query string `json:"query" binding:"required"`
}
