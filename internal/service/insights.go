package service

import "github.com/pageza/healthara/backend/internal/models"

const maxQuickTips = 3

// BMICategory maps a BMI onto the standard adult ranges
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// QuickTips returns up to three short suggestions derived from the profile
func QuickTips(profile *models.HealthProfile) []string {
	tips := []string{}

	if bmi := profile.HealthMetrics.BMI; bmi != nil {
		if *bmi < 18.5 {
			tips = append(tips, "Consider increasing caloric intake with nutrient-dense foods")
		} else if *bmi > 25 {
			tips = append(tips, "Focus on portion control and regular exercise")
		}
	}

	switch profile.HealthGoals.PrimaryGoal {
	case "lose_weight":
		tips = append(tips, "Prioritize vegetables and lean proteins")
	case "build_muscle":
		tips = append(tips, "Ensure adequate protein intake (1.6-2.2g per kg body weight)")
	}

	if age := profile.PersonalInfo.Age; age != nil && *age > 50 {
		tips = append(tips, "Consider calcium and vitamin D supplementation")
	}

	if len(tips) > maxQuickTips {
		tips = tips[:maxQuickTips]
	}
	return tips
}

// Insights bundles the derived, non-persisted views of a profile
type Insights struct {
	BMI         *float64 `json:"bmi"`
	BMICategory string   `json:"bmi_category,omitempty"`
	Tips        []string `json:"tips"`
}

func BuildInsights(profile *models.HealthProfile) Insights {
	insights := Insights{
		BMI:  profile.HealthMetrics.BMI,
		Tips: QuickTips(profile),
	}
	if insights.BMI != nil {
		insights.BMICategory = BMICategory(*insights.BMI)
	}
	return insights
}
