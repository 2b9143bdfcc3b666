package models

import (
	"fmt"
	"strconv"
	"strings"
)

// NoHealthInformation is the summary of a record with nothing to report
const NoHealthInformation = "No health information available"

// Summary renders the known facts of the profile one per line in a fixed order.
// Activity level and primary goal are reported whenever non-empty, so a record
// built from DefaultHealthProfile always yields at least those two lines.
func (p *HealthProfile) Summary() string {
	var lines []string

	info := p.PersonalInfo
	if info.Age != nil {
		lines = append(lines, fmt.Sprintf("Age: %d years", *info.Age))
	}
	if info.Gender != nil && *info.Gender != "" {
		lines = append(lines, "Gender: "+*info.Gender)
	}
	if info.HeightCm != nil {
		lines = append(lines, "Height: "+FormatDecimal(*info.HeightCm)+" cm")
	}
	if info.WeightKg != nil {
		lines = append(lines, "Weight: "+FormatDecimal(*info.WeightKg)+" kg")
	}
	if bmi := p.HealthMetrics.BMI; bmi != nil {
		lines = append(lines, "BMI: "+FormatDecimal(*bmi))
	}

	medical := p.MedicalHistory
	for _, item := range []struct {
		label  string
		values []string
	}{
		{"Allergies", medical.Allergies},
		{"Chronic Conditions", medical.ChronicConditions},
		{"Medications", medical.Medications},
		{"Dietary Restrictions", medical.DietaryRestrictions},
	} {
		if len(item.values) > 0 {
			lines = append(lines, item.label+": "+strings.Join(item.values, ", "))
		}
	}

	goals := p.HealthGoals
	if goals.WeightGoal != nil {
		lines = append(lines, "Weight Goal: "+FormatDecimal(*goals.WeightGoal)+" kg")
	}
	if goals.ActivityLevel != "" {
		lines = append(lines, "Activity Level: "+goals.ActivityLevel)
	}
	if goals.PrimaryGoal != "" {
		lines = append(lines, "Primary Goal: "+goals.PrimaryGoal)
	}

	if len(lines) == 0 {
		return NoHealthInformation
	}
	return strings.Join(lines, "\n")
}

// FormatDecimal prints v in its shortest form with at least one decimal place (170 -> "170.0")
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
