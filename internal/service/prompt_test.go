package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/healthara/backend/internal/models"
)

func TestBuildNutritionPrompt(t *testing.T) {
	p := models.DefaultHealthProfile()
	p.PersonalInfo.Age = ptr(29)
	p.MedicalHistory.Medications = []string{"warfarin"}

	prompt := BuildNutritionPrompt(p, "Is spinach OK for me? 100% honest please")

	assert.True(t, strings.HasPrefix(prompt, "You are a certified nutritionist and health advisor."))
	assert.Contains(t, prompt, "\n\n"+p.Summary()+"\n\n")
	assert.Contains(t, prompt, "4. Medication interactions with food (if applicable)")
	assert.Contains(t, prompt, "- Suggest monitoring parameters (weight, blood sugar, etc.)")
	assert.Contains(t, prompt, "User Query: Is spinach OK for me? 100% honest please\n")
	assert.True(t, strings.HasSuffix(prompt, "addresses their specific needs and health profile."))
}

func TestBuildNutritionPrompt_ListsEveryGuideline(t *testing.T) {
	prompt := BuildNutritionPrompt(models.DefaultHealthProfile(), "hi")

	for _, guideline := range []string{
		"actionable dietary recommendations",
		"portion sizes",
		"meal timing and frequency",
		"hydration recommendations",
		"foods to avoid",
		"preventive measures",
		"specific nutrients",
		"monitoring parameters",
	} {
		assert.Contains(t, prompt, guideline)
	}
}
