package services

import (
	"strings"
	"testing"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt_MedicalMode(t *testing.T) {
	b := NewPromptBuilder()

	en := b.SystemPrompt("en", true, nil)
	assert.Contains(t, en, "mySahara Health App")
	assert.Contains(t, en, "You MUST respond in English only")

	bn := b.SystemPrompt("bn", true, nil)
	assert.Contains(t, bn, "mySahara হেলথ অ্যাপের")
	assert.Contains(t, bn, "শুধুমাত্র বাংলায় উত্তর দিতে হবে")
}

func TestSystemPrompt_GeneralMode(t *testing.T) {
	b := NewPromptBuilder()

	prompt := b.SystemPrompt("en", false, nil)
	assert.True(t, strings.HasPrefix(prompt, "You are a helpful AI assistant."))
	assert.NotContains(t, prompt, "mySahara")
}

func TestSystemPrompt_ContextBlockIsDeterministic(t *testing.T) {
	b := NewPromptBuilder()
	context := map[string]string{"age": "30", "gender": "female", "city": "Dhaka"}

	first := b.SystemPrompt("en", true, context)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, b.SystemPrompt("en", true, context))
	}

	// Keys render sorted.
	ageIdx := strings.Index(first, "- age:")
	cityIdx := strings.Index(first, "- city:")
	genderIdx := strings.Index(first, "- gender:")
	assert.True(t, ageIdx < cityIdx && cityIdx < genderIdx)
}

func TestSymptomAnalysisPrompt(t *testing.T) {
	b := NewPromptBuilder()

	prompt := b.SymptomAnalysisPrompt(SymptomContext{
		Symptoms: []string{"headache", "fever"},
		Duration: "3 days",
		Severity: "moderate",
		Age:      45,
		Gender:   "male",
	})

	assert.Contains(t, prompt, "Symptoms: headache, fever")
	assert.Contains(t, prompt, "Duration: 3 days")
	assert.Contains(t, prompt, "Severity: moderate")
	assert.Contains(t, prompt, "- age: 45")
	assert.Contains(t, prompt, "Risk level assessment (low/medium/high)")
}

func TestSymptomAnalysisPrompt_OmitsEmptyFields(t *testing.T) {
	b := NewPromptBuilder()

	prompt := b.SymptomAnalysisPrompt(SymptomContext{Symptoms: []string{"cough"}})

	assert.NotContains(t, prompt, "Duration:")
	assert.NotContains(t, prompt, "Additional Information:")
}

func TestHealthTipsPrompt(t *testing.T) {
	b := NewPromptBuilder()

	plain := b.HealthTipsPrompt("sleep", false, nil)
	assert.Contains(t, plain, "5 helpful health tips about sleep")
	assert.NotContains(t, plain, "Personalize for:")

	personalized := b.HealthTipsPrompt("nutrition", true, map[string]string{"age": "60"})
	assert.Contains(t, personalized, "Personalize for:")
	assert.Contains(t, personalized, "- age: 60")
}

func TestNutritionPlanPrompt_Defaults(t *testing.T) {
	b := NewPromptBuilder()

	prompt := b.NutritionPlanPrompt(entities.PlanRequest{
		Age: 30, Gender: "male", HeightCm: 175, WeightKg: 80,
		ActivityLevel: "light", Goal: "muscle gain",
	})

	assert.Contains(t, prompt, "Dietary Preferences: None")
	assert.Contains(t, prompt, "Standard Bangladeshi foods like rice, lentils (dal), fish, chicken, seasonal vegetables, and fruits.")
	assert.Contains(t, prompt, entities.PlanDisclaimer)
	assert.Contains(t, prompt, "Provide ONLY the JSON response.")
}

func TestFamilyInsightPrompt(t *testing.T) {
	b := NewPromptBuilder()

	prompt := b.FamilyInsightPrompt(testFamily, nil)
	assert.Contains(t, prompt, "Family Members: 3")
	assert.Contains(t, prompt, "Chronic Conditions in Family: Diabetes, Hypertension")
	assert.Contains(t, prompt, "Focus Areas: general")

	empty := b.FamilyInsightPrompt([]entities.FamilyMember{{Name: "X"}}, []string{"nutrition", "exercise"})
	assert.Contains(t, empty, "Chronic Conditions in Family: None")
	assert.Contains(t, empty, "Focus Areas: nutrition, exercise")
}

func TestReportSummaryPrompt(t *testing.T) {
	b := NewPromptBuilder()

	prompt := b.ReportSummaryPrompt(testFamily, ComputeFamilyMetrics(testFamily, 0, 0))
	assert.Contains(t, prompt, "- Rahim (father): Diabetes, Hypertension")
	assert.Contains(t, prompt, "- Ayesha (daughter): No chronic conditions")
	assert.Contains(t, prompt, "Total Members: 3")
}

func TestTermExplanationPrompt(t *testing.T) {
	b := NewPromptBuilder()

	assert.Contains(t, b.TermExplanationPrompt("tachycardia", true), "simple, easy-to-understand language")
	assert.Contains(t, b.TermExplanationPrompt("tachycardia", false), "in detail")
}
