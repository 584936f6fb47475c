package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHealthService(cache providers.CacheProvider, provider *stubProvider) *HealthService {
	prompts := NewPromptBuilder()
	chat := NewChatService([]providers.ChatProvider{provider}, prompts, nil)
	return NewHealthService(chat, prompts, cache)
}

func TestAnalyzeSymptoms_RequiresSymptoms(t *testing.T) {
	service := newTestHealthService(nil, &stubProvider{name: "groq", text: "ok"})

	analysis := service.AnalyzeSymptoms(context.Background(), SymptomContext{})

	assert.False(t, analysis.Succeeded)
	assert.Equal(t, "at least one symptom is required", analysis.Error)
}

func TestAnalyzeSymptoms_LayersRuleBasedFields(t *testing.T) {
	service := newTestHealthService(nil, &stubProvider{
		name: "groq",
		text: "This could be a common cold. Rest and fluids are advised.",
	})

	analysis := service.AnalyzeSymptoms(context.Background(), SymptomContext{
		Symptoms: []string{"runny nose", "sore throat"},
		Severity: "mild",
	})

	require.True(t, analysis.Succeeded)
	assert.Equal(t, entities.RiskLow, analysis.Level)
	assert.False(t, analysis.UrgentCareNeeded)
	assert.Equal(t, symptomDisclaimer, analysis.Disclaimer)
	require.Len(t, analysis.PossibleConditions, 1)
	assert.Equal(t, "Common Cold", analysis.PossibleConditions[0].Condition)
	assert.Len(t, analysis.Recommendations, 5)
}

func TestAnalyzeSymptoms_EmergencySymptoms(t *testing.T) {
	service := newTestHealthService(nil, &stubProvider{name: "groq", text: "Seek help."})

	analysis := service.AnalyzeSymptoms(context.Background(), SymptomContext{
		Symptoms: []string{"chest pain"},
		Severity: "mild",
	})

	require.True(t, analysis.Succeeded)
	assert.Equal(t, entities.RiskHigh, analysis.Level)
	assert.True(t, analysis.UrgentCareNeeded)
}

func TestAnalyzeSymptoms_ProviderFailure(t *testing.T) {
	service := newTestHealthService(nil, &stubProvider{name: "groq", err: errors.New("down")})

	analysis := service.AnalyzeSymptoms(context.Background(), SymptomContext{Symptoms: []string{"fever"}})

	assert.False(t, analysis.Succeeded)
	assert.Contains(t, analysis.Error, "All AI services are unavailable")
}

func TestHealthTips_DefaultCategoryAndParsing(t *testing.T) {
	service := newTestHealthService(nil, &stubProvider{
		name: "groq",
		text: "1. Stay hydrated: Drink water\n2. Sleep well: 8 hours nightly",
	})

	result := service.HealthTips(context.Background(), "", "en", false, nil)

	require.True(t, result.Succeeded)
	assert.Equal(t, "general", result.Category)
	assert.False(t, result.Personalized)
	require.Len(t, result.Tips, 2)
	assert.Equal(t, "Stay hydrated", result.Tips[0].Title)
}

func TestHealthTips_CachesNonPersonalized(t *testing.T) {
	provider := &stubProvider{name: "groq", text: "1. Tip one: details"}
	service := newTestHealthService(newMemoryCache(), provider)

	service.HealthTips(context.Background(), "sleep", "en", false, nil)
	service.HealthTips(context.Background(), "sleep", "en", false, nil)
	assert.Equal(t, 1, provider.calls)

	// Personalized requests bypass the cache.
	service.HealthTips(context.Background(), "sleep", "en", true, map[string]string{"age": "30"})
	assert.Equal(t, 2, provider.calls)
}

func TestHealthTips_ProviderFailure(t *testing.T) {
	service := newTestHealthService(nil, &stubProvider{name: "groq", err: errors.New("down")})

	result := service.HealthTips(context.Background(), "sleep", "en", false, nil)

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.Error, "All AI services are unavailable")
}

func TestPredictRisks(t *testing.T) {
	service := newTestHealthService(nil, &stubProvider{
		name: "groq",
		text: "There is an elevated risk of diabetes given the metrics.",
	})

	prediction := service.PredictRisks(
		context.Background(),
		PredictionContext{HealthMetrics: map[string]string{"bmi": "31"}},
		entities.HealthMetrics{BMI: 31},
		[]string{"hypertension"},
		entities.LifestyleFactors{Smoking: true},
	)

	require.True(t, prediction.Succeeded)
	require.Len(t, prediction.Predictions, 1)
	assert.Equal(t, "Diabetes", prediction.Predictions[0].Condition)
	assert.Len(t, prediction.RiskFactors, 3)
	assert.Len(t, prediction.PreventiveMeasures, 5)
	assert.Equal(t, "5-10 years", prediction.Timeline)
	assert.Equal(t, 0.7, prediction.Confidence)
}
