package services

import (
	"testing"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessSymptomRisk_EmergencyKeywordDominates(t *testing.T) {
	level := AssessSymptomRisk([]string{"mild chest pain"}, "mild")
	assert.Equal(t, entities.RiskHigh, level)
}

func TestAssessSymptomRisk_SevereSeverity(t *testing.T) {
	level := AssessSymptomRisk([]string{"headache"}, "severe")
	assert.Equal(t, entities.RiskHigh, level)
}

func TestAssessSymptomRisk_ManySymptoms(t *testing.T) {
	level := AssessSymptomRisk([]string{"headache", "fatigue", "nausea", "dizziness"}, "mild")
	assert.Equal(t, entities.RiskMedium, level)
}

func TestAssessSymptomRisk_ModerateSeverity(t *testing.T) {
	level := AssessSymptomRisk([]string{"headache"}, "moderate")
	assert.Equal(t, entities.RiskMedium, level)
}

func TestAssessSymptomRisk_Default(t *testing.T) {
	level := AssessSymptomRisk([]string{"tiredness"}, "mild")
	assert.Equal(t, entities.RiskLow, level)
}

func TestUrgentCareNeeded(t *testing.T) {
	assert.True(t, UrgentCareNeeded([]string{"severe bleeding"}, "mild"))
	assert.True(t, UrgentCareNeeded([]string{"headache"}, "severe"))
	assert.False(t, UrgentCareNeeded([]string{"headache"}, "mild"))
}

func TestRiskRecommendations(t *testing.T) {
	high := RiskRecommendations(entities.RiskHigh)
	require.Len(t, high, 5)
	assert.Equal(t, "Seek immediate medical attention", high[0])
	assert.Equal(t, "Track your symptoms", high[4])

	low := RiskRecommendations(entities.RiskLow)
	require.Len(t, low, 5)
	assert.Equal(t, "Rest and stay hydrated", low[0])
}

func TestAssessFamilyRisk_HighCondition(t *testing.T) {
	members := []entities.FamilyMember{
		{Name: "Rahim", ChronicDiseases: []string{"Type 2 Diabetes"}},
		{Name: "Karim"},
	}

	assessment := AssessFamilyRisk(members)
	assert.Equal(t, entities.RiskHigh, assessment.Level)
	assert.Contains(t, assessment.Factors, "Diabetes")
	assert.Equal(t, "Regular monitoring and preventive care recommended", assessment.Recommendation)
}

func TestAssessFamilyRisk_MediumOnlyWhenNoHigh(t *testing.T) {
	members := []entities.FamilyMember{
		{Name: "Fatima", ChronicDiseases: []string{"Asthma"}},
	}

	assessment := AssessFamilyRisk(members)
	assert.Equal(t, entities.RiskMedium, assessment.Level)
	assert.Equal(t, []string{"Asthma"}, assessment.Factors)
}

func TestAssessFamilyRisk_NoConditions(t *testing.T) {
	assessment := AssessFamilyRisk([]entities.FamilyMember{{Name: "Ayesha"}})
	assert.Equal(t, entities.RiskLow, assessment.Level)
	assert.Empty(t, assessment.Factors)
	assert.Equal(t, "Maintain healthy lifestyle", assessment.Recommendation)
}

func TestExtractRiskFactors_BMIBands(t *testing.T) {
	obese := ExtractRiskFactors(entities.HealthMetrics{BMI: 32}, nil, entities.LifestyleFactors{})
	require.Len(t, obese, 1)
	assert.Equal(t, entities.RiskFactor{Factor: "High BMI (Obesity)", Impact: entities.ImpactHigh}, obese[0])

	overweight := ExtractRiskFactors(entities.HealthMetrics{BMI: 27}, nil, entities.LifestyleFactors{})
	require.Len(t, overweight, 1)
	assert.Equal(t, entities.RiskFactor{Factor: "Overweight", Impact: entities.ImpactMedium}, overweight[0])

	normal := ExtractRiskFactors(entities.HealthMetrics{BMI: 22}, nil, entities.LifestyleFactors{})
	assert.Empty(t, normal)
}

func TestExtractRiskFactors_BloodPressure(t *testing.T) {
	factors := ExtractRiskFactors(entities.HealthMetrics{BloodPressure: "150/95"}, nil, entities.LifestyleFactors{})
	require.Len(t, factors, 1)
	assert.Equal(t, "High Blood Pressure", factors[0].Factor)

	assert.Empty(t, ExtractRiskFactors(entities.HealthMetrics{BloodPressure: "120/80"}, nil, entities.LifestyleFactors{}))
	assert.Empty(t, ExtractRiskFactors(entities.HealthMetrics{BloodPressure: "not measured"}, nil, entities.LifestyleFactors{}))
}

func TestExtractRiskFactors_HistoryAndLifestyle(t *testing.T) {
	factors := ExtractRiskFactors(
		entities.HealthMetrics{},
		[]string{"gestational diabetes"},
		entities.LifestyleFactors{Smoking: true, Exercise: "sedentary"},
	)

	require.Len(t, factors, 3)
	assert.Equal(t, entities.RiskFactor{Factor: "History of gestational diabetes", Impact: entities.ImpactMedium}, factors[0])
	assert.Equal(t, entities.RiskFactor{Factor: "Smoking", Impact: entities.ImpactHigh}, factors[1])
	assert.Equal(t, entities.RiskFactor{Factor: "Sedentary Lifestyle", Impact: entities.ImpactMedium}, factors[2])
}

func TestRiskLevelMax(t *testing.T) {
	assert.Equal(t, entities.RiskHigh, entities.RiskLow.Max(entities.RiskHigh))
	assert.Equal(t, entities.RiskMedium, entities.RiskMedium.Max(entities.RiskLow))
}
