package services

import (
	"strconv"
	"strings"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// Rule tables for risk assessment. Priority order is explicit: emergency
// keywords dominate severity hints, which dominate the symptom-count rule.
var emergencySymptomKeywords = []string{
	"chest pain", "difficulty breathing", "severe bleeding",
	"loss of consciousness", "seizure", "stroke symptoms",
}

var urgentCareKeywords = []string{
	"chest pain", "severe", "difficulty breathing", "bleeding",
	"unconscious", "seizure", "stroke",
}

var highRiskConditions = []string{"diabetes", "heart disease", "cancer", "stroke", "hypertension"}

var mediumRiskConditions = []string{"asthma", "arthritis", "allergies", "obesity"}

// AssessSymptomRisk derives the categorical risk level from the symptom list
// and severity hint. First matching rule wins.
func AssessSymptomRisk(symptoms []string, severity string) entities.RiskLevel {
	joined := strings.ToLower(strings.Join(symptoms, " "))
	for _, keyword := range emergencySymptomKeywords {
		if strings.Contains(joined, keyword) {
			return entities.RiskHigh
		}
	}

	switch {
	case severity == "severe":
		return entities.RiskHigh
	case severity == "moderate" || len(symptoms) > 3:
		return entities.RiskMedium
	default:
		return entities.RiskLow
	}
}

// UrgentCareNeeded reports whether the symptoms or severity call for
// immediate medical attention.
func UrgentCareNeeded(symptoms []string, severity string) bool {
	joined := strings.ToLower(strings.Join(symptoms, " "))
	for _, keyword := range urgentCareKeywords {
		if strings.Contains(joined, keyword) {
			return true
		}
	}
	return severity == "severe"
}

// RiskRecommendations returns the canned care recommendations for a level,
// followed by the general ones.
func RiskRecommendations(level entities.RiskLevel) []string {
	var recommendations []string

	switch level {
	case entities.RiskHigh:
		recommendations = append(recommendations,
			"Seek immediate medical attention",
			"Do not delay consulting a healthcare professional")
	case entities.RiskMedium:
		recommendations = append(recommendations,
			"Consult a doctor soon",
			"Monitor symptoms closely")
	default:
		recommendations = append(recommendations,
			"Rest and stay hydrated",
			"Monitor symptoms for changes")
	}

	recommendations = append(recommendations,
		"Maintain a healthy diet",
		"Get adequate sleep",
		"Track your symptoms")

	return recommendations
}

// AssessFamilyRisk scans the family's pooled chronic conditions against the
// high-risk list, then, only when nothing matched, the medium-risk list.
// Matched conditions are title-cased into the factor list.
func AssessFamilyRisk(members []entities.FamilyMember) entities.RiskAssessment {
	conditions := make(map[string]struct{})
	for _, m := range members {
		for _, d := range m.ChronicDiseases {
			conditions[strings.ToLower(d)] = struct{}{}
		}
	}

	level := entities.RiskLow
	var factors []string

	for _, candidate := range highRiskConditions {
		if anyConditionContains(conditions, candidate) {
			factors = append(factors, titleCase(candidate))
			level = entities.RiskHigh
		}
	}

	if level == entities.RiskLow {
		for _, candidate := range mediumRiskConditions {
			if anyConditionContains(conditions, candidate) {
				factors = append(factors, titleCase(candidate))
				level = entities.RiskMedium
			}
		}
	}

	recommendation := "Maintain healthy lifestyle"
	if level != entities.RiskLow {
		recommendation = "Regular monitoring and preventive care recommended"
	}

	return entities.RiskAssessment{
		Level:          level,
		Factors:        factors,
		Recommendation: recommendation,
	}
}

// ExtractRiskFactors derives the qualitative factor list from numeric
// metrics, medical history, and lifestyle flags. Factors are independent and
// accumulate.
func ExtractRiskFactors(metrics entities.HealthMetrics, history []string, lifestyle entities.LifestyleFactors) []entities.RiskFactor {
	var factors []entities.RiskFactor

	if metrics.BMI > 30 {
		factors = append(factors, entities.RiskFactor{Factor: "High BMI (Obesity)", Impact: entities.ImpactHigh})
	} else if metrics.BMI > 25 {
		factors = append(factors, entities.RiskFactor{Factor: "Overweight", Impact: entities.ImpactMedium})
	}

	if systolic, ok := parseSystolic(metrics.BloodPressure); ok && systolic > 140 {
		factors = append(factors, entities.RiskFactor{Factor: "High Blood Pressure", Impact: entities.ImpactHigh})
	}

	for _, condition := range history {
		factors = append(factors, entities.RiskFactor{Factor: "History of " + condition, Impact: entities.ImpactMedium})
	}

	if lifestyle.Smoking {
		factors = append(factors, entities.RiskFactor{Factor: "Smoking", Impact: entities.ImpactHigh})
	}

	exercise := strings.ToLower(lifestyle.Exercise)
	if strings.Contains(exercise, "sedentary") || strings.Contains(exercise, "none") {
		factors = append(factors, entities.RiskFactor{Factor: "Sedentary Lifestyle", Impact: entities.ImpactMedium})
	}

	return factors
}

// parseSystolic reads the integer before "/" in a "systolic/diastolic"
// blood pressure string.
func parseSystolic(bp string) (int, bool) {
	idx := strings.Index(bp, "/")
	if idx <= 0 {
		return 0, false
	}
	systolic, err := strconv.Atoi(strings.TrimSpace(bp[:idx]))
	if err != nil {
		return 0, false
	}
	return systolic, true
}

func anyConditionContains(conditions map[string]struct{}, candidate string) bool {
	for condition := range conditions {
		if strings.Contains(condition, candidate) {
			return true
		}
	}
	return false
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
