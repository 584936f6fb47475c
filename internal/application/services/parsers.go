package services

import (
	"strings"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

const tipIcon = "health_and_safety"

// Vocabularies for substring-based extraction from model replies. The
// probability and timeframe values are acknowledged placeholders, not a
// scoring model.
var conditionVocabulary = []string{
	"common cold", "flu", "infection", "diabetes", "hypertension",
	"migraine", "allergy", "gastritis", "anxiety", "depression",
}

var predictionVocabulary = []string{
	"diabetes", "heart disease", "hypertension", "stroke",
	"obesity", "cancer", "arthritis",
}

var defaultFamilyRecommendations = []string{
	"Maintain regular health check-ups for all family members",
	"Keep medical records organized and up-to-date",
	"Monitor chronic conditions as prescribed",
	"Promote healthy lifestyle habits across the family",
}

var preventiveMeasures = []string{
	"Maintain a healthy, balanced diet",
	"Exercise regularly (150 minutes per week)",
	"Get regular health checkups",
	"Manage stress through relaxation techniques",
	"Get adequate sleep (7-8 hours)",
	"Stay hydrated",
	"Avoid smoking and excessive alcohol",
	"Monitor your health metrics regularly",
}

// ParseListItems pulls numbered or bulleted items out of free text. A line
// qualifies when its first character after trimming is a digit, '-', or '•';
// enumerator characters are stripped and empty remainders dropped. Prose
// lines are ignored.
func ParseListItems(text string) []string {
	var items []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		first := []rune(line)[0]
		if !(first >= '0' && first <= '9') && first != '-' && first != '•' {
			continue
		}

		item := strings.TrimLeft(line, "0123456789.-•) ")
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}

// ParseHealthTips splits list items into {title, description} on the first
// colon, truncating colonless titles to 50 characters. When no line
// qualifies the whole text becomes a single tip. Capped at 10.
func ParseHealthTips(text string) []entities.HealthTip {
	var tips []entities.HealthTip

	for _, item := range ParseListItems(text) {
		if idx := strings.Index(item, ":"); idx >= 0 {
			tips = append(tips, entities.HealthTip{
				Title:       strings.TrimSpace(item[:idx]),
				Description: strings.TrimSpace(item[idx+1:]),
				Icon:        tipIcon,
			})
		} else {
			title := truncateRunes(item, 50)
			tips = append(tips, entities.HealthTip{
				Title:       title,
				Description: item,
				Icon:        tipIcon,
			})
		}
	}

	if len(tips) == 0 {
		tips = append(tips, entities.HealthTip{
			Title:       "Health Tip",
			Description: text,
			Icon:        tipIcon,
		})
	}

	if len(tips) > 10 {
		tips = tips[:10]
	}
	return tips
}

// ParseFamilyRecommendations extracts list items, falling back to the fixed
// default list when the reply has no list structure. Capped at 5.
func ParseFamilyRecommendations(text string) []string {
	recommendations := ParseListItems(text)
	if len(recommendations) == 0 {
		recommendations = append(recommendations, defaultFamilyRecommendations...)
	}
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations
}

// ExtractConditions searches the full reply for known condition names.
// Capped at 5; probability is a fixed placeholder.
func ExtractConditions(text string) []entities.DetectedCondition {
	textLower := strings.ToLower(text)
	var conditions []entities.DetectedCondition

	for _, condition := range conditionVocabulary {
		if strings.Contains(textLower, condition) {
			conditions = append(conditions, entities.DetectedCondition{
				Condition:   titleCase(condition),
				Probability: 0.5,
			})
		}
		if len(conditions) == 5 {
			break
		}
	}

	return conditions
}

// ExtractPredictions searches the full reply for known predictable
// conditions. Capped at 5; risk, probability, and timeframe are fixed
// placeholders.
func ExtractPredictions(text string) []entities.RiskPrediction {
	textLower := strings.ToLower(text)
	var predictions []entities.RiskPrediction

	for _, condition := range predictionVocabulary {
		if strings.Contains(textLower, condition) {
			predictions = append(predictions, entities.RiskPrediction{
				Condition:   titleCase(condition),
				Risk:        entities.RiskMedium,
				Probability: 0.5,
				Timeframe:   "5-10 years",
			})
		}
		if len(predictions) == 5 {
			break
		}
	}

	return predictions
}

// PreventiveMeasures returns the first five canned preventive measures.
func PreventiveMeasures() []string {
	measures := make([]string, 5)
	copy(measures, preventiveMeasures[:5])
	return measures
}

// truncateRunes caps s at n characters. Slicing on runes keeps multi-byte
// text (Bangla replies) valid UTF-8.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
