package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListItems_DropsProse(t *testing.T) {
	items := ParseListItems("Here are some tips:\n1. Drink water\n2. Sleep 8 hours\nRemember to consult a doctor.")
	assert.Equal(t, []string{"Drink water", "Sleep 8 hours"}, items)
}

func TestParseListItems_BulletStyles(t *testing.T) {
	items := ParseListItems("- First\n• Second\n3) Third")
	assert.Equal(t, []string{"First", "Second", "Third"}, items)
}

func TestParseListItems_EmptyEnumerators(t *testing.T) {
	assert.Empty(t, ParseListItems("1.\n- \nplain prose"))
}

func TestParseHealthTips_ColonSplit(t *testing.T) {
	tips := ParseHealthTips("1. Stay hydrated: Drink at least 8 glasses of water daily")
	require.Len(t, tips, 1)
	assert.Equal(t, "Stay hydrated", tips[0].Title)
	assert.Equal(t, "Drink at least 8 glasses of water daily", tips[0].Description)
	assert.Equal(t, "health_and_safety", tips[0].Icon)
}

func TestParseHealthTips_TruncatesColonlessTitle(t *testing.T) {
	long := "1. " + strings.Repeat("walk every single day ", 4)
	tips := ParseHealthTips(long)
	require.Len(t, tips, 1)
	assert.Len(t, tips[0].Title, 50)
	assert.Greater(t, len(tips[0].Description), 50)
}

func TestParseHealthTips_WholeTextFallback(t *testing.T) {
	tips := ParseHealthTips("Eating vegetables keeps your immune system strong.")
	require.Len(t, tips, 1)
	assert.Equal(t, "Health Tip", tips[0].Title)
	assert.Equal(t, "Eating vegetables keeps your immune system strong.", tips[0].Description)
}

func TestParseHealthTips_CapTen(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 12; i++ {
		sb.WriteString("1. Tip number goes here\n")
	}
	assert.Len(t, ParseHealthTips(sb.String()), 10)
}

func TestParseFamilyRecommendations_Fallback(t *testing.T) {
	recommendations := ParseFamilyRecommendations("The family seems generally healthy.")
	assert.Equal(t, defaultFamilyRecommendations, recommendations)
}

func TestParseFamilyRecommendations_CapFive(t *testing.T) {
	text := "1. a\n2. b\n3. c\n4. d\n5. e\n6. f"
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ParseFamilyRecommendations(text))
}

func TestExtractConditions(t *testing.T) {
	conditions := ExtractConditions("This could be a common cold or possibly the flu.")
	require.Len(t, conditions, 2)
	assert.Equal(t, entities.DetectedCondition{Condition: "Common Cold", Probability: 0.5}, conditions[0])
	assert.Equal(t, "Flu", conditions[1].Condition)
}

func TestExtractConditions_NoHits(t *testing.T) {
	assert.Empty(t, ExtractConditions("You appear to be in good health."))
}

func TestExtractPredictions(t *testing.T) {
	predictions := ExtractPredictions("Elevated risk of diabetes and heart disease over time.")
	require.Len(t, predictions, 2)
	assert.Equal(t, "Diabetes", predictions[0].Condition)
	assert.Equal(t, entities.RiskMedium, predictions[0].Risk)
	assert.Equal(t, "5-10 years", predictions[0].Timeframe)
	assert.Equal(t, "Heart Disease", predictions[1].Condition)
}

func TestPreventiveMeasures_FirstFive(t *testing.T) {
	measures := PreventiveMeasures()
	require.Len(t, measures, 5)
	assert.Equal(t, "Maintain a healthy, balanced diet", measures[0])
	assert.Equal(t, "Get adequate sleep (7-8 hours)", measures[4])
}

func TestParseHealthTips_BanglaTitleTruncation(t *testing.T) {
	tips := ParseHealthTips("1. " + strings.Repeat("ব্যথা ", 9))

	require.Len(t, tips, 1)
	assert.True(t, utf8.ValidString(tips[0].Title))
	assert.Len(t, []rune(tips[0].Title), 50)
}
