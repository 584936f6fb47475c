package services

import (
	"context"
	"strings"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// FamilyService produces family-wide insights and the exportable family
// health report.
type FamilyService struct {
	chat    *ChatService
	prompts *PromptBuilder
}

// NewFamilyService creates a new family service.
func NewFamilyService(chat *ChatService, prompts *PromptBuilder) *FamilyService {
	return &FamilyService{chat: chat, prompts: prompts}
}

// GenerateInsights asks the provider chain for a family health analysis and
// parses it into structured insights, a summary, recommendations, and the
// rule-based aggregate risk assessment.
func (s *FamilyService) GenerateInsights(ctx context.Context, members []entities.FamilyMember, focusAreas []string, locale string) entities.FamilyInsights {
	if len(members) == 0 {
		return entities.FamilyInsights{
			Succeeded: false,
			Error:     "at least one family member is required",
		}
	}

	result := s.chat.Generate(ctx, entities.GenerationRequest{
		UserMessage:  s.prompts.FamilyInsightPrompt(members, focusAreas),
		SystemPrompt: s.prompts.SystemPrompt(locale, true, nil),
	})
	if !result.Succeeded {
		return entities.FamilyInsights{
			Succeeded: false,
			Error:     result.ErrorDetail,
		}
	}

	risk := AssessFamilyRisk(members)

	return entities.FamilyInsights{
		Succeeded:       true,
		Insights:        buildInsights(result.Text, members),
		Summary:         extractSummary(result.Text),
		Recommendations: ParseFamilyRecommendations(result.Text),
		RiskAssessment:  &risk,
	}
}

// GenerateReport computes the aggregate metrics and report structure, with
// an optional AI-written summary.
func (s *FamilyService) GenerateReport(ctx context.Context, members []entities.FamilyMember, totalRecords, totalEvents int, includeAISummary bool, locale string) entities.FamilyReport {
	metrics := ComputeFamilyMetrics(members, totalRecords, totalEvents)

	memberSummaries := make([]map[string]interface{}, 0, len(members))
	for _, m := range members {
		conditions := m.ChronicDiseases
		if conditions == nil {
			conditions = []string{}
		}
		memberSummaries = append(memberSummaries, map[string]interface{}{
			"name":         m.Name,
			"relationship": m.Relationship,
			"conditions":   conditions,
		})
	}

	memberCount := len(members)
	if memberCount == 0 {
		memberCount = 1
	}

	reportData := map[string]interface{}{
		"family_summary": map[string]interface{}{
			"members":    memberSummaries,
			"statistics": metrics,
		},
		"health_records": map[string]interface{}{
			"total":      totalRecords,
			"per_member": float64(totalRecords) / float64(memberCount),
		},
		"medical_events": map[string]interface{}{
			"total":      totalEvents,
			"per_member": float64(totalEvents) / float64(memberCount),
		},
	}

	report := entities.FamilyReport{
		Succeeded:  true,
		ReportData: reportData,
		KeyMetrics: &metrics,
	}

	if includeAISummary && len(members) > 0 {
		result := s.chat.Generate(ctx, entities.GenerationRequest{
			UserMessage:  s.prompts.ReportSummaryPrompt(members, metrics),
			SystemPrompt: s.prompts.SystemPrompt(locale, true, nil),
		})
		if result.Succeeded {
			report.AISummary = result.Text
		}
	}

	return report
}

// ComputeFamilyMetrics aggregates member counts, condition coverage, and
// average age. AverageAge is nil when no member has an age.
func ComputeFamilyMetrics(members []entities.FamilyMember, totalRecords, totalEvents int) entities.FamilyMetrics {
	metrics := entities.FamilyMetrics{
		TotalMembers: len(members),
		TotalRecords: totalRecords,
		TotalEvents:  totalEvents,
	}

	unique := make(map[string]struct{})
	var ageSum, ageCount int

	for _, m := range members {
		if len(m.ChronicDiseases) > 0 {
			metrics.MembersWithConditions++
		}
		for _, d := range m.ChronicDiseases {
			unique[d] = struct{}{}
		}
		if m.Age > 0 {
			ageSum += m.Age
			ageCount++
		}
	}

	metrics.UniqueConditions = len(unique)
	if ageCount > 0 {
		avg := float64(ageSum) / float64(ageCount)
		metrics.AverageAge = &avg
	}

	return metrics
}

// buildInsights forms a general overview insight from the reply plus one
// management insight per distinct condition in the family.
func buildInsights(reply string, members []entities.FamilyMember) []entities.Insight {
	overview := truncateRunes(reply, 500)

	insights := []entities.Insight{{
		Type:        "general",
		Title:       "Family Health Overview",
		Description: overview,
		Priority:    "high",
	}}

	for _, condition := range uniqueConditions(members) {
		insights = append(insights, entities.Insight{
			Type:        "condition",
			Title:       condition + " Management",
			Description: "Family members with " + condition + " should monitor regularly and follow treatment plans.",
			Priority:    "medium",
		})
	}

	return insights
}

// extractSummary takes the first paragraph of the reply.
func extractSummary(reply string) string {
	paragraphs := strings.SplitN(reply, "\n\n", 2)
	if len(paragraphs) > 0 && paragraphs[0] != "" {
		return paragraphs[0]
	}
	return truncateRunes(reply, 200)
}
