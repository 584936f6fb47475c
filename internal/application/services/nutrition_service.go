package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/rs/zerolog/log"
)

const plannerSystemPrompt = "You are an expert AI Nutritionist and Fitness Coach that provides responses in JSON format."

const planUnavailableError = "Failed to generate the plan. The AI model may be temporarily unavailable or the request could not be processed."

// JSONGenerator is the narrow capability the planner needs: a single-turn
// completion constrained to JSON output.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NutritionService generates schema-validated nutrition, supplement, and
// exercise plans.
type NutritionService struct {
	generator JSONGenerator
	prompts   *PromptBuilder
}

// NewNutritionService creates a new nutrition service. A nil generator means
// plan generation is unavailable.
func NewNutritionService(generator JSONGenerator, prompts *PromptBuilder) *NutritionService {
	return &NutritionService{generator: generator, prompts: prompts}
}

// CreatePlan generates a 7-day plan for the user's metrics and goals. Any
// provider or decoding failure yields a failed result with the generic
// unavailable message.
func (s *NutritionService) CreatePlan(ctx context.Context, req entities.PlanRequest) entities.NutritionFitnessPlan {
	if s.generator == nil {
		return entities.NutritionFitnessPlan{
			Succeeded: false,
			Error:     planUnavailableError,
		}
	}

	raw, err := s.generator.GenerateJSON(ctx, plannerSystemPrompt, s.prompts.NutritionPlanPrompt(req))
	if err != nil {
		log.Error().Err(err).Msg("nutrition plan generation failed")
		return entities.NutritionFitnessPlan{
			Succeeded: false,
			Error:     planUnavailableError,
		}
	}

	var plan entities.NutritionFitnessPlan
	if err := json.Unmarshal([]byte(StripMarkdownFences(raw)), &plan); err != nil {
		log.Error().Err(err).Msg("nutrition plan response is not valid JSON")
		return entities.NutritionFitnessPlan{
			Succeeded: false,
			Error:     planUnavailableError,
		}
	}

	plan.Succeeded = true
	plan.Error = ""
	if plan.Disclaimer == "" {
		plan.Disclaimer = entities.PlanDisclaimer
	}
	return plan
}

// StripMarkdownFences removes a surrounding ```json ... ``` block that some
// models emit despite JSON-only instructions.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
