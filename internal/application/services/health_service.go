package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

const (
	symptomDisclaimer = "This is not medical advice. Please consult a healthcare professional for proper diagnosis and treatment."
	tipsCacheTTL      = 6 * time.Hour
)

// HealthTipsResult is the outcome of a tip-generation call.
type HealthTipsResult struct {
	Succeeded    bool                 `json:"success"`
	Tips         []entities.HealthTip `json:"tips,omitempty"`
	Category     string               `json:"category,omitempty"`
	Personalized bool                 `json:"personalized"`
	Error        string               `json:"error,omitempty"`
}

// HealthService combines the chat orchestrator, prompt builder, and the
// deterministic extractors into the symptom-analysis, tips, and prediction
// operations.
type HealthService struct {
	chat    *ChatService
	prompts *PromptBuilder
	cache   providers.CacheProvider
}

// NewHealthService creates a new health service. A nil cache disables tip
// caching.
func NewHealthService(chat *ChatService, prompts *PromptBuilder, cache providers.CacheProvider) *HealthService {
	return &HealthService{chat: chat, prompts: prompts, cache: cache}
}

// AnalyzeSymptoms obtains the model's free-text analysis and layers the
// rule-based risk level, recommendations, and urgency flag on top of it.
func (s *HealthService) AnalyzeSymptoms(ctx context.Context, sc SymptomContext) entities.SymptomAnalysis {
	if len(sc.Symptoms) == 0 {
		return entities.SymptomAnalysis{
			Succeeded: false,
			Error:     "at least one symptom is required",
		}
	}

	result := s.chat.Generate(ctx, entities.GenerationRequest{
		UserMessage:  s.prompts.SymptomAnalysisPrompt(sc),
		SystemPrompt: s.prompts.SystemPrompt("en", true, nil),
	})
	if !result.Succeeded {
		return entities.SymptomAnalysis{
			Succeeded: false,
			Error:     result.ErrorDetail,
		}
	}

	level := AssessSymptomRisk(sc.Symptoms, sc.Severity)

	return entities.SymptomAnalysis{
		Succeeded:          true,
		Analysis:           result.Text,
		Level:              level,
		Recommendations:    RiskRecommendations(level),
		PossibleConditions: ExtractConditions(result.Text),
		UrgentCareNeeded:   UrgentCareNeeded(sc.Symptoms, sc.Severity),
		Disclaimer:         symptomDisclaimer,
	}
}

// HealthTips generates tips for a category, serving repeated
// non-personalized requests from cache.
func (s *HealthService) HealthTips(ctx context.Context, category, locale string, personalized bool, profile map[string]string) HealthTipsResult {
	if category == "" {
		category = "general"
	}

	cacheKey := fmt.Sprintf("tips:%s:%s", category, locale)
	if !personalized {
		if cached := s.cachedTips(ctx, cacheKey); cached != nil {
			return *cached
		}
	}

	resp := s.chat.Chat(ctx, ChatRequest{
		Message:     s.prompts.HealthTipsPrompt(category, personalized, profile),
		Locale:      locale,
		MedicalMode: true,
	})
	if !resp.Succeeded {
		return HealthTipsResult{Succeeded: false, Error: resp.ErrorDetail}
	}

	result := HealthTipsResult{
		Succeeded:    true,
		Tips:         ParseHealthTips(resp.Text),
		Category:     category,
		Personalized: personalized,
	}

	if !personalized {
		s.storeTips(ctx, cacheKey, result)
	}
	return result
}

// PredictRisks obtains the model's free-text prediction and layers the
// vocabulary extraction and metric-based risk factors on top of it.
func (s *HealthService) PredictRisks(ctx context.Context, pc PredictionContext, metrics entities.HealthMetrics, history []string, lifestyle entities.LifestyleFactors) entities.HealthPrediction {
	result := s.chat.Generate(ctx, entities.GenerationRequest{
		UserMessage:  s.prompts.RiskPredictionPrompt(pc),
		SystemPrompt: s.prompts.SystemPrompt("en", true, nil),
	})
	if !result.Succeeded {
		return entities.HealthPrediction{
			Succeeded: false,
			Error:     result.ErrorDetail,
		}
	}

	return entities.HealthPrediction{
		Succeeded:          true,
		Predictions:        ExtractPredictions(result.Text),
		RiskFactors:        ExtractRiskFactors(metrics, history, lifestyle),
		PreventiveMeasures: PreventiveMeasures(),
		Timeline:           "5-10 years",
		Confidence:         0.7,
	}
}

func (s *HealthService) cachedTips(ctx context.Context, key string) *HealthTipsResult {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	var result HealthTipsResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func (s *HealthService) storeTips(ctx context.Context, key string, result HealthTipsResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, tipsCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache health tips")
	}
}
