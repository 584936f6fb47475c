package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/providers"
	"github.com/mysahara/health-assistant/backend/internal/domain/repositories"
	apperrors "github.com/mysahara/health-assistant/backend/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ChatRequest is the inbound shape of one chat call.
type ChatRequest struct {
	UserID      string                      `json:"user_id,omitempty"`
	Message     string                      `json:"message"`
	Locale      string                      `json:"language,omitempty"`
	History     []entities.ConversationTurn `json:"conversation_history,omitempty"`
	MedicalMode bool                        `json:"use_medical_mode"`
	Context     map[string]string           `json:"context,omitempty"`
}

// ChatResponse extends the generation result with follow-up suggestions.
type ChatResponse struct {
	entities.GenerationResult
	Suggestions []string `json:"suggestions,omitempty"`
}

// ChatService orchestrates generation across an ordered provider list with
// one attempt per provider and uniform failure fallthrough.
type ChatService struct {
	providers []providers.ChatProvider
	prompts   *PromptBuilder
	chatLogs  repositories.ChatLogRepository
}

// NewChatService creates a new chat service. Providers are tried in slice
// order; a nil chatLogs repository disables history persistence.
func NewChatService(chatProviders []providers.ChatProvider, prompts *PromptBuilder, chatLogs repositories.ChatLogRepository) *ChatService {
	return &ChatService{
		providers: chatProviders,
		prompts:   prompts,
		chatLogs:  chatLogs,
	}
}

// Chat runs the full chat flow: locale resolution, prompt assembly, provider
// fallback, follow-up suggestions, and best-effort history logging.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) ChatResponse {
	locale := NormalizeLocale(req.Locale, req.Message)
	echoLocale := req.Locale
	if echoLocale == "" || echoLocale == "auto" {
		echoLocale = locale
	}

	systemPrompt := s.prompts.SystemPrompt(locale, req.MedicalMode, req.Context)

	result := s.Generate(ctx, entities.GenerationRequest{
		UserMessage:  req.Message,
		SystemPrompt: systemPrompt,
		History:      req.History,
	})
	result.Locale = echoLocale

	resp := ChatResponse{GenerationResult: result}
	if result.Succeeded {
		resp.Suggestions = GenerateSuggestions(req.Message, locale)
		s.logChat(ctx, req, result)
	}

	return resp
}

// Generate tries each configured provider once, in order, and returns the
// first success. Provider errors are absorbed into the fallthrough; the
// combined summary surfaces only when every provider has failed.
func (s *ChatService) Generate(ctx context.Context, req entities.GenerationRequest) entities.GenerationResult {
	if len(s.providers) == 0 {
		return entities.GenerationResult{
			Succeeded:   false,
			ErrorDetail: "All AI services are unavailable",
		}
	}

	var errs []string
	for i, provider := range s.providers {
		text, err := provider.Generate(ctx, req)
		if err != nil {
			log.Warn().
				Err(err).
				Str("provider", provider.Name()).
				Msg("chat provider failed, trying next")
			errs = append(errs, provider.Name()+": "+err.Error())
			continue
		}

		if i > 0 {
			recordFallback(ctx, provider.Name())
		}

		return entities.GenerationResult{
			Succeeded:    true,
			Text:         text,
			ProviderUsed: provider.Name(),
		}
	}

	return entities.GenerationResult{
		Succeeded:   false,
		ErrorDetail: "All AI services are unavailable: " + strings.Join(errs, "; "),
	}
}

func (s *ChatService) logChat(ctx context.Context, req ChatRequest, result entities.GenerationResult) {
	if s.chatLogs == nil || req.UserID == "" {
		return
	}

	err := s.chatLogs.Create(ctx, &entities.ChatLog{
		UserID:       req.UserID,
		Message:      req.Message,
		Response:     result.Text,
		Locale:       result.Locale,
		ProviderUsed: result.ProviderUsed,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Msg("failed to persist chat log")
	}
}

// History returns the most recent chat exchanges for a user. Unavailable
// when the service runs without a chat log repository.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]*entities.ChatLog, error) {
	if s.chatLogs == nil {
		return nil, apperrors.NewUnavailableError("chat history is not available")
	}
	return s.chatLogs.ListByUser(ctx, userID, limit)
}

// Translate asks the provider chain for a plain translation between the two
// supported languages.
func (s *ChatService) Translate(ctx context.Context, message, sourceLanguage, targetLanguage string) entities.GenerationResult {
	prompt := s.prompts.TranslationPrompt(message, sourceLanguage, targetLanguage)
	result := s.Generate(ctx, entities.GenerationRequest{
		UserMessage:  prompt,
		SystemPrompt: s.prompts.SystemPrompt(targetLanguage, false, nil),
	})
	result.Locale = targetLanguage
	return result
}

// ExplainTerm asks the provider chain for a medical-term explanation.
func (s *ChatService) ExplainTerm(ctx context.Context, term, locale string, simple bool) entities.GenerationResult {
	locale = NormalizeLocale(locale, term)
	prompt := s.prompts.TermExplanationPrompt(term, simple)
	result := s.Generate(ctx, entities.GenerationRequest{
		UserMessage:  prompt,
		SystemPrompt: s.prompts.SystemPrompt(locale, true, nil),
	})
	result.Locale = locale
	return result
}

// ConversationStarters returns the locale's canned starter questions.
func ConversationStarters(locale string) []string {
	if locale == "bn" {
		return []string{
			"আমার স্বাস্থ্য সম্পর্কে কিছু জানতে চাই",
			"ডায়াবেটিস সম্পর্কে জানতে চাই",
			"কীভাবে সুস্থ থাকব?",
			"মাথাব্যথার কারণ কী হতে পারে?",
			"উচ্চ রক্তচাপ কীভাবে নিয়ন্ত্রণ করব?",
		}
	}
	return []string{
		"What are the symptoms of diabetes?",
		"How can I improve my health?",
		"Tell me about high blood pressure",
		"What causes headaches?",
		"How to maintain a healthy diet?",
	}
}

// EmergencySymptoms returns the locale's emergency symptom listing.
func EmergencySymptoms(locale string) []string {
	if locale == "bn" {
		return []string{
			"বুকে ব্যথা বা চাপ",
			"শ্বাসকষ্ট",
			"হঠাৎ মাথা ঘোরা বা অজ্ঞান হয়ে যাওয়া",
			"তীব্র মাথাব্যথা",
			"অস্পষ্ট কথা বা দুর্বলতা",
			"তীব্র পেট ব্যথা",
			"অতিরিক্ত রক্তপাত",
			"খিঁচুনি",
		}
	}
	return []string{
		"Chest pain or pressure",
		"Difficulty breathing",
		"Sudden dizziness or fainting",
		"Severe headache",
		"Slurred speech or weakness",
		"Severe abdominal pain",
		"Excessive bleeding",
		"Seizures",
	}
}

// HealthCategories returns the selectable tip categories for a locale.
func HealthCategories(locale string) []entities.HealthCategory {
	if locale == "bn" {
		return []entities.HealthCategory{
			{ID: "nutrition", Name: "পুষ্টি", Icon: "restaurant"},
			{ID: "exercise", Name: "ব্যায়াম", Icon: "fitness_center"},
			{ID: "mental", Name: "মানসিক স্বাস্থ্য", Icon: "psychology"},
			{ID: "sleep", Name: "ঘুম", Icon: "bedtime"},
			{ID: "hydration", Name: "পানি পান", Icon: "water_drop"},
			{ID: "general", Name: "সাধারণ", Icon: "health_and_safety"},
		}
	}
	return []entities.HealthCategory{
		{ID: "nutrition", Name: "Nutrition", Icon: "restaurant"},
		{ID: "exercise", Name: "Exercise", Icon: "fitness_center"},
		{ID: "mental", Name: "Mental Health", Icon: "psychology"},
		{ID: "sleep", Name: "Sleep", Icon: "bedtime"},
		{ID: "hydration", Name: "Hydration", Icon: "water_drop"},
		{ID: "general", Name: "General", Icon: "health_and_safety"},
	}
}

// GenerateSuggestions produces keyword-driven follow-up suggestions for the
// message, falling back to locale defaults.
func GenerateSuggestions(message, locale string) []string {
	messageLower := strings.ToLower(message)

	if locale == "en" {
		switch {
		case strings.Contains(messageLower, "diabetes"):
			return []string{
				"Tell me about diabetes prevention",
				"What are diabetes management tips?",
				"Explain diabetes complications",
			}
		case strings.Contains(messageLower, "blood pressure"), strings.Contains(messageLower, "hypertension"):
			return []string{
				"How to lower blood pressure naturally?",
				"What foods help with blood pressure?",
				"Explain blood pressure readings",
			}
		case strings.Contains(messageLower, "symptom"):
			return []string{
				"Should I see a doctor?",
				"What are the treatment options?",
				"Are there home remedies?",
			}
		}
		return []string{
			"Would you like more details?",
			"Do you have any other questions?",
		}
	}

	if strings.Contains(message, "ডায়াবেটিস") || strings.Contains(messageLower, "diabetes") {
		return []string{
			"ডায়াবেটিস প্রতিরোধ সম্পর্কে জানুন",
			"ডায়াবেটিস নিয়ন্ত্রণের উপায়",
			"ডায়াবেটিসের জটিলতা",
		}
	}
	return []string{
		"আরও বিস্তারিত জানতে চান?",
		"অন্য কিছু জানতে চান?",
	}
}

var (
	fallbackCounterOnce sync.Once
	fallbackCounter     metric.Int64Counter
)

func recordFallback(ctx context.Context, provider string) {
	fallbackCounterOnce.Do(func() {
		meter := otel.Meter("github.com/mysahara/health-assistant/backend")
		counter, err := meter.Int64Counter(
			"ai.chat.fallback.count",
			metric.WithDescription("Number of chat calls that fell through to a secondary provider"),
		)
		if err == nil {
			fallbackCounter = counter
		}
	})
	if fallbackCounter == nil {
		return
	}
	fallbackCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("ai.provider", provider)))
}
