package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/providers"
	apperrors "github.com/mysahara/health-assistant/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(_ context.Context, _ entities.GenerationRequest) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

type stubChatLogRepo struct {
	created []*entities.ChatLog
	err     error
}

func (r *stubChatLogRepo) Create(_ context.Context, chatLog *entities.ChatLog) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, chatLog)
	return nil
}

func (r *stubChatLogRepo) ListByUser(_ context.Context, _ string, _ int) ([]*entities.ChatLog, error) {
	return r.created, nil
}

func newTestChatService(chatProviders ...providers.ChatProvider) *ChatService {
	return NewChatService(chatProviders, NewPromptBuilder(), nil)
}

func TestGenerate_PrimarySucceeds(t *testing.T) {
	primary := &stubProvider{name: "groq", text: "hello"}
	secondary := &stubProvider{name: "gemini", text: "unused"}
	service := newTestChatService(primary, secondary)

	result := service.Generate(context.Background(), entities.GenerationRequest{UserMessage: "hi"})

	assert.True(t, result.Succeeded)
	assert.Equal(t, "hello", result.Text)
	assert.Equal(t, "groq", result.ProviderUsed)
	assert.Equal(t, 0, secondary.calls)
}

func TestGenerate_FallsThroughToSecondary(t *testing.T) {
	primary := &stubProvider{name: "groq", err: errors.New("quota exceeded")}
	secondary := &stubProvider{name: "gemini", text: "fallback reply"}
	service := newTestChatService(primary, secondary)

	result := service.Generate(context.Background(), entities.GenerationRequest{UserMessage: "hi"})

	assert.True(t, result.Succeeded)
	assert.Equal(t, "fallback reply", result.Text)
	assert.Equal(t, "gemini", result.ProviderUsed)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestGenerate_AllProvidersFail(t *testing.T) {
	primary := &stubProvider{name: "groq", err: errors.New("timeout")}
	secondary := &stubProvider{name: "gemini", err: providers.ErrProviderUnauthorized}
	service := newTestChatService(primary, secondary)

	result := service.Generate(context.Background(), entities.GenerationRequest{UserMessage: "hi"})

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.ErrorDetail, "All AI services are unavailable")
	assert.Contains(t, result.ErrorDetail, "groq: timeout")
	assert.Contains(t, result.ErrorDetail, "gemini: "+providers.ErrProviderUnauthorized.Error())
}

func TestGenerate_NoProvidersConfigured(t *testing.T) {
	service := newTestChatService()

	result := service.Generate(context.Background(), entities.GenerationRequest{UserMessage: "hi"})

	assert.False(t, result.Succeeded)
	assert.Equal(t, "All AI services are unavailable", result.ErrorDetail)
}

func TestGenerate_OneAttemptPerProvider(t *testing.T) {
	only := &stubProvider{name: "groq", err: errors.New("boom")}
	service := newTestChatService(only)

	service.Generate(context.Background(), entities.GenerationRequest{UserMessage: "hi"})

	assert.Equal(t, 1, only.calls)
}

func TestChat_EchoesRequestedLocale(t *testing.T) {
	service := newTestChatService(&stubProvider{name: "groq", text: "ok"})

	resp := service.Chat(context.Background(), ChatRequest{Message: "hello", Locale: "bn"})

	assert.True(t, resp.Succeeded)
	assert.Equal(t, "bn", resp.Locale)
}

func TestChat_AutoLocaleDetects(t *testing.T) {
	service := newTestChatService(&stubProvider{name: "groq", text: "ok"})

	resp := service.Chat(context.Background(), ChatRequest{Message: "আমার মাথা ব্যথা", Locale: "auto"})

	assert.Equal(t, "bn", resp.Locale)
}

func TestChat_SuggestionsOnlyOnSuccess(t *testing.T) {
	failing := newTestChatService(&stubProvider{name: "groq", err: errors.New("down")})
	resp := failing.Chat(context.Background(), ChatRequest{Message: "hello", Locale: "en"})
	assert.False(t, resp.Succeeded)
	assert.Empty(t, resp.Suggestions)

	working := newTestChatService(&stubProvider{name: "groq", text: "ok"})
	resp = working.Chat(context.Background(), ChatRequest{Message: "tell me about diabetes", Locale: "en"})
	assert.True(t, resp.Succeeded)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestChat_PersistsHistoryForKnownUser(t *testing.T) {
	repo := &stubChatLogRepo{}
	service := NewChatService([]providers.ChatProvider{&stubProvider{name: "groq", text: "reply"}}, NewPromptBuilder(), repo)

	service.Chat(context.Background(), ChatRequest{UserID: "user-1", Message: "hello", Locale: "en"})

	require.Len(t, repo.created, 1)
	assert.Equal(t, "user-1", repo.created[0].UserID)
	assert.Equal(t, "hello", repo.created[0].Message)
	assert.Equal(t, "reply", repo.created[0].Response)
	assert.Equal(t, "groq", repo.created[0].ProviderUsed)
	assert.False(t, repo.created[0].CreatedAt.IsZero())
}

func TestChat_SkipsHistoryForAnonymousUser(t *testing.T) {
	repo := &stubChatLogRepo{}
	service := NewChatService([]providers.ChatProvider{&stubProvider{name: "groq", text: "reply"}}, NewPromptBuilder(), repo)

	service.Chat(context.Background(), ChatRequest{Message: "hello", Locale: "en"})

	assert.Empty(t, repo.created)
}

func TestGenerateSuggestions_KeywordTables(t *testing.T) {
	diabetes := GenerateSuggestions("I think I have diabetes", "en")
	assert.Contains(t, diabetes, "Tell me about diabetes prevention")

	pressure := GenerateSuggestions("my blood pressure is high", "en")
	assert.Contains(t, pressure, "Explain blood pressure readings")

	symptoms := GenerateSuggestions("these symptoms worry me", "en")
	assert.Contains(t, symptoms, "Should I see a doctor?")

	fallback := GenerateSuggestions("hello there", "en")
	assert.Equal(t, []string{"Would you like more details?", "Do you have any other questions?"}, fallback)

	bangla := GenerateSuggestions("ডায়াবেটিস সম্পর্কে বলুন", "bn")
	assert.Contains(t, bangla, "ডায়াবেটিস প্রতিরোধ সম্পর্কে জানুন")
}

func TestStaticListings(t *testing.T) {
	assert.Len(t, ConversationStarters("en"), 5)
	assert.Len(t, ConversationStarters("bn"), 5)
	assert.Len(t, EmergencySymptoms("en"), 8)
	assert.Len(t, EmergencySymptoms("bn"), 8)
	assert.Len(t, HealthCategories("en"), 6)
	assert.Equal(t, "পুষ্টি", HealthCategories("bn")[0].Name)
}

func TestHistory_NoRepositoryConfigured(t *testing.T) {
	service := newTestChatService(&stubProvider{name: "groq", text: "ok"})

	logs, err := service.History(context.Background(), "user-1", 10)

	require.Error(t, err)
	assert.Nil(t, logs)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}

func TestHistory_WithRepository(t *testing.T) {
	repo := &stubChatLogRepo{created: []*entities.ChatLog{{UserID: "user-1", Message: "hi"}}}
	service := NewChatService(nil, NewPromptBuilder(), repo)

	logs, err := service.History(context.Background(), "user-1", 10)

	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "hi", logs[0].Message)
}
