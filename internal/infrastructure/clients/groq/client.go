package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
	"github.com/mysahara/health-assistant/backend/internal/domain/providers"
	"github.com/mysahara/health-assistant/backend/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Client implements the primary chat provider against the Groq chat
// completions API.
type Client struct {
	apiKey       string
	model        string
	plannerModel string
	baseURL      string
	httpClient   *http.Client
	limiter      *tokenBucket
}

// NewClient creates a new Groq client.
func NewClient(cfg *config.GroqConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("groq api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "llama-3.3-8b-instant"
	}
	plannerModel := cfg.PlannerModel
	if plannerModel == "" {
		plannerModel = "llama-3.3-70b-versatile"
	}

	return &Client{
		apiKey:       cfg.APIKey,
		model:        model,
		plannerModel: plannerModel,
		baseURL:      defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

// Name identifies the provider by its chat model.
func (c *Client) Name() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	TopP           float64       `json:"top_p"`
	Stream         bool          `json:"stream"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate sends system prompt + history + user message as a structured
// message list and returns the assistant reply.
func (c *Client) Generate(ctx context.Context, req entities.GenerationRequest) (string, error) {
	model := c.model
	if req.ModelHint != "" {
		model = req.ModelHint
	}

	messages := make([]chatMessage, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: string(entities.RoleSystem), Content: req.SystemPrompt})
	}
	for _, turn := range req.History {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: string(entities.RoleUser), Content: req.UserMessage})

	payload := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1024,
		TopP:        0.9,
	}

	return c.complete(ctx, model, payload)
}

// GenerateJSON runs a single-turn completion against the planner model with
// the JSON response format enforced. Used for schema-shaped outputs such as
// nutrition/fitness plans.
func (c *Client) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload := chatRequest{
		Model: c.plannerModel,
		Messages: []chatMessage{
			{Role: string(entities.RoleSystem), Content: systemPrompt},
			{Role: string(entities.RoleUser), Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
		TopP:        0.9,
		ResponseFormat: &struct {
			Type string `json:"type"`
		}{Type: "json_object"},
	}

	return c.complete(ctx, c.plannerModel, payload)
}

func (c *Client) complete(ctx context.Context, model string, payload chatRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			recordGroqMetric(ctx, model, 0, 0, err)
			return "", err
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGroqMetric(ctx, model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordGroqMetric(ctx, model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: groq request failed with status %d", providers.ErrProviderUnauthorized, resp.StatusCode)
		}
		return "", fmt.Errorf("groq request failed with status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		recordGroqMetric(ctx, model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		recordGroqMetric(ctx, model, resp.StatusCode, time.Since(start), errors.New("missing completion text"))
		return "", errors.New("groq response missing completion text")
	}

	recordGroqMetric(ctx, model, resp.StatusCode, time.Since(start), nil)
	return parsed.Choices[0].Message.Content, nil
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm <= 0 {
		rpm = 60
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type groqMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var groqMetricsInit = false
var groqMetricsSet groqMetrics

func ensureGroqMetrics() {
	if groqMetricsInit {
		return
	}
	meter := otel.Meter("github.com/mysahara/health-assistant/backend/groq")

	requestCount, err := meter.Int64Counter(
		"ai.groq.request.count",
		metric.WithDescription("Number of Groq requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.groq.request.duration",
		metric.WithDescription("Groq request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.groq.request.errors",
		metric.WithDescription("Number of Groq request errors"),
	)
	if err != nil {
		return
	}

	groqMetricsSet = groqMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	groqMetricsInit = true
}

func recordGroqMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureGroqMetrics()
	if !groqMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "groq"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	groqMetricsSet.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	groqMetricsSet.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		groqMetricsSet.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
