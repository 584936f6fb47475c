package entities

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ConversationTurn is a single message in a conversation. Turns are ordered
// oldest first; the caller owns the slice and the core never mutates it.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest carries everything a chat provider needs for one call.
// Built fresh per call and immutable once constructed.
type GenerationRequest struct {
	UserMessage  string
	SystemPrompt string
	History      []ConversationTurn
	ModelHint    string
}

// GenerationResult is the normalized outcome of a generation attempt.
// Either Text is present and Succeeded is true, or Succeeded is false
// and ErrorDetail explains why.
type GenerationResult struct {
	Succeeded    bool   `json:"success"`
	Text         string `json:"message,omitempty"`
	Locale       string `json:"language,omitempty"`
	ProviderUsed string `json:"model_used,omitempty"`
	ErrorDetail  string `json:"error,omitempty"`
}

// ChatLog records one completed chat exchange for history retrieval.
type ChatLog struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Message      string    `json:"message" db:"message"`
	Response     string    `json:"response" db:"response"`
	Locale       string    `json:"language" db:"language"`
	ProviderUsed string    `json:"model_used" db:"model_used"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
