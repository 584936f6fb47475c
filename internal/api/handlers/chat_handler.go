package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mysahara/health-assistant/backend/internal/application/services"
)

// ChatHandler handles AI chat HTTP requests.
type ChatHandler struct {
	chat *services.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /api/ai/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var payload services.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Message == "" {
		respondWithError(w, http.StatusBadRequest, "message is required")
		return
	}

	respondWithJSON(w, http.StatusOK, h.chat.Chat(r.Context(), payload))
}

// ChatStream handles POST /api/ai/chat/stream
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotImplemented, "streaming responses are not supported")
}

// History handles GET /api/ai/chat/history/{userId}
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	logs, err := h.chat.History(r.Context(), userID, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"history": logs,
		"count":   len(logs),
	})
}

type translateRequest struct {
	Message        string `json:"message"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// Translate handles POST /api/ai/translate
func (h *ChatHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var payload translateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Message == "" || payload.TargetLanguage == "" {
		respondWithError(w, http.StatusBadRequest, "message and target_language are required")
		return
	}
	if payload.SourceLanguage == "" {
		payload.SourceLanguage = services.DetectLanguage(payload.Message)
	}

	result := h.chat.Translate(r.Context(), payload.Message, payload.SourceLanguage, payload.TargetLanguage)
	respondWithJSON(w, http.StatusOK, result)
}

type explainTermRequest struct {
	Term     string `json:"term"`
	Language string `json:"language"`
	Simple   bool   `json:"simple"`
}

// ExplainTerm handles POST /api/ai/explain-term
func (h *ChatHandler) ExplainTerm(w http.ResponseWriter, r *http.Request) {
	var payload explainTermRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Term == "" {
		respondWithError(w, http.StatusBadRequest, "term is required")
		return
	}

	result := h.chat.ExplainTerm(r.Context(), payload.Term, payload.Language, payload.Simple)
	respondWithJSON(w, http.StatusOK, result)
}

// ConversationStarters handles GET /api/ai/conversation-starters
func (h *ChatHandler) ConversationStarters(w http.ResponseWriter, r *http.Request) {
	locale := requestLocale(r)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"starters": services.ConversationStarters(locale),
		"language": locale,
	})
}

// EmergencySymptoms handles GET /api/ai/emergency-symptoms
func (h *ChatHandler) EmergencySymptoms(w http.ResponseWriter, r *http.Request) {
	locale := requestLocale(r)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"symptoms": services.EmergencySymptoms(locale),
		"language": locale,
		"note":     "Seek immediate medical attention if experiencing any of these symptoms",
	})
}

func requestLocale(r *http.Request) string {
	if locale := r.URL.Query().Get("language"); locale == "bn" {
		return "bn"
	}
	return "en"
}
