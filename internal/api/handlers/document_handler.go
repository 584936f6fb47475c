package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mysahara/health-assistant/backend/internal/application/services"
	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// DocumentHandler handles OCR and document parsing requests.
type DocumentHandler struct {
	documents *services.DocumentService
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type extractTextRequest struct {
	Image    string `json:"image"`
	Language string `json:"language"`
}

// ExtractText handles POST /api/ocr/extract-text
func (h *DocumentHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	var payload extractTextRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	image, err := services.DecodeImagePayload(payload.Image)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.documents.ExtractText(r.Context(), image, payload.Language))
}

type parseDocumentRequest struct {
	Image        string `json:"image"`
	DocumentType string `json:"document_type"`
	Language     string `json:"language"`
}

// ParseDocument handles POST /api/ocr/parse-document
func (h *DocumentHandler) ParseDocument(w http.ResponseWriter, r *http.Request) {
	var payload parseDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.DocumentType == "" {
		respondWithError(w, http.StatusBadRequest, "document_type is required")
		return
	}

	image, err := services.DecodeImagePayload(payload.Image)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	parsed := h.documents.ExtractDocument(r.Context(), image, entities.DocumentType(payload.DocumentType), payload.Language)
	respondWithJSON(w, http.StatusOK, parsed)
}

// ExtractFromURL handles POST /api/ocr/extract-url
func (h *DocumentHandler) ExtractFromURL(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotImplemented, "image URL extraction is not supported")
}
