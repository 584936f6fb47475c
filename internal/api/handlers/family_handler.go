package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mysahara/health-assistant/backend/internal/application/services"
	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// FamilyHandler handles family insight and report requests.
type FamilyHandler struct {
	family *services.FamilyService
}

// NewFamilyHandler creates a new family handler.
func NewFamilyHandler(family *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{family: family}
}

type familyInsightsRequest struct {
	Members    []entities.FamilyMember `json:"family_members"`
	FocusAreas []string                `json:"focus_areas"`
	Language   string                  `json:"language"`
}

// GenerateInsights handles POST /api/family/insights
func (h *FamilyHandler) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	var payload familyInsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(payload.Members) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one family member is required")
		return
	}

	insights := h.family.GenerateInsights(r.Context(), payload.Members, payload.FocusAreas, payload.Language)
	respondWithJSON(w, http.StatusOK, insights)
}

type familyReportRequest struct {
	Members          []entities.FamilyMember `json:"family_members"`
	TotalRecords     int                     `json:"total_health_records"`
	TotalEvents      int                     `json:"total_medical_events"`
	IncludeAISummary bool                    `json:"include_ai_summary"`
	Language         string                  `json:"language"`
}

// GenerateReport handles POST /api/family/report
func (h *FamilyHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var payload familyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	report := h.family.GenerateReport(r.Context(), payload.Members, payload.TotalRecords, payload.TotalEvents, payload.IncludeAISummary, payload.Language)
	respondWithJSON(w, http.StatusOK, report)
}
