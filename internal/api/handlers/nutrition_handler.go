package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mysahara/health-assistant/backend/internal/application/services"
	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// NutritionHandler handles nutrition and fitness plan requests.
type NutritionHandler struct {
	nutrition *services.NutritionService
}

// NewNutritionHandler creates a new nutrition handler.
func NewNutritionHandler(nutrition *services.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutrition: nutrition}
}

// CreatePlan handles POST /api/ai/nutrition-plan
func (h *NutritionHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var payload entities.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Age <= 0 || payload.HeightCm <= 0 || payload.WeightKg <= 0 {
		respondWithError(w, http.StatusBadRequest, "age, height_cm, and weight_kg must be positive")
		return
	}
	if payload.Goal == "" {
		respondWithError(w, http.StatusBadRequest, "goal is required")
		return
	}

	respondWithJSON(w, http.StatusOK, h.nutrition.CreatePlan(r.Context(), payload))
}
