package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mysahara/health-assistant/backend/internal/application/services"
	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// HealthHandler handles symptom analysis, tips, and risk prediction requests.
type HealthHandler struct {
	health *services.HealthService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(health *services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

type analyzeSymptomsRequest struct {
	Symptoms           []string `json:"symptoms"`
	Duration           string   `json:"duration"`
	Severity           string   `json:"severity"`
	Age                int      `json:"age"`
	Gender             string   `json:"gender"`
	ExistingConditions []string `json:"existing_conditions"`
	Medications        []string `json:"current_medications"`
}

// AnalyzeSymptoms handles POST /api/ai/analyze-symptoms
func (h *HealthHandler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var payload analyzeSymptomsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(payload.Symptoms) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one symptom is required")
		return
	}

	analysis := h.health.AnalyzeSymptoms(r.Context(), services.SymptomContext{
		Symptoms:           payload.Symptoms,
		Duration:           payload.Duration,
		Severity:           payload.Severity,
		Age:                payload.Age,
		Gender:             payload.Gender,
		ExistingConditions: payload.ExistingConditions,
		Medications:        payload.Medications,
	})
	respondWithJSON(w, http.StatusOK, analysis)
}

type healthTipsRequest struct {
	Category     string            `json:"category"`
	Language     string            `json:"language"`
	Personalized bool              `json:"personalized"`
	Profile      map[string]string `json:"user_profile"`
}

// HealthTips handles POST /api/ai/health-tips
func (h *HealthHandler) HealthTips(w http.ResponseWriter, r *http.Request) {
	var payload healthTipsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result := h.health.HealthTips(r.Context(), payload.Category, payload.Language, payload.Personalized, payload.Profile)
	respondWithJSON(w, http.StatusOK, result)
}

type predictRisksRequest struct {
	HealthMetrics    map[string]string `json:"health_metrics"`
	MedicalHistory   []string          `json:"medical_history"`
	LifestyleFactors map[string]string `json:"lifestyle_factors"`
	BMI              float64           `json:"bmi"`
	BloodPressure    string            `json:"blood_pressure"`
	Smoking          bool              `json:"smoking"`
	Exercise         string            `json:"exercise"`
}

// PredictRisks handles POST /api/ai/predict-risks
func (h *HealthHandler) PredictRisks(w http.ResponseWriter, r *http.Request) {
	var payload predictRisksRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(payload.HealthMetrics) == 0 {
		respondWithError(w, http.StatusBadRequest, "health_metrics is required")
		return
	}

	prediction := h.health.PredictRisks(
		r.Context(),
		services.PredictionContext{
			HealthMetrics:    payload.HealthMetrics,
			MedicalHistory:   payload.MedicalHistory,
			LifestyleFactors: payload.LifestyleFactors,
		},
		entities.HealthMetrics{BMI: payload.BMI, BloodPressure: payload.BloodPressure},
		payload.MedicalHistory,
		entities.LifestyleFactors{Smoking: payload.Smoking, Exercise: payload.Exercise},
	)
	respondWithJSON(w, http.StatusOK, prediction)
}

// HealthCategories handles GET /api/ai/health-categories
func (h *HealthHandler) HealthCategories(w http.ResponseWriter, r *http.Request) {
	locale := requestLocale(r)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": services.HealthCategories(locale),
		"language":   locale,
	})
}
