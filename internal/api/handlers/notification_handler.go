package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mysahara/health-assistant/backend/internal/application/services"
	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// NotificationHandler handles device registration and push notification
// requests.
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type registerDeviceRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"fcm_token"`
}

// RegisterDevice handles POST /api/notifications/register-device
func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var payload registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.notifications.RegisterDevice(r.Context(), payload.UserID, payload.Token); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "registered"})
}

// SendMedicationReminder handles POST /api/notifications/medication-reminder
func (h *NotificationHandler) SendMedicationReminder(w http.ResponseWriter, r *http.Request) {
	var payload services.MedicationReminder
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.UserID == "" || payload.MedicationName == "" {
		respondWithError(w, http.StatusBadRequest, "user_id and medication_name are required")
		return
	}

	result, err := h.notifications.SendMedicationReminder(r.Context(), payload)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// SendVaccineReminder handles POST /api/notifications/vaccine-reminder
func (h *NotificationHandler) SendVaccineReminder(w http.ResponseWriter, r *http.Request) {
	var payload services.VaccineReminder
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.UserID == "" || payload.VaccineName == "" {
		respondWithError(w, http.StatusBadRequest, "user_id and vaccine_name are required")
		return
	}

	result, err := h.notifications.SendVaccineReminder(r.Context(), payload)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

type dailySummaryRequest struct {
	UserID    string                  `json:"user_id"`
	Reminders []services.ReminderLine `json:"reminders"`
}

// SendDailySummary handles POST /api/notifications/daily-summary
func (h *NotificationHandler) SendDailySummary(w http.ResponseWriter, r *http.Request) {
	var payload dailySummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.notifications.SendDailySummary(r.Context(), payload.UserID, payload.Reminders)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if result == nil {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "nothing_to_report"})
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// CreateReminder handles POST /api/notifications/reminders
func (h *NotificationHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var payload entities.ReminderSchedule
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.notifications.CreateReminder(r.Context(), &payload); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, payload)
}

// ListReminders handles GET /api/notifications/reminders/{userId}
func (h *NotificationHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	reminders, err := h.notifications.ListReminders(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":   userID,
		"reminders": reminders,
	})
}

// DeactivateReminder handles DELETE /api/notifications/reminders/{id}
func (h *NotificationHandler) DeactivateReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.DeactivateReminder(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

type testNotificationRequest struct {
	Token string `json:"fcm_token"`
}

// SendTest handles POST /api/notifications/test
func (h *NotificationHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	var payload testNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Token == "" {
		respondWithError(w, http.StatusBadRequest, "fcm_token is required")
		return
	}

	result, err := h.notifications.SendTest(r.Context(), payload.Token)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
