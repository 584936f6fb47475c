package routes

import (
	"net/http"

	"github.com/mysahara/health-assistant/backend/internal/api/handlers"
	"github.com/mysahara/health-assistant/backend/internal/api/middleware"
	"github.com/mysahara/health-assistant/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	chatHandler *handlers.ChatHandler

	healthHandler *handlers.HealthHandler

	documentHandler *handlers.DocumentHandler

	familyHandler *handlers.FamilyHandler

	nutritionHandler    *handlers.NutritionHandler
	notificationHandler *handlers.NotificationHandler

	statusHandler *handlers.StatusHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(

	chatHandler *handlers.ChatHandler,

	healthHandler *handlers.HealthHandler,

	documentHandler *handlers.DocumentHandler,

	familyHandler *handlers.FamilyHandler,

	nutritionHandler *handlers.NutritionHandler,
	notificationHandler *handlers.NotificationHandler,
	statusHandler *handlers.StatusHandler,

	cacheMiddleware *middleware.CacheMiddleware,

	metrics *observability.Metrics,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		chatHandler: chatHandler,

		healthHandler: healthHandler,

		documentHandler: documentHandler,

		familyHandler: familyHandler,

		nutritionHandler:    nutritionHandler,
		notificationHandler: notificationHandler,

		statusHandler: statusHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", r.statusHandler.HealthCheck)

	// Chat endpoints

	r.mux.HandleFunc("POST /api/ai/chat", r.chatHandler.Chat)

	r.mux.HandleFunc("POST /api/ai/chat/stream", r.chatHandler.ChatStream)

	r.mux.HandleFunc("GET /api/ai/chat/history/{userId}", r.chatHandler.History)

	r.mux.HandleFunc("POST /api/ai/translate", r.chatHandler.Translate)

	r.mux.HandleFunc("POST /api/ai/explain-term", r.chatHandler.ExplainTerm)

	r.mux.HandleFunc("GET /api/ai/conversation-starters", r.chatHandler.ConversationStarters)

	r.mux.HandleFunc("GET /api/ai/emergency-symptoms", r.chatHandler.EmergencySymptoms)

	// Health analysis endpoints

	r.mux.HandleFunc("POST /api/ai/analyze-symptoms", r.healthHandler.AnalyzeSymptoms)

	r.mux.HandleFunc("POST /api/ai/health-tips", r.healthHandler.HealthTips)

	r.mux.HandleFunc("POST /api/ai/predict-risks", r.healthHandler.PredictRisks)

	r.mux.HandleFunc("GET /api/ai/health-categories", r.healthHandler.HealthCategories)

	// Nutrition plan endpoint

	r.mux.HandleFunc("POST /api/ai/nutrition-plan", r.nutritionHandler.CreatePlan)

	// OCR endpoints

	r.mux.HandleFunc("POST /api/ocr/extract-text", r.documentHandler.ExtractText)

	r.mux.HandleFunc("POST /api/ocr/parse-document", r.documentHandler.ParseDocument)

	r.mux.HandleFunc("POST /api/ocr/extract-url", r.documentHandler.ExtractFromURL)

	// Family endpoints

	r.mux.HandleFunc("POST /api/family/insights", r.familyHandler.GenerateInsights)

	r.mux.HandleFunc("POST /api/family/report", r.familyHandler.GenerateReport)

	// Notification endpoints
	if r.notificationHandler != nil {
		r.mux.HandleFunc("POST /api/notifications/register-device", r.notificationHandler.RegisterDevice)
		r.mux.HandleFunc("POST /api/notifications/medication-reminder", r.notificationHandler.SendMedicationReminder)
		r.mux.HandleFunc("POST /api/notifications/vaccine-reminder", r.notificationHandler.SendVaccineReminder)
		r.mux.HandleFunc("POST /api/notifications/daily-summary", r.notificationHandler.SendDailySummary)
		r.mux.HandleFunc("POST /api/notifications/test", r.notificationHandler.SendTest)
		r.mux.HandleFunc("POST /api/notifications/reminders", r.notificationHandler.CreateReminder)
		r.mux.HandleFunc("GET /api/notifications/reminders/{userId}", r.notificationHandler.ListReminders)
		r.mux.HandleFunc("DELETE /api/notifications/reminders/{id}", r.notificationHandler.DeactivateReminder)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
