package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports backing-store liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusHandler reports process health and the state of optional
// dependencies. Degraded dependencies do not fail the check; the process is
// healthy as long as it can serve requests.
type StatusHandler struct {
	database  Pinger
	cache     Pinger
	providers []string
}

// NewStatusHandler creates a new status handler. Nil pingers report as
// "disabled"; providers lists the configured chat provider names in fallback
// order.
func NewStatusHandler(database, cache Pinger, providers []string) *StatusHandler {
	return &StatusHandler{database: database, cache: cache, providers: providers}
}

// HealthCheck handles GET /health
func (h *StatusHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"database":     pingState(ctx, h.database),
		"cache":        pingState(ctx, h.cache),
		"ai_providers": h.providers,
	})
}

func pingState(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
