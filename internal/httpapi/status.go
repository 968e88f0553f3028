package httpapi

import (
	"context"
	"net/http"
	"time"
)

// Home returns a welcome payload listing the entry points.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Welcome to the movie catalog API",
		"endpoints": []string{"/movies", "/directors", "/users", "/auth/login", "/auth/register", "/me", "/status"},
	})
}

// Status is the liveness probe. It always answers 200; the database field
// reports whether the store answered a ping.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	dbState := "ok"
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			dbState = "unavailable"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"uptime":   time.Since(h.started).Round(time.Second).String(),
		"database": dbState,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
