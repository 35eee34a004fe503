package http

import (
	"encoding/json"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/middleware"
	"github.com/pkazmirchuk/shelfmark/internal/session"
)

// writeJSON encodes payload as the response body.
func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// writeJSONError sends the remote-style error envelope.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// RequireAuthJSON gates the hydration API with a 401 instead of the
// page-flow redirect.
func RequireAuthJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guard := middleware.GuardFromContext(r.Context())
		if guard == nil || guard.Authorize("").Kind != session.DecisionAllow {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
