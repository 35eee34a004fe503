package middleware

import (
	"context"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/api"
	"github.com/pkazmirchuk/shelfmark/internal/session"
)

type ctxKey string

const guardKey ctxKey = "guard"

// WithSession builds a request-scoped session guard from the token
// cookie, restores it against the identity collaborator, and stores the
// guard in the request context. Downstream API calls inherit the bearer
// credential through the context, so one shared client serves every
// visitor.
func WithSession(auth session.AuthAPI, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.NewCookieStore(cookieName, w, r)
			guard := session.NewGuard(auth, store)
			guard.Restore(r.Context())

			ctx := context.WithValue(r.Context(), guardKey, guard)
			if token, ok := guard.Token(); ok {
				ctx = api.WithToken(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GuardFromContext returns the request's session guard. Returns nil when
// WithSession did not run.
func GuardFromContext(ctx context.Context) *session.Guard {
	guard, _ := ctx.Value(guardKey).(*session.Guard)
	return guard
}

// RequireRole gates a route subtree on an authorization decision. An
// empty role admits any authenticated user.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guard := GuardFromContext(r.Context())
			if guard == nil {
				http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
				return
			}
			decision := guard.Authorize(role)
			switch decision.Kind {
			case session.DecisionAllow:
				next.ServeHTTP(w, r)
			case session.DecisionPending:
				// Unsettled sessions cannot render content or redirect.
				http.Error(w, "session initializing", http.StatusServiceUnavailable)
			default:
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
			}
		})
	}
}

// RequireAuth admits any authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return RequireRole("")(next)
}
