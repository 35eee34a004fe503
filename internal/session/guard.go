package session

import (
	"context"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// Route targets used by authorization decisions.
const (
	LoginPath   = "/login"
	AdminHome   = "/dashboard"
	LibraryHome = "/my-library"
)

// RoleHome returns where a user lands when a page's role requirement
// rejects them: admins go to the back-office, everyone else to their
// personal library.
func RoleHome(role string) string {
	if role == models.RoleAdmin {
		return AdminHome
	}
	return LibraryHome
}

// AuthAPI is the identity collaborator the guard depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Register(ctx context.Context, name, email, password, photoURL string) (models.User, string, error)
	Me(ctx context.Context, token string) (models.User, error)
}

// State is the guard's settlement state. Authorization decisions stay
// Pending until Restore settles the state one way or the other.
type State int

// Guard states.
const (
	StateInitializing State = iota
	StateAuthenticated
	StateAnonymous
)

// Session is a snapshot of the authentication state. User is nil exactly
// when Token is empty: the two are adopted and cleared together.
type Session struct {
	User  *models.User
	Token string
}

// DecisionKind enumerates authorization outcomes.
type DecisionKind int

// Authorization outcomes.
const (
	// DecisionPending means the session is not settled yet; render a
	// neutral placeholder, never content and never a redirect.
	DecisionPending DecisionKind = iota
	// DecisionAllow passes the request through.
	DecisionAllow
	// DecisionRedirectLogin sends an unauthenticated caller to the
	// login page.
	DecisionRedirectLogin
	// DecisionRedirectRoleHome sends an authenticated caller whose role
	// does not satisfy the requirement to their own home page.
	DecisionRedirectRoleHome
)

// Decision is the outcome of an authorization check. Location is set for
// the redirect kinds.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// Guard is the single source of truth for "who is logged in". It owns
// the session value, persists the credential through a TokenStore, and
// answers role-gated authorization checks.
//
// Guard is not safe for concurrent use; callers are expected to drive it
// from a single goroutine (one request, or the REPL loop). Overlapping
// login attempts are last-write-wins.
type Guard struct {
	auth  AuthAPI
	store TokenStore

	state State
	user  *models.User
	token string
}

// NewGuard constructs a guard in the initializing state.
func NewGuard(auth AuthAPI, store TokenStore) *Guard {
	return &Guard{auth: auth, store: store, state: StateInitializing}
}

// adopt installs a validated user/token pair and persists the credential.
func (g *Guard) adopt(user models.User, token string) {
	g.user = &user
	g.token = token
	g.state = StateAuthenticated
	g.store.Save(token)
}

// Login authenticates with the identity collaborator. On failure the
// error is returned untouched and the session is left exactly as it was.
func (g *Guard) Login(ctx context.Context, email, password string) error {
	user, token, err := g.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	g.adopt(user, token)
	return nil
}

// Register creates an account and adopts the returned session. photoURL
// must already be resolved; image upload is a precondition, not a guard
// concern.
func (g *Guard) Register(ctx context.Context, name, email, password, photoURL string) error {
	user, token, err := g.auth.Register(ctx, name, email, password, photoURL)
	if err != nil {
		return err
	}
	g.adopt(user, token)
	return nil
}

// Logout clears the session and the persisted credential. Safe to call
// when already logged out.
func (g *Guard) Logout() {
	g.user = nil
	g.token = ""
	g.state = StateAnonymous
	g.store.Clear()
}

// Restore settles the session from the persisted credential: no token
// means anonymous immediately; a token is validated with exactly one
// identity call, and any failure degrades silently to logged-out.
func (g *Guard) Restore(ctx context.Context) {
	token, ok := g.store.Load()
	if !ok {
		g.state = StateAnonymous
		return
	}
	user, err := g.auth.Me(ctx, token)
	if err != nil {
		g.Logout()
		return
	}
	g.user = &user
	g.token = token
	g.state = StateAuthenticated
}

// Session returns a snapshot of the current state.
func (g *Guard) Session() Session {
	return Session{User: g.user, Token: g.token}
}

// Token implements api.TokenSource over the in-memory session.
func (g *Guard) Token() (string, bool) {
	return g.token, g.token != ""
}

// State returns the settlement state.
func (g *Guard) State() State {
	return g.state
}

// Authorize gates a page subtree. requiredRole may be empty, meaning any
// authenticated user passes.
func (g *Guard) Authorize(requiredRole string) Decision {
	if g.state == StateInitializing {
		return Decision{Kind: DecisionPending}
	}
	if g.state != StateAuthenticated || g.user == nil {
		return Decision{Kind: DecisionRedirectLogin, Location: LoginPath}
	}
	if requiredRole != "" && g.user.Role != requiredRole {
		return Decision{Kind: DecisionRedirectRoleHome, Location: RoleHome(g.user.Role)}
	}
	return Decision{Kind: DecisionAllow}
}
