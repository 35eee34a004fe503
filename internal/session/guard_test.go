package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// fakeAuth implements AuthAPI for testing.
type fakeAuth struct {
	LoginFunc    func(ctx context.Context, email, password string) (models.User, string, error)
	RegisterFunc func(ctx context.Context, name, email, password, photoURL string) (models.User, string, error)
	MeFunc       func(ctx context.Context, token string) (models.User, error)

	meCalls int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (models.User, string, error) {
	return f.LoginFunc(ctx, email, password)
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password, photoURL string) (models.User, string, error) {
	return f.RegisterFunc(ctx, name, email, password, photoURL)
}

func (f *fakeAuth) Me(ctx context.Context, token string) (models.User, error) {
	f.meCalls++
	return f.MeFunc(ctx, token)
}

// memStore implements TokenStore in memory.
type memStore struct {
	token string
}

func (s *memStore) Load() (string, bool) { return s.token, s.token != "" }
func (s *memStore) Save(token string)    { s.token = token }
func (s *memStore) Clear()               { s.token = "" }

func TestGuard_LoginSuccessAdoptsSessionAndPersists(t *testing.T) {
	store := &memStore{}
	auth := &fakeAuth{
		LoginFunc: func(ctx context.Context, email, password string) (models.User, string, error) {
			return models.User{ID: "u1", Name: "Alice", Email: email, Role: models.RoleUser}, "tok-1", nil
		},
	}
	guard := NewGuard(auth, store)
	guard.Restore(context.Background())

	require.NoError(t, guard.Login(context.Background(), "a@b.com", "secret"))

	s := guard.Session()
	require.NotNil(t, s.User)
	assert.Equal(t, "Alice", s.User.Name)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, "tok-1", store.token)
	assert.Equal(t, StateAuthenticated, guard.State())
}

func TestGuard_LoginFailureLeavesSessionUnchanged(t *testing.T) {
	authErr := errors.New("invalid credentials")
	store := &memStore{token: "old-token"}
	auth := &fakeAuth{
		MeFunc: func(ctx context.Context, token string) (models.User, error) {
			return models.User{ID: "u1", Name: "Alice", Role: models.RoleUser}, nil
		},
		LoginFunc: func(ctx context.Context, email, password string) (models.User, string, error) {
			return models.User{}, "", authErr
		},
	}
	guard := NewGuard(auth, store)
	guard.Restore(context.Background())
	before := guard.Session()

	err := guard.Login(context.Background(), "a@b.com", "wrong")

	// The collaborator error propagates untouched; no partial mutation.
	require.ErrorIs(t, err, authErr)
	assert.Equal(t, before, guard.Session())
	assert.Equal(t, "old-token", store.token)
	assert.Equal(t, StateAuthenticated, guard.State())
}

func TestGuard_RestoreWithoutTokenIsAnonymous(t *testing.T) {
	auth := &fakeAuth{
		MeFunc: func(ctx context.Context, token string) (models.User, error) {
			return models.User{}, errors.New("should not be called")
		},
	}
	guard := NewGuard(auth, &memStore{})
	guard.Restore(context.Background())

	assert.Equal(t, StateAnonymous, guard.State())
	assert.Zero(t, auth.meCalls)
}

func TestGuard_RestoreValidatesTokenOnce(t *testing.T) {
	store := &memStore{token: "tok-9"}
	auth := &fakeAuth{
		MeFunc: func(ctx context.Context, token string) (models.User, error) {
			assert.Equal(t, "tok-9", token)
			return models.User{ID: "u2", Name: "Bob", Role: models.RoleAdmin}, nil
		},
	}
	guard := NewGuard(auth, store)
	guard.Restore(context.Background())

	assert.Equal(t, 1, auth.meCalls)
	assert.Equal(t, StateAuthenticated, guard.State())
	require.NotNil(t, guard.Session().User)
	assert.Equal(t, "Bob", guard.Session().User.Name)
}

func TestGuard_FailedValidationClearsEverything(t *testing.T) {
	store := &memStore{token: "stale"}
	auth := &fakeAuth{
		MeFunc: func(ctx context.Context, token string) (models.User, error) {
			return models.User{}, errors.New("expired")
		},
	}
	guard := NewGuard(auth, store)
	guard.Restore(context.Background())

	// Silent degradation: logged out, persisted token gone.
	assert.Equal(t, StateAnonymous, guard.State())
	assert.Nil(t, guard.Session().User)
	assert.Empty(t, store.token)
	assert.Equal(t, DecisionRedirectLogin, guard.Authorize("").Kind)
}

func TestGuard_LogoutIsIdempotent(t *testing.T) {
	guard := NewGuard(&fakeAuth{}, &memStore{})
	guard.Restore(context.Background())

	guard.Logout()
	guard.Logout()

	assert.Equal(t, StateAnonymous, guard.State())
	assert.Nil(t, guard.Session().User)
}

func TestGuard_AuthorizePendingWhileUnsettled(t *testing.T) {
	guard := NewGuard(&fakeAuth{}, &memStore{})

	assert.Equal(t, DecisionPending, guard.Authorize("").Kind)
	assert.Equal(t, DecisionPending, guard.Authorize(models.RoleAdmin).Kind)
}

func TestGuard_AuthorizeDecisions(t *testing.T) {
	login := func(role string) *Guard {
		auth := &fakeAuth{
			LoginFunc: func(ctx context.Context, email, password string) (models.User, string, error) {
				return models.User{ID: "u1", Role: role}, "tok", nil
			},
		}
		guard := NewGuard(auth, &memStore{})
		guard.Restore(context.Background())
		_ = guard.Login(context.Background(), "a@b.com", "pw")
		return guard
	}

	tests := []struct {
		name         string
		guard        *Guard
		requiredRole string
		wantKind     DecisionKind
		wantLocation string
	}{
		{
			name:     "authenticated user on an open page",
			guard:    login(models.RoleUser),
			wantKind: DecisionAllow,
		},
		{
			name:         "user on an admin page goes to the library",
			guard:        login(models.RoleUser),
			requiredRole: models.RoleAdmin,
			wantKind:     DecisionRedirectRoleHome,
			wantLocation: LibraryHome,
		},
		{
			name:         "admin on a user page goes to the dashboard",
			guard:        login(models.RoleAdmin),
			requiredRole: models.RoleUser,
			wantKind:     DecisionRedirectRoleHome,
			wantLocation: AdminHome,
		},
		{
			name:         "admin on an admin page",
			guard:        login(models.RoleAdmin),
			requiredRole: models.RoleAdmin,
			wantKind:     DecisionAllow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := tt.guard.Authorize(tt.requiredRole)
			assert.Equal(t, tt.wantKind, decision.Kind)
			assert.Equal(t, tt.wantLocation, decision.Location)
		})
	}
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	guard := NewGuard(&fakeAuth{}, &memStore{})
	guard.Restore(context.Background())

	decision := guard.Authorize("")
	assert.Equal(t, DecisionRedirectLogin, decision.Kind)
	assert.Equal(t, LoginPath, decision.Location)
}
