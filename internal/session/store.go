// Package session owns the authentication state of one client of the
// catalog service: the current user, the bearer token, and the
// role-based authorization decision that gates protected pages.
package session

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is how long a persisted credential survives across restarts.
const TokenTTL = 7 * 24 * time.Hour

// TokenStore persists the session credential between processes or page
// loads. Load reports ok=false when no usable credential exists.
type TokenStore interface {
	Load() (token string, ok bool)
	Save(token string)
	Clear()
}

// tokenExpired peeks at the JWT exp claim without verifying the
// signature. Tokens that are not JWTs stay opaque and are kept; the
// remote service remains the authority on their validity.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}

// CookieStore persists the token in a browser cookie, scoped to one
// request/response pair.
type CookieStore struct {
	name string
	w    http.ResponseWriter
	r    *http.Request
}

// NewCookieStore builds a store over the given exchange. name is the
// cookie key holding the bearer token.
func NewCookieStore(name string, w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{name: name, w: w, r: r}
}

// Load returns the request's token cookie, dropping expired JWTs.
func (s *CookieStore) Load() (string, bool) {
	c, err := s.r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	if tokenExpired(c.Value, time.Now()) {
		s.Clear()
		return "", false
	}
	return c.Value, true
}

// Save writes the token cookie with a rolling 7-day expiry.
func (s *CookieStore) Save(token string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the token cookie.
func (s *CookieStore) Clear() {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// fileToken is the on-disk layout of a persisted credential.
type fileToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileStore persists the token in a JSON file, the cookie-equivalent for
// the terminal client.
type FileStore struct {
	path string
}

// NewFileStore builds a store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored token, dropping it when the 7-day window or
// the token's own exp claim has passed.
func (s *FileStore) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var ft fileToken
	if err := json.Unmarshal(data, &ft); err != nil || ft.Token == "" {
		return "", false
	}
	now := time.Now()
	if now.After(ft.ExpiresAt) || tokenExpired(ft.Token, now) {
		s.Clear()
		return "", false
	}
	return ft.Token, true
}

// Save writes the token with a rolling 7-day expiry.
func (s *FileStore) Save(token string) {
	ft := fileToken{Token: token, ExpiresAt: time.Now().Add(TokenTTL)}
	data, err := json.Marshal(ft)
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o700)
	_ = os.WriteFile(s.path, data, 0o600)
}

// Clear removes the token file.
func (s *FileStore) Clear() {
	_ = os.Remove(s.path)
}
