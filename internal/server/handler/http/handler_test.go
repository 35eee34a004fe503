package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pkazmirchuk/shelfmark/internal/api"
	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// fakeRemote stands in for the remote catalog service behind every
// collaborator interface the gateway consumes.
type fakeRemote struct {
	books  []models.Book
	genres []models.Genre

	// sessions maps bearer tokens to accounts for Me.
	sessions map[string]models.User
	// passwords maps email to the accepted password for Login.
	passwords map[string]string
	accounts  map[string]models.User

	shelved   []shelvedCall
	submitted []submittedReview
}

type shelvedCall struct {
	bookID   string
	shelf    models.Shelf
	progress int
}

type submittedReview struct {
	bookID string
	rating int
	text   string
}

func (f *fakeRemote) Login(_ context.Context, email, password string) (models.User, string, error) {
	if f.passwords[email] != password {
		return models.User{}, "", &api.AuthError{Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	}
	user := f.accounts[email]
	return user, user.ID + "-tok", nil
}

func (f *fakeRemote) Register(_ context.Context, name, email, _, photoURL string) (models.User, string, error) {
	user := models.User{ID: "new", Name: name, Email: email, Role: models.RoleUser, Photo: photoURL}
	return user, "new-tok", nil
}

func (f *fakeRemote) Me(_ context.Context, token string) (models.User, error) {
	user, ok := f.sessions[token]
	if !ok {
		return models.User{}, &api.AuthError{Status: http.StatusUnauthorized, Message: "invalid token"}
	}
	return user, nil
}

func (f *fakeRemote) ListBooks(context.Context) ([]models.Book, error) { return f.books, nil }

func (f *fakeRemote) GetBook(_ context.Context, id string) (models.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Book{}, &api.NotFoundError{Message: "book not found"}
}

func (f *fakeRemote) ListGenres(context.Context) ([]models.Genre, error) { return f.genres, nil }

func (f *fakeRemote) BookReviews(context.Context, string) ([]models.Review, error) { return nil, nil }

func (f *fakeRemote) SubmitReview(_ context.Context, bookID string, rating int, text string) error {
	f.submitted = append(f.submitted, submittedReview{bookID, rating, text})
	return nil
}

func (f *fakeRemote) ListReviews(context.Context, string) ([]models.Review, error) {
	return nil, nil
}

func (f *fakeRemote) ModerateReview(context.Context, string, string) error { return nil }

func (f *fakeRemote) AddToShelf(_ context.Context, bookID string, shelf models.Shelf, progress int) error {
	f.shelved = append(f.shelved, shelvedCall{bookID, shelf, progress})
	return nil
}

func (f *fakeRemote) MyLibrary(context.Context) (models.Library, error) {
	return models.Library{}, nil
}

func (f *fakeRemote) CreateBook(context.Context, api.BookInput) error           { return nil }
func (f *fakeRemote) UpdateBook(context.Context, string, api.BookInput) error   { return nil }
func (f *fakeRemote) DeleteBook(context.Context, string) error                  { return nil }
func (f *fakeRemote) CreateGenre(context.Context, api.GenreInput) error         { return nil }
func (f *fakeRemote) UpdateGenre(context.Context, string, api.GenreInput) error { return nil }
func (f *fakeRemote) DeleteGenre(context.Context, string) error                 { return nil }
func (f *fakeRemote) ListUsers(context.Context) ([]models.User, error)          { return nil, nil }
func (f *fakeRemote) UpdateUserRole(context.Context, string, string) error      { return nil }
func (f *fakeRemote) DeleteUser(context.Context, string) error                  { return nil }
func (f *fakeRemote) ListTutorials(context.Context) ([]models.Tutorial, error)  { return nil, nil }
func (f *fakeRemote) CreateTutorial(context.Context, api.TutorialInput) error   { return nil }
func (f *fakeRemote) DeleteTutorial(context.Context, string) error              { return nil }

func (f *fakeRemote) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	return "https://img.example/" + filename, nil
}

// newTestRouter wires a gateway over the fake remote.
func newTestRouter(remote *fakeRemote) http.Handler {
	h := &Handler{
		Catalog:  remote,
		Reviews:  remote,
		Shelves:  remote,
		Admin:    remote,
		Uploader: remote,
		PageSize: 2,
		Log:      zap.NewNop(),
	}
	return NewRouter(h, remote, "token", zap.NewNop())
}

func defaultRemote() *fakeRemote {
	return &fakeRemote{
		books: []models.Book{
			{ID: "b1", Title: "Dune", Author: models.NameRef{Name: "Herbert"}, Genre: models.NameRef{Name: "SciFi"}, Pages: 412},
			{ID: "b2", Title: "Emma", Author: models.NameRef{Name: "Austen"}, Genre: models.NameRef{Name: "Romance"}},
			{ID: "b3", Title: "Hyperion", Author: models.NameRef{Name: "Simmons"}, Genre: models.NameRef{Name: "SciFi"}},
		},
		genres: []models.Genre{{ID: "g1", Name: "SciFi"}, {ID: "g2", Name: "Romance"}},
		sessions: map[string]models.User{
			"user-tok":  {ID: "u1", Name: "Alice", Email: "alice@example.com", Role: models.RoleUser},
			"admin-tok": {ID: "a1", Name: "Root", Email: "root@example.com", Role: models.RoleAdmin},
		},
		passwords: map[string]string{"alice@example.com": "secret", "root@example.com": "hunter2"},
		accounts: map[string]models.User{
			"alice@example.com": {ID: "u1", Name: "Alice", Email: "alice@example.com", Role: models.RoleUser},
			"root@example.com":  {ID: "a1", Name: "Root", Email: "root@example.com", Role: models.RoleAdmin},
		},
	}
}

func get(router http.Handler, path, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func postForm(router http.Handler, path, token string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		r.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestRouter_RootRedirectsToBrowse(t *testing.T) {
	w := get(newTestRouter(defaultRemote()), "/", "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/browse", w.Header().Get("Location"))
}

func TestRouter_AnonymousBrowseRedirectsToLogin(t *testing.T) {
	w := get(newTestRouter(defaultRemote()), "/browse", "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRouter_InvalidTokenRedirectsToLogin(t *testing.T) {
	w := get(newTestRouter(defaultRemote()), "/browse", "forged-tok")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRouter_LoginFailureRendersInlineError(t *testing.T) {
	router := newTestRouter(defaultRemote())
	w := postForm(router, "/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	})

	// Failed attempts re-render the form; no redirect, no cookie.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.Empty(t, w.Result().Cookies())
}

func TestRouter_LoginSendsEachRoleHome(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantHome string
	}{
		{"reader lands in the library", "alice@example.com", "secret", "/my-library"},
		{"admin lands in the back-office", "root@example.com", "hunter2", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(defaultRemote())
			w := postForm(router, "/login", "", url.Values{
				"email":    {tt.email},
				"password": {tt.password},
			})

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantHome, w.Header().Get("Location"))

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "token", cookies[0].Name)
			assert.NotEmpty(t, cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
		})
	}
}

func TestRouter_LoginFormSkipsToHomeWhenAuthenticated(t *testing.T) {
	w := get(newTestRouter(defaultRemote()), "/login", "user-tok")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/my-library", w.Header().Get("Location"))
}

func TestRouter_BrowseRendersFilteredCatalog(t *testing.T) {
	router := newTestRouter(defaultRemote())

	w := get(router, "/browse", "user-tok")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// Page size is 2: first page shows the first two books only.
	assert.Contains(t, body, "Dune")
	assert.Contains(t, body, "Emma")
	assert.NotContains(t, body, "Hyperion")

	w = get(router, "/browse?genre=SciFi", "user-tok")
	require.Equal(t, http.StatusOK, w.Code)
	body = w.Body.String()
	assert.Contains(t, body, "Dune")
	assert.Contains(t, body, "Hyperion")
	assert.NotContains(t, body, "Emma")

	w = get(router, "/browse?search=herbert", "user-tok")
	require.Equal(t, http.StatusOK, w.Code)
	body = w.Body.String()
	assert.Contains(t, body, "Dune")
	assert.NotContains(t, body, "Emma")
}

func TestRouter_ReaderCannotOpenDashboard(t *testing.T) {
	w := get(newTestRouter(defaultRemote()), "/dashboard", "user-tok")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/my-library", w.Header().Get("Location"))
}

func TestRouter_AdminOpensDashboard(t *testing.T) {
	w := get(newTestRouter(defaultRemote()), "/dashboard", "admin-tok")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_BookDetail(t *testing.T) {
	router := newTestRouter(defaultRemote())

	w := get(router, "/books/b1", "user-tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")

	w = get(router, "/books/missing", "user-tok")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SubmitReviewValidatesRating(t *testing.T) {
	remote := defaultRemote()
	router := newTestRouter(remote)

	w := postForm(router, "/books/b1/reviews", "user-tok", url.Values{
		"rating": {"9"},
		"review": {"way too good"},
	})

	// Bounces back with a flash; nothing reaches the remote.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/books/b1", w.Header().Get("Location"))
	assert.Empty(t, remote.submitted)

	hasFlash := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			hasFlash = true
		}
	}
	assert.True(t, hasFlash)
}

func TestRouter_SubmitReview(t *testing.T) {
	remote := defaultRemote()
	router := newTestRouter(remote)

	w := postForm(router, "/books/b1/reviews", "user-tok", url.Values{
		"rating": {"4"},
		"review": {"great read"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, remote.submitted, 1)
	assert.Equal(t, submittedReview{"b1", 4, "great read"}, remote.submitted[0])
}

func TestRouter_ShelvingAFinishedBookRecordsItsPages(t *testing.T) {
	remote := defaultRemote()
	router := newTestRouter(remote)

	w := postForm(router, "/books/b1/shelf", "user-tok", url.Values{"shelf": {"read"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, remote.shelved, 1)
	assert.Equal(t, shelvedCall{"b1", models.ShelfRead, 412}, remote.shelved[0])

	w = postForm(router, "/books/b2/shelf", "user-tok", url.Values{"shelf": {"want"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, remote.shelved, 2)
	assert.Equal(t, shelvedCall{"b2", models.ShelfWant, 0}, remote.shelved[1])
}

func TestRouter_APIRequiresAuth(t *testing.T) {
	router := newTestRouter(defaultRemote())

	w := get(router, "/api/books", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "authentication required", envelope["message"])
}

func TestRouter_APIBooks(t *testing.T) {
	router := newTestRouter(defaultRemote())

	w := get(router, "/api/books", "user-tok")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var books []models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	assert.Len(t, books, 3)
}

func TestRouter_LogoutClearsCookie(t *testing.T) {
	w := get(newTestRouter(defaultRemote()), "/logout", "user-tok")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var tokenCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == "token" {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie)
	assert.Equal(t, -1, tokenCookie.MaxAge)
}

func TestRouter_UnknownPageRenders404(t *testing.T) {
	w := get(newTestRouter(defaultRemote()), "/no-such-page", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
