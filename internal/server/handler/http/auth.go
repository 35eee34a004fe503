package http

import (
	"errors"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/api"
	"github.com/pkazmirchuk/shelfmark/internal/middleware"
	"github.com/pkazmirchuk/shelfmark/internal/session"
)

// loginView carries the form state back on a failed attempt.
type loginView struct {
	Email string
}

// registerView carries the form state back on a failed attempt.
type registerView struct {
	Name  string
	Email string
}

// authFailureMessage extracts the inline message for a failed login or
// registration. Auth failures caused by the user's own action ARE
// surfaced, with the collaborator's message when it sent one.
func authFailureMessage(err error) string {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason()
	}
	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	return "Something went wrong, please try again"
}

// LoginForm renders the login page, skipping straight to the caller's
// home when a session already exists.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	guard := middleware.GuardFromContext(r.Context())
	if s := guard.Session(); s.User != nil {
		http.Redirect(w, r, session.RoleHome(s.User.Role), http.StatusSeeOther)
		return
	}
	h.render(w, r, "login", View{Data: loginView{}})
}

// Login authenticates the submitted credentials. Failures render the
// form again with an inline message; the session stays untouched.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	guard := middleware.GuardFromContext(r.Context())
	if err := guard.Login(r.Context(), email, password); err != nil {
		h.render(w, r, "login", View{
			Error: authFailureMessage(err),
			Data:  loginView{Email: email},
		})
		return
	}

	s := guard.Session()
	http.Redirect(w, r, session.RoleHome(s.User.Role), http.StatusSeeOther)
}

// RegisterForm renders the registration page.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", View{Data: registerView{}})
}

// Register uploads the avatar when one was attached, then creates the
// account. The photo URL must be resolved before registration runs.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	var photoURL string
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photoURL, err = h.Uploader.Upload(r.Context(), header.Filename, file)
		if err != nil {
			h.render(w, r, "register", View{
				Error: err.Error(),
				Data:  registerView{Name: name, Email: email},
			})
			return
		}
	}

	guard := middleware.GuardFromContext(r.Context())
	if err := guard.Register(r.Context(), name, email, password, photoURL); err != nil {
		h.render(w, r, "register", View{
			Error: authFailureMessage(err),
			Data:  registerView{Name: name, Email: email},
		})
		return
	}

	s := guard.Session()
	http.Redirect(w, r, session.RoleHome(s.User.Role), http.StatusSeeOther)
}

// Logout clears the session and the token cookie. Idempotent.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.GuardFromContext(r.Context()).Logout()
	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}
