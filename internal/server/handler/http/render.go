package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/pkazmirchuk/shelfmark/internal/middleware"
	"github.com/pkazmirchuk/shelfmark/internal/models"
	"github.com/pkazmirchuk/shelfmark/internal/notify"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// View is the envelope every template receives.
type View struct {
	// User is the authenticated account, nil for anonymous pages.
	User *models.User
	// Flash is the pending notification queued by a previous request.
	Flash *notify.Flash
	// Error is an inline contextual message (login/register failures).
	Error string
	// Data is the page payload.
	Data any
}

// render executes the named template block with the session and any
// pending flash attached.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, view View) {
	h.renderStatus(w, r, http.StatusOK, name, view)
}

func (h *Handler) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, view View) {
	if guard := middleware.GuardFromContext(r.Context()); guard != nil {
		view.User = guard.Session().User
	}
	if f, ok := notify.PopFlash(w, r); ok {
		view.Flash = &f
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, view); err != nil {
		h.Log.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// notifier returns the notification channel for one response: a flash
// cookie consumed by the next page render.
func (h *Handler) notifier(w http.ResponseWriter) notify.Notifier {
	return &notify.FlashNotifier{W: w}
}

// flashError queues an error notification and sends the caller back.
// message falls back to a generic text when the collaborator gave none.
func (h *Handler) flashError(w http.ResponseWriter, r *http.Request, title, message, backTo string) {
	if message == "" {
		message = "Something went wrong"
	}
	h.notifier(w).Notify(notify.KindError, title, message)
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

// flashSuccess queues a success notification and sends the caller on.
func (h *Handler) flashSuccess(w http.ResponseWriter, r *http.Request, title, message, backTo string) {
	h.notifier(w).Notify(notify.KindSuccess, title, message)
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

// notFound renders the 404 page.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderStatus(w, r, http.StatusNotFound, "notfound", View{})
}
