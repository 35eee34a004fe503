// Package notify defines the fire-and-forget notification collaborator
// and its two implementations: a zap-backed notifier for terminal use and
// a flash-cookie notifier consumed by the next page render in the web
// gateway.
package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies a notification.
type Kind string

// Notification kinds.
const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Notifier delivers a transient notification. Delivery is best effort;
// no result is consumed.
type Notifier interface {
	Notify(kind Kind, title, message string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Log *zap.Logger
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(kind Kind, title, message string) {
	fields := []zap.Field{zap.String("title", title), zap.String("message", message)}
	switch kind {
	case KindError:
		n.Log.Error("notification", fields...)
	case KindWarning:
		n.Log.Warn("notification", fields...)
	default:
		n.Log.Info("notification", fields...)
	}
}

// Flash is one queued web notification.
type Flash struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// flashCookie carries at most one pending flash across a redirect.
const flashCookie = "flash"

// SetFlash queues a notification for the next rendered page.
func SetFlash(w http.ResponseWriter, f Flash) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notification, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	b, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return Flash{}, false
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil {
		return Flash{}, false
	}
	return f, true
}

// FlashNotifier queues notifications on an http.ResponseWriter so the
// next page render can display them.
type FlashNotifier struct {
	W http.ResponseWriter
}

// Notify implements Notifier.
func (n *FlashNotifier) Notify(kind Kind, title, message string) {
	SetFlash(n.W, Flash{Kind: kind, Title: title, Message: message})
}
