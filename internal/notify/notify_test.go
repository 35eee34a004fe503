package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifierRoutesKindsToLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := &LogNotifier{Log: zap.New(core)}

	n.Notify(KindError, "Login Failed", "invalid credentials")
	n.Notify(KindWarning, "Slow Remote", "request took 5s")
	n.Notify(KindSuccess, "Added to Shelf", "done")
	n.Notify(KindInfo, "Welcome", "hello")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
	assert.Equal(t, "Login Failed", entries[0].ContextMap()["title"])
	assert.Equal(t, "invalid credentials", entries[0].ContextMap()["message"])
}

func TestFlashRoundTrip(t *testing.T) {
	set := httptest.NewRecorder()
	SetFlash(set, Flash{Kind: KindSuccess, Title: "Saved", Message: "Book created"})

	cookies := set.Result().Cookies()
	require.Len(t, cookies, 1)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])

	f, ok := PopFlash(w, r)
	require.True(t, ok)
	assert.Equal(t, KindSuccess, f.Kind)
	assert.Equal(t, "Saved", f.Title)
	assert.Equal(t, "Book created", f.Message)

	// Popping clears the cookie so the flash shows once.
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestPopFlashWithoutCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := PopFlash(w, r)
	assert.False(t, ok)
	assert.Empty(t, w.Result().Cookies())
}

func TestPopFlashGarbledCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "flash", Value: "not base64!"})

	_, ok := PopFlash(w, r)
	assert.False(t, ok)
}
