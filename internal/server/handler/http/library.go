package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// libraryView feeds the personal library page.
type libraryView struct {
	Library models.Library
}

// MyLibrary renders the caller's three shelves.
func (h *Handler) MyLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := h.Shelves.MyLibrary(r.Context())
	if err != nil {
		h.Log.Error("load library", zap.Error(err))
		h.flashError(w, r, "Loading Failed", "Failed to load library data", "/browse")
		return
	}
	h.render(w, r, "library", View{Data: libraryView{Library: lib}})
}
