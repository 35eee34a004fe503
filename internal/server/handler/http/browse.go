package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/pkazmirchuk/shelfmark/internal/catalog"
)

// browseView feeds the catalog browsing page.
type browseView struct {
	Result catalog.Result
	Window []int
	Search string
	Genre  string
}

// criteriaFromQuery builds filter criteria from the request. The search
// form never submits a page parameter, so a changed filter lands on the
// first page; only the pagination links carry one.
func (h *Handler) criteriaFromQuery(r *http.Request) catalog.Criteria {
	q := r.URL.Query()
	c := catalog.NewCriteria(h.PageSize).
		WithSearch(q.Get("search")).
		WithGenre(q.Get("genre"))
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		c = c.WithPage(page)
	}
	return c
}

// Browse lists the catalog with search, genre facet and pagination. The
// full collection comes from the remote service; filtering is derived
// locally on every request.
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	books, err := h.Catalog.ListBooks(r.Context())
	if err != nil {
		h.Log.Error("list books", zap.Error(err))
		h.flashError(w, r, "Loading Failed", "Failed to load books", "/my-library")
		return
	}

	criteria := h.criteriaFromQuery(r)
	result := catalog.Apply(books, criteria)

	h.render(w, r, "browse", View{Data: browseView{
		Result: result,
		Window: catalog.PageWindow(result.Page, result.TotalPages),
		Search: criteria.Search,
		Genre:  criteria.Genre,
	}})
}

// BooksJSON serves the raw catalog for client-side hydration.
func (h *Handler) BooksJSON(w http.ResponseWriter, r *http.Request) {
	books, err := h.Catalog.ListBooks(r.Context())
	if err != nil {
		h.Log.Error("list books", zap.Error(err))
		writeJSONError(w, http.StatusBadGateway, "failed to load books")
		return
	}
	writeJSON(w, books)
}

// GenresJSON serves the facet vocabulary for client-side hydration.
func (h *Handler) GenresJSON(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Catalog.ListGenres(r.Context())
	if err != nil {
		h.Log.Error("list genres", zap.Error(err))
		writeJSONError(w, http.StatusBadGateway, "failed to load genres")
		return
	}
	writeJSON(w, genres)
}
