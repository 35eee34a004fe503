package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/pkazmirchuk/shelfmark/internal/api"
	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// bookView feeds the book detail page.
type bookView struct {
	Book    models.Book
	Reviews []models.Review
}

// BookDetail renders one catalog item with its approved reviews. The two
// fetches are independent and run concurrently.
func (h *Handler) BookDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		book    models.Book
		reviews []models.Review
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		book, err = h.Catalog.GetBook(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = h.Reviews.BookReviews(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		var notFound *api.NotFoundError
		if errors.As(err, &notFound) {
			h.notFound(w, r)
			return
		}
		h.flashError(w, r, "Loading Failed", "Failed to load the book", "/browse")
		return
	}

	h.render(w, r, "book", View{Data: bookView{Book: book, Reviews: reviews}})
}

// SubmitReview posts a review into the moderation queue and returns to
// the book page.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	backTo := "/books/" + id
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil || rating < 1 || rating > 5 {
		h.flashError(w, r, "Review Submitting Failed", "Rating must be between 1 and 5", backTo)
		return
	}

	if err := h.Reviews.SubmitReview(r.Context(), id, rating, r.PostFormValue("review")); err != nil {
		h.flashError(w, r, "Review Submitting Failed", remoteReason(err), backTo)
		return
	}
	h.flashSuccess(w, r, "Review Submitted", "Your review is waiting for moderation", backTo)
}

// AddToShelf places the book on one of the caller's shelves. Finishing a
// book records its full page count as progress.
func (h *Handler) AddToShelf(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	backTo := "/books/" + id
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	shelf := models.Shelf(r.PostFormValue("shelf"))
	if !shelf.Valid() {
		h.flashError(w, r, "Add to Shelf Failed", "Unknown shelf", backTo)
		return
	}

	progress := 0
	if shelf == models.ShelfRead {
		book, err := h.Catalog.GetBook(r.Context(), id)
		if err != nil {
			h.flashError(w, r, "Add to Shelf Failed", remoteReason(err), backTo)
			return
		}
		progress = book.Pages
		if progress == 0 {
			progress = 100
		}
	}

	if err := h.Shelves.AddToShelf(r.Context(), id, shelf, progress); err != nil {
		h.flashError(w, r, "Add to Shelf Failed", remoteReason(err), backTo)
		return
	}
	h.flashSuccess(w, r, "Added to Shelf", "The book is on your "+string(shelf)+" shelf", backTo)
}

// remoteReason extracts a display message from a collaborator failure,
// with a generic fallback.
func remoteReason(err error) string {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason()
	}
	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	var notFound *api.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}
	return ""
}
