package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/pkazmirchuk/shelfmark/internal/api"
	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// dashboardView feeds the back-office landing page.
type dashboardView struct {
	BookCount    int
	GenreCount   int
	UserCount    int
	PendingCount int
}

// Dashboard shows the back-office counters, fetched concurrently.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var view dashboardView
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		books, err := h.Catalog.ListBooks(ctx)
		view.BookCount = len(books)
		return err
	})
	g.Go(func() error {
		genres, err := h.Catalog.ListGenres(ctx)
		view.GenreCount = len(genres)
		return err
	})
	g.Go(func() error {
		users, err := h.Admin.ListUsers(ctx)
		view.UserCount = len(users)
		return err
	})
	g.Go(func() error {
		pending, err := h.Reviews.ListReviews(ctx, models.ReviewPending)
		view.PendingCount = len(pending)
		return err
	})
	if err := g.Wait(); err != nil {
		h.flashError(w, r, "Loading Failed", remoteReason(err), "/browse")
		return
	}
	h.render(w, r, "dashboard", View{Data: view})
}

// adminBooksView feeds the book management screen.
type adminBooksView struct {
	Books  []models.Book
	Genres []models.Genre
}

// AdminBooks lists the catalog with the genre vocabulary for the form.
func (h *Handler) AdminBooks(w http.ResponseWriter, r *http.Request) {
	var view adminBooksView
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		view.Books, err = h.Catalog.ListBooks(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		view.Genres, err = h.Catalog.ListGenres(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.flashError(w, r, "Loading Failed", remoteReason(err), "/dashboard")
		return
	}
	h.render(w, r, "admin_books", View{Data: view})
}

// bookInputFromForm assembles the payload, resolving an attached cover
// image to a URL first.
func (h *Handler) bookInputFromForm(w http.ResponseWriter, r *http.Request) (api.BookInput, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return api.BookInput{}, false
	}
	in := api.BookInput{
		Title:       r.PostFormValue("title"),
		Author:      r.PostFormValue("author"),
		Genre:       r.PostFormValue("genre"),
		Description: r.PostFormValue("description"),
		CoverImage:  r.PostFormValue("cover_image"),
		ISBN:        r.PostFormValue("isbn"),
	}
	if year, err := strconv.Atoi(r.PostFormValue("published_year")); err == nil {
		in.PublishedYear = year
	}
	if pages, err := strconv.Atoi(r.PostFormValue("pages")); err == nil {
		in.Pages = pages
	}
	if file, header, err := r.FormFile("cover"); err == nil {
		defer file.Close()
		url, err := h.Uploader.Upload(r.Context(), header.Filename, file)
		if err != nil {
			h.flashError(w, r, "Upload Failed", err.Error(), "/dashboard/books")
			return api.BookInput{}, false
		}
		in.CoverImage = url
	}
	return in, true
}

// AdminBookCreate adds a catalog item.
func (h *Handler) AdminBookCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.bookInputFromForm(w, r)
	if !ok {
		return
	}
	if err := h.Admin.CreateBook(r.Context(), in); err != nil {
		h.flashError(w, r, "Book Saving Failed", remoteReason(err), "/dashboard/books")
		return
	}
	h.flashSuccess(w, r, "Book Added", in.Title+" is in the catalog", "/dashboard/books")
}

// AdminBookUpdate replaces a catalog item's fields.
func (h *Handler) AdminBookUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, ok := h.bookInputFromForm(w, r)
	if !ok {
		return
	}
	if err := h.Admin.UpdateBook(r.Context(), id, in); err != nil {
		h.flashError(w, r, "Book Saving Failed", remoteReason(err), "/dashboard/books")
		return
	}
	h.flashSuccess(w, r, "Book Updated", in.Title+" was updated", "/dashboard/books")
}

// AdminBookDelete removes a catalog item.
func (h *Handler) AdminBookDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Admin.DeleteBook(r.Context(), id); err != nil {
		h.flashError(w, r, "Book Deleting Failed", remoteReason(err), "/dashboard/books")
		return
	}
	h.flashSuccess(w, r, "Book Deleted", "The book was removed", "/dashboard/books")
}

// AdminGenres lists the genre vocabulary.
func (h *Handler) AdminGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Catalog.ListGenres(r.Context())
	if err != nil {
		h.flashError(w, r, "Loading Failed", remoteReason(err), "/dashboard")
		return
	}
	h.render(w, r, "admin_genres", View{Data: genres})
}

// genreInputFromForm assembles a genre payload.
func genreInputFromForm(w http.ResponseWriter, r *http.Request) (api.GenreInput, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return api.GenreInput{}, false
	}
	return api.GenreInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	}, true
}

// AdminGenreCreate adds a genre.
func (h *Handler) AdminGenreCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := genreInputFromForm(w, r)
	if !ok {
		return
	}
	if err := h.Admin.CreateGenre(r.Context(), in); err != nil {
		h.flashError(w, r, "Genre Saving Failed", remoteReason(err), "/dashboard/genres")
		return
	}
	h.flashSuccess(w, r, "Genre Added", in.Name+" was added", "/dashboard/genres")
}

// AdminGenreUpdate renames or re-describes a genre.
func (h *Handler) AdminGenreUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, ok := genreInputFromForm(w, r)
	if !ok {
		return
	}
	if err := h.Admin.UpdateGenre(r.Context(), id, in); err != nil {
		h.flashError(w, r, "Genre Saving Failed", remoteReason(err), "/dashboard/genres")
		return
	}
	h.flashSuccess(w, r, "Genre Updated", in.Name+" was updated", "/dashboard/genres")
}

// AdminGenreDelete removes a genre.
func (h *Handler) AdminGenreDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Admin.DeleteGenre(r.Context(), id); err != nil {
		h.flashError(w, r, "Genre Deleting Failed", remoteReason(err), "/dashboard/genres")
		return
	}
	h.flashSuccess(w, r, "Genre Deleted", "The genre was removed", "/dashboard/genres")
}

// AdminUsers lists every account.
func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Admin.ListUsers(r.Context())
	if err != nil {
		h.flashError(w, r, "Loading Failed", remoteReason(err), "/dashboard")
		return
	}
	h.render(w, r, "admin_users", View{Data: users})
}

// AdminUserRole flips an account between the two roles.
func (h *Handler) AdminUserRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	role := r.PostFormValue("role")
	if role != models.RoleAdmin && role != models.RoleUser {
		h.flashError(w, r, "Role Change Failed", "Unknown role", "/dashboard/users")
		return
	}
	if err := h.Admin.UpdateUserRole(r.Context(), id, role); err != nil {
		h.flashError(w, r, "Role Change Failed", remoteReason(err), "/dashboard/users")
		return
	}
	h.flashSuccess(w, r, "Role Changed", "The account is now "+role, "/dashboard/users")
}

// AdminUserDelete removes an account.
func (h *Handler) AdminUserDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Admin.DeleteUser(r.Context(), id); err != nil {
		h.flashError(w, r, "User Deleting Failed", remoteReason(err), "/dashboard/users")
		return
	}
	h.flashSuccess(w, r, "User Deleted", "The account was removed", "/dashboard/users")
}

// adminReviewsView feeds the moderation screen.
type adminReviewsView struct {
	Reviews []models.Review
	Status  string
}

// AdminReviews lists reviews for moderation, defaulting to the pending
// queue. status=all lifts the filter.
func (h *Handler) AdminReviews(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.ReviewPending
	}
	query := status
	if status == "all" {
		query = ""
	}
	reviews, err := h.Reviews.ListReviews(r.Context(), query)
	if err != nil {
		h.flashError(w, r, "Loading Failed", remoteReason(err), "/dashboard")
		return
	}
	h.render(w, r, "admin_reviews", View{Data: adminReviewsView{Reviews: reviews, Status: status}})
}

// AdminReviewModerate approves or rejects one review.
func (h *Handler) AdminReviewModerate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	status := models.ReviewRejected
	if r.PostFormValue("action") == "approve" {
		status = models.ReviewApproved
	}
	if err := h.Reviews.ModerateReview(r.Context(), id, status); err != nil {
		h.flashError(w, r, "Moderation Failed", remoteReason(err), "/dashboard/reviews")
		return
	}
	h.flashSuccess(w, r, "Review Moderated", "The review is now "+status, "/dashboard/reviews")
}

// adminTutorialsView feeds the tutorial management screen.
type adminTutorialsView struct {
	Tutorials []models.Tutorial
	Books     []models.Book
}

// AdminTutorials lists tutorials with the catalog for the form select.
func (h *Handler) AdminTutorials(w http.ResponseWriter, r *http.Request) {
	var view adminTutorialsView
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		view.Tutorials, err = h.Admin.ListTutorials(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		view.Books, err = h.Catalog.ListBooks(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.flashError(w, r, "Loading Failed", remoteReason(err), "/dashboard")
		return
	}
	h.render(w, r, "admin_tutorials", View{Data: view})
}

// AdminTutorialCreate attaches a tutorial to a book.
func (h *Handler) AdminTutorialCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := api.TutorialInput{
		Title:      r.PostFormValue("title"),
		YouTubeURL: r.PostFormValue("youtube_url"),
		Book:       r.PostFormValue("book"),
	}
	if err := h.Admin.CreateTutorial(r.Context(), in); err != nil {
		h.flashError(w, r, "Tutorial Saving Failed", remoteReason(err), "/dashboard/tutorials")
		return
	}
	h.flashSuccess(w, r, "Tutorial Added", in.Title+" was added", "/dashboard/tutorials")
}

// AdminTutorialDelete removes a tutorial.
func (h *Handler) AdminTutorialDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Admin.DeleteTutorial(r.Context(), id); err != nil {
		h.flashError(w, r, "Tutorial Deleting Failed", remoteReason(err), "/dashboard/tutorials")
		return
	}
	h.flashSuccess(w, r, "Tutorial Deleted", "The tutorial was removed", "/dashboard/tutorials")
}
