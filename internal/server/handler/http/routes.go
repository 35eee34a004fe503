package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pkazmirchuk/shelfmark/internal/middleware"
	"github.com/pkazmirchuk/shelfmark/internal/models"
	"github.com/pkazmirchuk/shelfmark/internal/session"
)

// NewRouter constructs the gateway's HTTP handler.
//
// Route map:
//
//	GET  /                      → redirect to /browse
//	GET/POST /login /register   → authentication forms
//	GET  /logout                → clear session
//	GET  /browse                → catalog with search/facet/pagination   (auth)
//	GET  /books/{id}            → detail with approved reviews           (auth)
//	POST /books/{id}/reviews    → submit review for moderation           (auth)
//	POST /books/{id}/shelf      → shelve a book                          (auth)
//	GET  /my-library            → personal shelves                       (auth)
//	/dashboard...               → back-office CRUD screens               (admin)
//	GET  /api/books /api/genres → hydration JSON, CORS enabled           (auth, 401)
//
// Middleware chain (applied in order):
//  1. Recoverer turns panics into 500s
//  2. WithRequestLogging logs each request
//  3. WithSession builds the request-scoped session guard
func NewRouter(h *Handler, auth session.AuthAPI, cookieName string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Restore the session from the token cookie
	r.Use(middleware.WithSession(auth, cookieName))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/browse", http.StatusSeeOther)
	})

	// Public endpoints
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Get("/logout", h.Logout)

	// Reader pages: any authenticated user
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/browse", h.Browse)
		r.Get("/books/{id}", h.BookDetail)
		r.Post("/books/{id}/reviews", h.SubmitReview)
		r.Post("/books/{id}/shelf", h.AddToShelf)
		r.Get("/my-library", h.MyLibrary)
	})

	// Back-office: admins only
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleAdmin))
		r.Get("/", h.Dashboard)
		r.Get("/books", h.AdminBooks)
		r.Post("/books", h.AdminBookCreate)
		r.Post("/books/{id}", h.AdminBookUpdate)
		r.Post("/books/{id}/delete", h.AdminBookDelete)
		r.Get("/genres", h.AdminGenres)
		r.Post("/genres", h.AdminGenreCreate)
		r.Post("/genres/{id}", h.AdminGenreUpdate)
		r.Post("/genres/{id}/delete", h.AdminGenreDelete)
		r.Get("/users", h.AdminUsers)
		r.Post("/users/{id}/role", h.AdminUserRole)
		r.Post("/users/{id}/delete", h.AdminUserDelete)
		r.Get("/reviews", h.AdminReviews)
		r.Post("/reviews/{id}", h.AdminReviewModerate)
		r.Get("/tutorials", h.AdminTutorials)
		r.Post("/tutorials", h.AdminTutorialCreate)
		r.Post("/tutorials/{id}/delete", h.AdminTutorialDelete)
	})

	// Hydration API: JSON errors instead of redirects
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
		r.Use(RequireAuthJSON)
		r.Get("/books", h.BooksJSON)
		r.Get("/genres", h.GenresJSON)
	})

	r.NotFound(h.notFound)

	return r
}
