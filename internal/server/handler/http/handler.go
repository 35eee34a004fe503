// Package http provides the HTTP surface of the shelfmark gateway: the
// reader-facing catalog pages, the admin back-office, and a small JSON
// API for client-side hydration. Every business operation is delegated
// to the remote catalog service through the collaborator interfaces
// declared here.
package http

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/pkazmirchuk/shelfmark/internal/api"
	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// CatalogAPI lists and fetches catalog items.
type CatalogAPI interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id string) (models.Book, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
}

// ReviewAPI reads and writes book reviews.
type ReviewAPI interface {
	BookReviews(ctx context.Context, bookID string) ([]models.Review, error)
	SubmitReview(ctx context.Context, bookID string, rating int, text string) error
	ListReviews(ctx context.Context, status string) ([]models.Review, error)
	ModerateReview(ctx context.Context, id, status string) error
}

// ShelfAPI manages the caller's personal shelves.
type ShelfAPI interface {
	AddToShelf(ctx context.Context, bookID string, shelf models.Shelf, progress int) error
	MyLibrary(ctx context.Context) (models.Library, error)
}

// AdminAPI covers the back-office mutations.
type AdminAPI interface {
	CreateBook(ctx context.Context, in api.BookInput) error
	UpdateBook(ctx context.Context, id string, in api.BookInput) error
	DeleteBook(ctx context.Context, id string) error
	CreateGenre(ctx context.Context, in api.GenreInput) error
	UpdateGenre(ctx context.Context, id string, in api.GenreInput) error
	DeleteGenre(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id, role string) error
	DeleteUser(ctx context.Context, id string) error
	ListTutorials(ctx context.Context) ([]models.Tutorial, error)
	CreateTutorial(ctx context.Context, in api.TutorialInput) error
	DeleteTutorial(ctx context.Context, id string) error
}

// Uploader resolves an image file to a hosted URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// Handler carries the gateway's collaborators and settings.
type Handler struct {
	Catalog  CatalogAPI
	Reviews  ReviewAPI
	Shelves  ShelfAPI
	Admin    AdminAPI
	Uploader Uploader
	PageSize int
	Log      *zap.Logger
}
