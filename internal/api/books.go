package api

import (
	"context"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// BookInput is the payload for creating or updating a book. Genre holds
// the genre id from the controlled vocabulary.
type BookInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	Description   string `json:"description"`
	CoverImage    string `json:"coverImage,omitempty"`
	PublishedYear int    `json:"published_year,omitempty"`
	Pages         int    `json:"pages,omitempty"`
	ISBN          string `json:"isbn,omitempty"`
}

// ListBooks returns the full catalog.
func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := c.do(ctx, http.MethodGet, "/admin/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook returns one catalog item. A missing id surfaces as
// *NotFoundError.
func (c *Client) GetBook(ctx context.Context, id string) (models.Book, error) {
	var book models.Book
	if err := c.do(ctx, http.MethodGet, "/admin/books/"+id, nil, &book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// CreateBook adds a book to the catalog.
func (c *Client) CreateBook(ctx context.Context, in BookInput) error {
	return c.do(ctx, http.MethodPost, "/admin/books", in, nil)
}

// UpdateBook replaces a book's fields.
func (c *Client) UpdateBook(ctx context.Context, id string, in BookInput) error {
	return c.do(ctx, http.MethodPut, "/admin/books/"+id, in, nil)
}

// DeleteBook removes a book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/books/"+id, nil, nil)
}
